package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes the error
type Kind string

const (
	KindSchema Kind = "schema" // layout compilation
	KindBind   Kind = "bind"   // buffer binding and capacity
	KindWrite  Kind = "write"  // field and count writes
	KindRead   Kind = "read"   // indexed reads
)

// Reason narrows the cause within a Kind
type Reason string

const (
	ReasonDuplicateField   Reason = "duplicate_field"
	ReasonMultipleRepeated Reason = "multiple_repeated"
	ReasonBadMaxLength     Reason = "bad_max_length"
	ReasonUnfixedString    Reason = "unfixed_string"
	ReasonUnknownRecord    Reason = "unknown_record"
	ReasonNestedRepeated   Reason = "nested_repeated"
	ReasonUnknownType      Reason = "unknown_type"
	ReasonDuplicateID      Reason = "duplicate_id"
	ReasonIDRange          Reason = "id_range"
	ReasonTooSmall         Reason = "too_small"
	ReasonNotBound         Reason = "not_bound"
	ReasonReadOnly         Reason = "read_only"
	ReasonTooLong          Reason = "too_long"
	ReasonNoHeader         Reason = "no_header"
	ReasonNoRepeated       Reason = "no_repeated"
	ReasonTypeMismatch     Reason = "type_mismatch"
	ReasonOutOfRange       Reason = "out_of_range"
)

// Sentinels for errors.Is matching by Kind.
var (
	ErrSchema = &Error{Kind: KindSchema}
	ErrBind   = &Error{Kind: KindBind}
	ErrWrite  = &Error{Kind: KindWrite}
	ErrRead   = &Error{Kind: KindRead}
)

// Error is the structured error type used by the compiler and the runtime
type Error struct {
	Value  any
	Cause  error
	Kind   Kind
	Reason Reason
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Kind))
	b.WriteByte(']')

	if e.Reason != "" {
		b.WriteByte(' ')
		b.WriteString(string(e.Reason))
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without a Reason
// matches every error of its Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Reason == "" || e.Reason == t.Reason
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(kind Kind, reason Reason) *Builder {
	return &Builder{
		err: Error{
			Kind:   kind,
			Reason: reason,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Schema creates a layout compilation error for a message or field
func Schema(reason Reason, path []string, detail string, args ...any) *Error {
	return New(KindSchema, reason).Path(path...).Detail(detail, args...).Build()
}

// TooSmall creates a capacity error for a bind or resize
func TooSmall(path []string, required, capacity int) *Error {
	return &Error{
		Kind:   KindBind,
		Reason: ReasonTooSmall,
		Path:   path,
		Detail: fmt.Sprintf("buffer capacity %d is less than required %d", capacity, required),
		Value:  required,
	}
}

// ReadOnly creates a write error for a read-only binding
func ReadOnly(path []string) *Error {
	return &Error{
		Kind:   KindWrite,
		Reason: ReasonReadOnly,
		Path:   path,
		Detail: "cannot write to read-only buffer",
	}
}

// TooLong creates a write error for a string longer than its field
func TooLong(path []string, length, maxLength int) *Error {
	return &Error{
		Kind:   KindWrite,
		Reason: ReasonTooLong,
		Path:   path,
		Detail: fmt.Sprintf("value length %d exceeds maxLength=%d", length, maxLength),
		Value:  length,
	}
}

// OutOfRange creates a read error for an index beyond the committed count
func OutOfRange(path []string, index, committed int) *Error {
	return &Error{
		Kind:   KindRead,
		Reason: ReasonOutOfRange,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of range (committed %d)", index, committed),
		Value:  index,
	}
}

// NotBound creates a bind error for a view used before Bind
func NotBound(path []string) *Error {
	return &Error{
		Kind:   KindBind,
		Reason: ReasonNotBound,
		Path:   path,
		Detail: "view is not bound to a buffer",
	}
}

// Wrap wraps an existing error with additional context
func Wrap(kind Kind, reason Reason, cause error, detail string) *Error {
	return &Error{
		Kind:   kind,
		Reason: reason,
		Detail: detail,
		Cause:  cause,
	}
}
