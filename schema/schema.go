// Package schema describes messages and repeated records as ordered field
// lists. It is the contract between a schema front-end and the layout
// compiler; values are built once and not mutated afterwards.
package schema

import (
	"fmt"
	"strconv"
)

// FieldType is the closed set of field encodings.
type FieldType uint8

const (
	Invalid FieldType = iota
	Int16
	Int32
	Int64
	Double
	Boolean
	FixedString
	RepeatableRecord
)

func (t FieldType) String() string {
	switch t {
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Double:
		return "double"
	case Boolean:
		return "boolean"
	case FixedString:
		return "fixed_string"
	case RepeatableRecord:
		return "repeatable_record"
	default:
		return "invalid"
	}
}

// ParseFieldType maps a type name as written by front-ends to a FieldType.
func ParseFieldType(s string) (FieldType, error) {
	switch s {
	case "int16", "short":
		return Int16, nil
	case "int32", "int":
		return Int32, nil
	case "int64", "long":
		return Int64, nil
	case "double", "float64":
		return Double, nil
	case "boolean", "bool":
		return Boolean, nil
	case "fixed_string", "string":
		return FixedString, nil
	case "repeatable_record", "record":
		return RepeatableRecord, nil
	}
	return Invalid, fmt.Errorf("unknown field type: %s", s)
}

// Annotation keys understood by the compiler.
const (
	AnnotationMaxLength  = "maxLength"
	AnnotationRecordType = "recordType"
)

// Annotations carries per-field settings as front-ends wrote them.
type Annotations map[string]string

// MaxLength returns the maxLength annotation. ok is false when the
// annotation is unset; err is non-nil when it is set but not an integer.
func (a Annotations) MaxLength() (n int, ok bool, err error) {
	s, ok := a[AnnotationMaxLength]
	if !ok || s == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(s)
	if err != nil {
		return 0, true, fmt.Errorf("maxLength %q is not an integer", s)
	}
	return n, true, nil
}

// RecordType returns the name of the record schema a repeated field refers to.
func (a Annotations) RecordType() string {
	return a[AnnotationRecordType]
}

// Field is one declared field.
type Field struct {
	Name        string
	Type        FieldType
	Annotations Annotations
}

// AutoID marks a message whose wire id is assigned by the compiler.
const AutoID = -1

// Message is a top-level schema with a wire identity.
type Message struct {
	Name        string
	ID          int // AutoID when unset
	Version     int
	Fields      []Field
	HasHeader   bool
	FixedLength bool
}

// Record is a reusable element layout for a repeated field.
type Record struct {
	Name   string
	Fields []Field
}

// Batch is everything one schema source produced.
type Batch struct {
	Records  []Record
	Messages []Message
}

// Record returns the record schema with the given name.
func (b *Batch) Record(name string) (Record, bool) {
	for _, r := range b.Records {
		if r.Name == name {
			return r, true
		}
	}
	return Record{}, false
}

// String is a helper for building a fixed-length string field.
func String(name string, maxLength int) Field {
	return Field{
		Name:        name,
		Type:        FixedString,
		Annotations: Annotations{AnnotationMaxLength: strconv.Itoa(maxLength)},
	}
}

// Repeated is a helper for building a repeated-record field.
func Repeated(name, recordType string) Field {
	return Field{
		Name:        name,
		Type:        RepeatableRecord,
		Annotations: Annotations{AnnotationRecordType: recordType},
	}
}

// Scalar is a helper for building a fixed-width field.
func Scalar(name string, t FieldType) Field {
	return Field{Name: name, Type: t}
}

// MarshalText encodes the type by name so exported plans stay readable.
func (t FieldType) MarshalText() ([]byte, error) {
	if t == Invalid {
		return nil, fmt.Errorf("cannot encode invalid field type")
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name written by MarshalText.
func (t *FieldType) UnmarshalText(text []byte) error {
	ft, err := ParseFieldType(string(text))
	if err != nil {
		return err
	}
	*t = ft
	return nil
}

// Width returns the encoded byte length of a fixed-width type. ok is false
// for FixedString, whose width is its maxLength, and for RepeatableRecord,
// which is not itself byte-sized.
func (t FieldType) Width() (n int, ok bool) {
	switch t {
	case Int16:
		return 2, true
	case Int32:
		return 4, true
	case Int64, Double:
		return 8, true
	case Boolean:
		return 1, true
	}
	return 0, false
}
