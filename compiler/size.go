package compiler

import (
	"github.com/alexhholmes/flyweight/errors"
	"github.com/alexhholmes/flyweight/schema"
)

// ByteLength returns the size in bytes of a placed field.
// Returns 0 for repeated-record fields, which are not stored inline.
// fixedLength is the owning message's fixed-length flag; it only changes
// which error an unsized string reports.
func ByteLength(owner string, f schema.Field, fixedLength bool) (int, error) {
	if n, ok := f.Type.Width(); ok {
		return n, nil
	}

	switch f.Type {
	case schema.RepeatableRecord:
		return 0, nil

	case schema.FixedString:
		n, set, err := f.Annotations.MaxLength()
		if err != nil {
			return 0, errors.New(errors.KindSchema, errors.ReasonBadMaxLength).
				Path(owner, f.Name).
				Detail(err.Error()).
				Value(f.Annotations[schema.AnnotationMaxLength]).
				Build()
		}
		// A negative maxLength is the front-ends' "unset" sentinel.
		if !set || n < 0 {
			if fixedLength {
				return 0, errors.Schema(errors.ReasonUnfixedString, []string{owner, f.Name},
					"cannot have non fixed length strings on fixed length object")
			}
			return 0, errors.Schema(errors.ReasonBadMaxLength, []string{owner, f.Name},
				"string field requires a non-negative maxLength")
		}
		return n, nil
	}

	return 0, errors.Schema(errors.ReasonUnknownType, []string{owner, f.Name},
		"unsupported field type %s", f.Type)
}
