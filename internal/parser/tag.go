package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexhholmes/flyweight/schema"
)

// FieldLayout is a parsed layout struct tag.
type FieldLayout struct {
	Skip      bool
	MaxLength int              // -1 if unspecified
	Type      schema.FieldType // schema.Invalid means inferred from the Go type
	Record    string           // record type override for repeated fields
}

// ParseTag parses layout struct tags
//
// Semantics:
//   - "-"           : field is not part of the layout
//   - "maxlen=N"    : fixed string of N bytes
//   - "type=T"      : field type override, any name schema.ParseFieldType accepts
//   - "record=Name" : repeated field whose element is record Name
//
// Examples:
//
//	"maxlen=40"             → string field, 40 bytes
//	"type=int16"            → Go int stored as a 2-byte integer
//	"record=Host"           → repeated Host records
//	"type=string,maxlen=8"  → explicit type plus length
func ParseTag(tag string) (*FieldLayout, error) {
	if tag == "" {
		return nil, fmt.Errorf("empty layout tag")
	}

	f := &FieldLayout{MaxLength: -1}
	if tag == "-" {
		f.Skip = true
		return f, nil
	}

	for _, part := range strings.Split(tag, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || kv[1] == "" {
			return nil, fmt.Errorf("invalid layout parameter: %s", part)
		}

		switch kv[0] {
		case "maxlen":
			n, err := strconv.Atoi(kv[1])
			if err != nil {
				return nil, fmt.Errorf("invalid maxlen: %s", kv[1])
			}
			if n < 0 {
				return nil, fmt.Errorf("maxlen must not be negative, got: %d", n)
			}
			f.MaxLength = n

		case "type":
			t, err := schema.ParseFieldType(kv[1])
			if err != nil {
				return nil, err
			}
			f.Type = t

		case "record":
			f.Record = kv[1]

		default:
			return nil, fmt.Errorf("unknown layout parameter: %s", kv[0])
		}
	}

	return f, nil
}
