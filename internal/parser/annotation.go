package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexhholmes/flyweight/schema"
)

// Kind says whether an annotated struct is a message or a record.
type Kind string

const (
	KindMessage Kind = "message"
	KindRecord  Kind = "record"
)

// TypeAnnotation holds a parsed @message or @record annotation
type TypeAnnotation struct {
	Kind    Kind
	Name    string // overrides the Go type name when set
	ID      int    // schema.AutoID when unset
	Version int
	Header  bool // message carries the wire header
	Fixed   bool // every string field must declare maxlen
}

var (
	annotationRe = regexp.MustCompile(`^@(message|record)(?:\s+(.*))?$`)
	paramRe      = regexp.MustCompile(`^(\w+)(?:=([\w-]+))?$`)
)

// ParseAnnotation parses a @message or @record annotation from comment text
//
// Expected format:
//
//	// @record
//	// @message
//	// @message id=7 version=2
//	// @message id=7 header fixed name=HostConn
//
// Params are space-separated; id, version and name take a value, header and
// fixed are bare flags. Records accept no params.
func ParseAnnotation(comment string) (*TypeAnnotation, error) {
	matches := annotationRe.FindStringSubmatch(strings.TrimSpace(comment))
	if matches == nil {
		return nil, fmt.Errorf("no @message or @record annotation found")
	}

	anno := &TypeAnnotation{
		Kind: Kind(matches[1]),
		ID:   schema.AutoID,
	}
	params := strings.Fields(matches[2])
	if anno.Kind == KindRecord && len(params) > 0 {
		return nil, fmt.Errorf("@record takes no parameters, got: %s", matches[2])
	}

	for _, param := range params {
		pair := paramRe.FindStringSubmatch(param)
		if pair == nil {
			return nil, fmt.Errorf("malformed parameter: %s", param)
		}
		key, value := pair[1], pair[2]

		switch key {
		case "id":
			id, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid id: %s", value)
			}
			if id < 0 {
				return nil, fmt.Errorf("id must not be negative, got: %d", id)
			}
			anno.ID = id

		case "version":
			version, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid version: %s", value)
			}
			if version < 0 {
				return nil, fmt.Errorf("version must not be negative, got: %d", version)
			}
			anno.Version = version

		case "name":
			if value == "" {
				return nil, fmt.Errorf("name= requires a value")
			}
			anno.Name = value

		case "header", "fixed":
			if value != "" {
				return nil, fmt.Errorf("%s is a flag and takes no value", key)
			}
			if key == "header" {
				anno.Header = true
			} else {
				anno.Fixed = true
			}

		default:
			return nil, fmt.Errorf("unknown parameter: %s", key)
		}
	}

	return anno, nil
}

// FindAnnotation searches comment lines for an annotation.
// Returns the annotation and true if found; a malformed annotation is an
// error rather than a miss.
func FindAnnotation(comments []string) (*TypeAnnotation, bool, error) {
	for _, comment := range comments {
		if !strings.HasPrefix(comment, "@message") && !strings.HasPrefix(comment, "@record") {
			continue
		}
		anno, err := ParseAnnotation(comment)
		if err != nil {
			return nil, false, err
		}
		return anno, true, nil
	}
	return nil, false, nil
}

// CleanComment removes comment markers from a line
// "// @message id=1" → "@message id=1"
// "/* @record */" → "@record"
func CleanComment(line string) string {
	line = strings.TrimSpace(line)

	if strings.HasPrefix(line, "//") {
		return strings.TrimSpace(strings.TrimPrefix(line, "//"))
	}

	if strings.HasPrefix(line, "/*") && strings.HasSuffix(line, "*/") {
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		return strings.TrimSpace(line)
	}

	return line
}
