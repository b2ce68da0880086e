package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/alexhholmes/flyweight/schema"
)

// TypeLayout represents a parsed struct with a @message or @record annotation
type TypeLayout struct {
	Name   string
	Anno   *TypeAnnotation
	Fields []Field
	Pos    token.Position
}

// Field represents a struct field that is part of the layout
type Field struct {
	Name   string
	GoType string
	Layout *FieldLayout
}

// ParseFile parses a Go source file and extracts annotated types
func ParseFile(filename string) ([]*TypeLayout, error) {
	return ParseSource(filename, nil)
}

// ParseSource is like ParseFile but reads src when it is non-nil, as
// go/parser.ParseFile does.
func ParseSource(filename string, src any) ([]*TypeLayout, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return extractTypes(fset, file)
}

func extractTypes(fset *token.FileSet, file *ast.File) ([]*TypeLayout, error) {
	var types []*TypeLayout
	var errs error

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec := spec.(*ast.TypeSpec)
			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				continue
			}

			// Grouped declarations carry the doc on the spec
			doc := typeSpec.Doc
			if doc == nil {
				doc = genDecl.Doc
			}
			name := typeSpec.Name.Name
			anno, err := extractAnnotation(doc)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %s: %w", fset.Position(typeSpec.Pos()), name, err))
				continue
			}
			if anno == nil {
				continue
			}

			fields, err := extractFields(structType)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %s: %w", fset.Position(typeSpec.Pos()), name, err))
				continue
			}

			types = append(types, &TypeLayout{
				Name:   name,
				Anno:   anno,
				Fields: fields,
				Pos:    fset.Position(typeSpec.Pos()),
			})
		}
	}

	return types, errs
}

func extractAnnotation(doc *ast.CommentGroup) (*TypeAnnotation, error) {
	if doc == nil {
		return nil, nil
	}

	var lines []string
	for _, comment := range doc.List {
		lines = append(lines, CleanComment(comment.Text))
	}

	anno, found, err := FindAnnotation(lines)
	if err != nil || !found {
		return nil, err
	}
	return anno, nil
}

func extractFields(structType *ast.StructType) ([]Field, error) {
	var fields []Field
	var errs error

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("embedded field %s is not supported", typeToString(field.Type)))
			continue
		}

		layout := &FieldLayout{MaxLength: -1}
		if field.Tag != nil {
			raw, err := strconv.Unquote(field.Tag.Value)
			if err != nil {
				raw = strings.Trim(field.Tag.Value, "`")
			}
			if tag, ok := reflect.StructTag(raw).Lookup("layout"); ok {
				parsed, err := ParseTag(tag)
				if err != nil {
					errs = multierr.Append(errs, fmt.Errorf("field %s: %w", field.Names[0].Name, err))
					continue
				}
				layout = parsed
			}
		}
		if layout.Skip {
			continue
		}

		goType := typeToString(field.Type)
		for _, ident := range field.Names {
			if !ident.IsExported() {
				continue
			}
			fields = append(fields, Field{
				Name:   ident.Name,
				GoType: goType,
				Layout: layout,
			})
		}
	}

	return fields, errs
}

// typeToString converts AST type expression to string
// Only supports types with defined binary layout
func typeToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name

	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + typeToString(t.Elt)
		}
		return fmt.Sprintf("[%s]%s", exprToString(t.Len), typeToString(t.Elt))

	case *ast.StarExpr:
		return "*" + typeToString(t.X)

	case *ast.SelectorExpr:
		return typeToString(t.X) + "." + t.Sel.Name

	default:
		return "unknown"
	}
}

func exprToString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.BasicLit:
		return e.Value
	case *ast.Ident:
		return e.Name
	default:
		return "?"
	}
}

// goFieldTypes maps Go scalar types to field types.
var goFieldTypes = map[string]schema.FieldType{
	"int16":   schema.Int16,
	"int32":   schema.Int32,
	"int64":   schema.Int64,
	"float64": schema.Double,
	"bool":    schema.Boolean,
	"string":  schema.FixedString,
}

// Batch converts parsed types into a schema batch. Records and messages keep
// their source order.
func Batch(types []*TypeLayout) (schema.Batch, error) {
	var b schema.Batch
	var errs error

	for _, t := range types {
		fields, err := schemaFields(t)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		switch t.Anno.Kind {
		case KindRecord:
			b.Records = append(b.Records, schema.Record{Name: t.Name, Fields: fields})
		case KindMessage:
			name := t.Name
			if t.Anno.Name != "" {
				name = t.Anno.Name
			}
			b.Messages = append(b.Messages, schema.Message{
				Name:        name,
				ID:          t.Anno.ID,
				Version:     t.Anno.Version,
				Fields:      fields,
				HasHeader:   t.Anno.Header,
				FixedLength: t.Anno.Fixed,
			})
		}
	}

	return b, errs
}

func schemaFields(t *TypeLayout) ([]schema.Field, error) {
	fields := make([]schema.Field, 0, len(t.Fields))
	var errs error

	for _, f := range t.Fields {
		sf, err := schemaField(f)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %s.%s: %w", t.Pos, t.Name, f.Name, err))
			continue
		}
		fields = append(fields, sf)
	}

	return fields, errs
}

func schemaField(f Field) (schema.Field, error) {
	sf := schema.Field{Name: f.Name, Type: f.Layout.Type}
	record := f.Layout.Record

	if sf.Type == schema.Invalid {
		if elem, ok := strings.CutPrefix(f.GoType, "[]"); ok {
			sf.Type = schema.RepeatableRecord
			if record == "" {
				record = elem
			}
		} else if t, ok := goFieldTypes[f.GoType]; ok {
			sf.Type = t
		} else {
			return sf, fmt.Errorf("type %s has no wire encoding", f.GoType)
		}
	}

	if record != "" && sf.Type != schema.RepeatableRecord {
		return sf, fmt.Errorf("record= is only valid on repeated fields")
	}
	if f.Layout.MaxLength >= 0 && sf.Type != schema.FixedString {
		return sf, fmt.Errorf("maxlen= is only valid on string fields")
	}

	if f.Layout.MaxLength >= 0 || record != "" {
		sf.Annotations = schema.Annotations{}
	}
	if f.Layout.MaxLength >= 0 {
		sf.Annotations[schema.AnnotationMaxLength] = strconv.Itoa(f.Layout.MaxLength)
	}
	if record != "" {
		sf.Annotations[schema.AnnotationRecordType] = record
	}
	return sf, nil
}

// LoadGo parses a Go schema file into a batch.
func LoadGo(filename string) (schema.Batch, error) {
	types, err := ParseFile(filename)
	if err != nil {
		return schema.Batch{}, err
	}
	return Batch(types)
}
