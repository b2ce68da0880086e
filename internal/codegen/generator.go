// Package codegen emits typed Go flyweights for compiled plans. Each record
// and message becomes a struct wrapping a flyweight.View with one getter and
// setter per field; the plan itself is embedded as a literal so generated
// code needs no compile step at run time.
package codegen

import (
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/alexhholmes/flyweight/plan"
	"github.com/alexhholmes/flyweight/schema"
)

// DefaultRuntime is the module path generated code imports the runtime from.
const DefaultRuntime = "github.com/alexhholmes/flyweight"

// Options control code emission.
type Options struct {
	Package string // package clause of the generated file
	Runtime string // module path of the runtime, DefaultRuntime when empty
}

// Generator generates flyweight accessor types for a plan set
type Generator struct {
	set  *plan.Set
	opts Options
}

// accessor describes how one field type maps to Go and to the runtime.
type accessor struct {
	goType string
	get    string
	put    string
	ident  string
}

var accessors = map[schema.FieldType]accessor{
	schema.Int16:       {"int16", "Int16", "PutInt16", "schema.Int16"},
	schema.Int32:       {"int32", "Int32", "PutInt32", "schema.Int32"},
	schema.Int64:       {"int64", "Int64", "PutInt64", "schema.Int64"},
	schema.Double:      {"float64", "Double", "PutDouble", "schema.Double"},
	schema.Boolean:     {"bool", "Bool", "PutBool", "schema.Boolean"},
	schema.FixedString: {"string", "String", "PutString", "schema.FixedString"},
}

// NewGenerator creates a new code generator
func NewGenerator(set *plan.Set, opts Options) *Generator {
	if opts.Runtime == "" {
		opts.Runtime = DefaultRuntime
	}
	return &Generator{set: set, opts: opts}
}

// Generate returns the formatted source of one Go file holding every record
// and message of the set.
func (g *Generator) Generate() ([]byte, error) {
	if !token.IsIdentifier(g.opts.Package) {
		return nil, fmt.Errorf("invalid package name: %q", g.opts.Package)
	}
	if err := g.checkNames(); err != nil {
		return nil, err
	}

	var out strings.Builder
	out.WriteString("// Code generated by layoutc. DO NOT EDIT.\n\n")
	out.WriteString(fmt.Sprintf("package %s\n\n", g.opts.Package))
	out.WriteString("import (\n")
	out.WriteString(fmt.Sprintf("\t%q\n", g.opts.Runtime+"/flyweight"))
	out.WriteString(fmt.Sprintf("\t%q\n", g.opts.Runtime+"/plan"))
	if g.hasSlots() {
		out.WriteString(fmt.Sprintf("\t%q\n", g.opts.Runtime+"/schema"))
	}
	out.WriteString(")\n\n")

	for _, p := range g.set.Records {
		out.WriteString(g.generateRecord(p))
		Logger().Debug("generated record", zap.String("record", p.Name))
	}
	for _, p := range g.set.Messages {
		out.WriteString(g.generateMessage(p))
		Logger().Debug("generated message", zap.String("message", p.Name), zap.Uint16("id", p.ID))
	}

	src, err := format.Source([]byte(out.String()))
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}

// decl is one package-level identifier of the generated file.
type decl struct {
	kind string
	name string
}

// declarations lists the package-level identifiers emitted for p, type first.
func declarations(p *plan.Plan, message bool) []decl {
	name := exportName(p.Name)
	decls := []decl{{"type", name}, {"var", planVarName(p)}}
	if !message {
		return append(decls, decl{"const", name + "Length"})
	}
	decls = append(decls,
		decl{"const", name + "ID"},
		decl{"const", name + "Version"},
		decl{"const", name + "CoreLength"},
		decl{"const", name + "FixedLength"},
		decl{"func", "New" + name},
	)
	if p.Repeated != nil {
		decls = append(decls, decl{"func", name + "Length"})
	}
	return decls
}

// checkNames rejects sets whose generated identifiers would collide.
func (g *Generator) checkNames() error {
	owners := make(map[string]string)
	all := append(append([]*plan.Plan{}, g.set.Records...), g.set.Messages...)

	for i, p := range all {
		name := exportName(p.Name)
		if !token.IsIdentifier(name) {
			return fmt.Errorf("%s: not a valid Go identifier", p.Name)
		}
		for _, d := range declarations(p, i >= len(g.set.Records)) {
			if other, ok := owners[d.name]; ok {
				return fmt.Errorf("%s and %s both generate %s %s", other, p.Name, d.kind, d.name)
			}
			owners[d.name] = p.Name
		}

		methods := map[string]bool{"Bind": true, "View": true}
		if p.Header != nil {
			methods["WriteHeader"] = true
			methods["BindWriteHeader"] = true
			methods["ValidateHeader"] = true
		}
		if p.Repeated != nil {
			methods["Resize"] = true
			methods["ReadSize"] = true
			methods["Committed"] = true
			methods["CommittedLength"] = true
		}

		var names []string
		for _, s := range p.Fields {
			field := exportName(s.Name)
			if !token.IsIdentifier(field) {
				return fmt.Errorf("%s.%s: not a valid Go identifier", p.Name, s.Name)
			}
			names = append(names, field, "Set"+field)
			if s.Type == schema.FixedString {
				names = append(names, field+"Bytes", "Set"+field+"Padded")
			}
		}
		if p.Repeated != nil {
			if _, ok := g.set.Record(p.Repeated.Element.Name); !ok {
				return fmt.Errorf("%s: element record %s is not in the set", p.Name, p.Repeated.Element.Name)
			}
			names = append(names, exportName(p.Repeated.Field)+"At")
		}
		for _, m := range names {
			if methods[m] {
				return fmt.Errorf("%s: generated method %s collides with another method", p.Name, m)
			}
			methods[m] = true
		}
	}
	return nil
}

// generateRecord emits the plan literal, length constant and accessor type
// for a repeated-record element.
func (g *Generator) generateRecord(p *plan.Plan) string {
	var code strings.Builder
	typeName := exportName(p.Name)

	code.WriteString(g.generatePlan(p))
	code.WriteString(fmt.Sprintf("// %sLength is the encoded size of one %s element.\n", typeName, typeName))
	code.WriteString(fmt.Sprintf("const %sLength = %d\n\n", typeName, p.CoreLength))

	code.WriteString(fmt.Sprintf("// %s is a flyweight over one %s element. It is bound by the\n", typeName, p.Name))
	code.WriteString("// owning message and moves with every indexed access.\n")
	code.WriteString(fmt.Sprintf("type %s struct {\n", typeName))
	code.WriteString("\tview *flyweight.View\n")
	code.WriteString("}\n\n")

	code.WriteString(g.generateView(typeName))
	for _, s := range p.Fields {
		code.WriteString(g.generateFieldAccessors(p, typeName, s))
	}
	return code.String()
}

// generateMessage emits the plan literal, constants, constructor and
// accessors for a message.
func (g *Generator) generateMessage(p *plan.Plan) string {
	var code strings.Builder
	typeName := exportName(p.Name)
	planVar := planVarName(p)

	code.WriteString(g.generatePlan(p))
	code.WriteString("const (\n")
	code.WriteString(fmt.Sprintf("\t%sID = %d\n", typeName, p.ID))
	code.WriteString(fmt.Sprintf("\t%sVersion = %d\n", typeName, p.Version))
	code.WriteString(fmt.Sprintf("\t%sCoreLength = %d\n", typeName, p.CoreLength))
	code.WriteString(fmt.Sprintf("\t%sFixedLength = %t\n", typeName, p.Fixed()))
	code.WriteString(")\n\n")

	code.WriteString(fmt.Sprintf("// %s is a flyweight over the %s wire layout.\n", typeName, p.Name))
	code.WriteString(fmt.Sprintf("type %s struct {\n", typeName))
	code.WriteString("\tview *flyweight.View\n")
	if p.Repeated != nil {
		code.WriteString(fmt.Sprintf("\telem %s\n", exportName(p.Repeated.Element.Name)))
	}
	code.WriteString("}\n\n")

	code.WriteString(fmt.Sprintf("// New%s returns an unbound %s.\n", typeName, typeName))
	code.WriteString(fmt.Sprintf("func New%s() *%s {\n", typeName, typeName))
	code.WriteString(fmt.Sprintf("\treturn &%s{view: flyweight.NewView(%s)}\n", typeName, planVar))
	code.WriteString("}\n\n")

	code.WriteString("// Bind points m at buf starting at offset.\n")
	code.WriteString(fmt.Sprintf("func (m *%s) Bind(buf flyweight.DirectBuffer, offset int) error {\n", typeName))
	code.WriteString("\treturn m.view.Bind(buf, offset)\n")
	code.WriteString("}\n\n")

	code.WriteString(g.generateView(typeName))

	if p.Header != nil {
		code.WriteString(g.generateHeader(typeName))
	}

	for _, s := range p.Fields {
		code.WriteString(g.generateFieldAccessors(p, typeName, s))
	}

	if p.Repeated != nil {
		code.WriteString(g.generateRepeated(p, typeName))
	}
	return code.String()
}

// generatePlan emits the plan as a package-level literal.
func (g *Generator) generatePlan(p *plan.Plan) string {
	var code strings.Builder

	code.WriteString(fmt.Sprintf("var %s = &plan.Plan{\n", planVarName(p)))
	code.WriteString(fmt.Sprintf("\tName: %q,\n", p.Name))
	if p.ID != 0 {
		code.WriteString(fmt.Sprintf("\tID: %d,\n", p.ID))
	}
	if p.Version != 0 {
		code.WriteString(fmt.Sprintf("\tVersion: %d,\n", p.Version))
	}
	code.WriteString("\tFields: []plan.Slot{\n")
	for _, s := range p.Fields {
		code.WriteString(fmt.Sprintf("\t\t{Name: %q, Type: %s, Offset: %d, Length: %d},\n",
			s.Name, accessors[s.Type].ident, s.Offset, s.Length))
	}
	code.WriteString("\t},\n")
	code.WriteString(fmt.Sprintf("\tCoreLength: %d,\n", p.CoreLength))
	if h := p.Header; h != nil {
		code.WriteString(fmt.Sprintf("\tHeader: &plan.Header{ProtocolID: %d, ProtocolVersion: %d},\n",
			h.ProtocolID, h.ProtocolVersion))
	}
	if r := p.Repeated; r != nil {
		code.WriteString("\tRepeated: &plan.Repeated{\n")
		code.WriteString(fmt.Sprintf("\t\tField: %q,\n", r.Field))
		code.WriteString(fmt.Sprintf("\t\tCountOffset: %d,\n", r.CountOffset))
		code.WriteString(fmt.Sprintf("\t\tRecordStart: %d,\n", r.RecordStart))
		code.WriteString(fmt.Sprintf("\t\tElementLength: %d,\n", r.ElementLength))
		code.WriteString(fmt.Sprintf("\t\tElement: %s,\n", planVarName(r.Element)))
		code.WriteString("\t},\n")
	}
	code.WriteString("}\n\n")

	return code.String()
}

func (g *Generator) generateView(typeName string) string {
	var code strings.Builder
	code.WriteString("// View returns the underlying flyweight view.\n")
	code.WriteString(fmt.Sprintf("func (m *%s) View() *flyweight.View {\n", typeName))
	code.WriteString("\treturn m.view\n")
	code.WriteString("}\n\n")
	return code.String()
}

func (g *Generator) generateHeader(typeName string) string {
	var code strings.Builder

	code.WriteString("// WriteHeader writes the wire header for this message.\n")
	code.WriteString(fmt.Sprintf("func (m *%s) WriteHeader() error {\n", typeName))
	code.WriteString("\treturn m.view.WriteHeader()\n")
	code.WriteString("}\n\n")

	code.WriteString("// BindWriteHeader binds m and writes the wire header.\n")
	code.WriteString(fmt.Sprintf("func (m *%s) BindWriteHeader(buf flyweight.DirectBuffer, offset int) error {\n", typeName))
	code.WriteString("\treturn m.view.BindWriteHeader(buf, offset)\n")
	code.WriteString("}\n\n")

	code.WriteString("// ValidateHeader reports whether the bound bytes carry this message's header.\n")
	code.WriteString(fmt.Sprintf("func (m *%s) ValidateHeader() bool {\n", typeName))
	code.WriteString("\treturn m.view.ValidateHeader()\n")
	code.WriteString("}\n\n")

	return code.String()
}

// generateFieldAccessors generates the getter and setter for one slot
func (g *Generator) generateFieldAccessors(p *plan.Plan, typeName string, s plan.Slot) string {
	var code strings.Builder
	acc := accessors[s.Type]
	field := exportName(s.Name)
	slot := fmt.Sprintf("%s.Fields[%d]", planVarName(p), slotIndex(p, s.Name))

	code.WriteString(fmt.Sprintf("// %s returns %s at offset %d\n", field, s.Name, s.Offset))
	code.WriteString(fmt.Sprintf("func (m *%s) %s() %s {\n", typeName, field, acc.goType))
	code.WriteString(fmt.Sprintf("\treturn m.view.%s(%s)\n", acc.get, slot))
	code.WriteString("}\n\n")

	code.WriteString(fmt.Sprintf("// Set%s sets %s at offset %d\n", field, s.Name, s.Offset))
	code.WriteString(fmt.Sprintf("func (m *%s) Set%s(v %s) error {\n", typeName, field, acc.goType))
	code.WriteString(fmt.Sprintf("\treturn m.view.%s(%s, v)\n", acc.put, slot))
	code.WriteString("}\n\n")

	if s.Type == schema.FixedString {
		code.WriteString(fmt.Sprintf("// %sBytes returns %s without copying\n", field, s.Name))
		code.WriteString(fmt.Sprintf("func (m *%s) %sBytes() []byte {\n", typeName, field))
		code.WriteString(fmt.Sprintf("\treturn m.view.StringBytes(%s)\n", slot))
		code.WriteString("}\n\n")

		code.WriteString(fmt.Sprintf("// Set%sPadded sets %s and space-fills the rest of the field\n", field, s.Name))
		code.WriteString(fmt.Sprintf("func (m *%s) Set%sPadded(v string) error {\n", typeName, field))
		code.WriteString(fmt.Sprintf("\treturn m.view.PutStringPadded(%s, v)\n", slot))
		code.WriteString("}\n\n")
	}

	return code.String()
}

// generateRepeated emits the count and indexed accessors of the repeated
// region.
func (g *Generator) generateRepeated(p *plan.Plan, typeName string) string {
	var code strings.Builder
	r := p.Repeated
	elemType := exportName(r.Element.Name)
	field := exportName(r.Field)

	code.WriteString(fmt.Sprintf("// %sLength returns the bytes a %s with count %s needs.\n", typeName, typeName, r.Field))
	code.WriteString(fmt.Sprintf("func %sLength(count int) int {\n", typeName))
	code.WriteString(fmt.Sprintf("\treturn %s.PrecomputeLength(count)\n", planVarName(p)))
	code.WriteString("}\n\n")

	code.WriteString(fmt.Sprintf("// Resize sets the number of %s elements.\n", r.Field))
	code.WriteString(fmt.Sprintf("func (m *%s) Resize(count int) error {\n", typeName))
	code.WriteString("\treturn m.view.Resize(count)\n")
	code.WriteString("}\n\n")

	code.WriteString(fmt.Sprintf("// ReadSize reads the %s count from the buffer.\n", r.Field))
	code.WriteString(fmt.Sprintf("func (m *%s) ReadSize() int {\n", typeName))
	code.WriteString("\treturn m.view.ReadSize()\n")
	code.WriteString("}\n\n")

	code.WriteString(fmt.Sprintf("func (m *%s) Committed() int {\n", typeName))
	code.WriteString("\treturn m.view.Committed()\n")
	code.WriteString("}\n\n")

	code.WriteString(fmt.Sprintf("func (m *%s) CommittedLength() int {\n", typeName))
	code.WriteString("\treturn m.view.CommittedLength()\n")
	code.WriteString("}\n\n")

	code.WriteString(fmt.Sprintf("// %sAt returns element i. The result is shared and moves on the next call.\n", field))
	code.WriteString(fmt.Sprintf("func (m *%s) %sAt(i int) (*%s, error) {\n", typeName, field, elemType))
	code.WriteString("\tv, err := m.view.RecordAt(i)\n")
	code.WriteString("\tif err != nil {\n")
	code.WriteString("\t\treturn nil, err\n")
	code.WriteString("\t}\n")
	code.WriteString("\tm.elem.view = v\n")
	code.WriteString("\treturn &m.elem, nil\n")
	code.WriteString("}\n\n")

	return code.String()
}

// hasSlots reports whether any plan has a field, and so whether the
// generated file refers to the schema package.
func (g *Generator) hasSlots() bool {
	for _, p := range g.set.Records {
		if len(p.Fields) > 0 {
			return true
		}
	}
	for _, p := range g.set.Messages {
		if len(p.Fields) > 0 {
			return true
		}
	}
	return false
}

func slotIndex(p *plan.Plan, name string) int {
	for i, s := range p.Fields {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// exportName upper-cases the first letter of a schema name.
func exportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

func planVarName(p *plan.Plan) string {
	r, size := utf8.DecodeRuneInString(p.Name)
	return string(unicode.ToLower(r)) + p.Name[size:] + "Plan"
}
