package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/multierr"

	"github.com/alexhholmes/flyweight/compiler"
	"github.com/alexhholmes/flyweight/internal/parser"
	"github.com/alexhholmes/flyweight/plan"
)

// compileSchema loads and compiles a schema file. Every compile failure is
// printed to stderr; the returned set still holds the plans that compiled.
func compileSchema(path string, stderr io.Writer, st styles) (*plan.Set, error) {
	batch, err := parser.Load(path)
	if err != nil {
		for _, e := range multierr.Errors(err) {
			st.printErr(stderr, e)
		}
		return nil, fmt.Errorf("load %s: %d schema errors", path, len(multierr.Errors(err)))
	}

	set, err := compiler.CompileBatch(batch)
	if err != nil {
		errs := multierr.Errors(err)
		for _, e := range errs {
			st.printErr(stderr, e)
		}
		return set, fmt.Errorf("compile %s: %d schema errors", path, len(errs))
	}
	return set, nil
}

func oneArg(cfg config, what string) (string, error) {
	if len(cfg.args) != 1 {
		return "", fmt.Errorf("expected one %s argument, got %d", what, len(cfg.args))
	}
	return cfg.args[0], nil
}

func runInspect(cfg config, stdout, stderr io.Writer) error {
	path, err := oneArg(cfg, "schema")
	if err != nil {
		return err
	}

	st := newStyles(stdout)
	set, compileErr := compileSchema(path, stderr, st)
	if set == nil {
		return compileErr
	}

	for _, p := range set.Records {
		fmt.Fprintln(stdout, st.title.Render("record "+p.Name)+
			st.dim.Render(fmt.Sprintf("  element=%d bytes", p.CoreLength)))
		fmt.Fprintln(stdout, layoutTable(st, p).Render())
		fmt.Fprintln(stdout)
	}

	for _, p := range set.Messages {
		summary := fmt.Sprintf("  id=%d version=%d core=%d bytes", p.ID, p.Version, p.CoreLength)
		if p.Fixed() {
			summary += " fixed"
		}
		fmt.Fprintln(stdout, st.title.Render("message "+p.Name)+st.dim.Render(summary))
		fmt.Fprintln(stdout, layoutTable(st, p).Render())
		fmt.Fprintln(stdout)
	}

	return compileErr
}

// layoutTable renders one row per byte range of the plan, header and count
// slot included.
func layoutTable(st styles, p *plan.Plan) *table.Table {
	t := st.table("FIELD", "TYPE", "OFFSET", "LENGTH")

	if p.Header != nil {
		t.Row("(header)", "header", "0", strconv.Itoa(plan.HeaderLength))
	}
	for _, s := range p.Fields {
		t.Row(s.Name, s.Type.String(), strconv.Itoa(s.Offset), strconv.Itoa(s.Length))
	}
	if r := p.Repeated; r != nil {
		t.Row("(count "+r.Field+")", "uint32", strconv.Itoa(r.CountOffset), strconv.Itoa(plan.CountLength))
		t.Row(r.Field+"[i]", r.Element.Name, fmt.Sprintf("%d+i*%d", r.RecordStart, r.ElementLength), strconv.Itoa(r.ElementLength))
	}
	return t
}
