package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alexhholmes/flyweight/flyweight"
	"github.com/alexhholmes/flyweight/plan"
)

func runDump(cfg config, stdout, stderr io.Writer) error {
	if len(cfg.args) != 2 {
		return fmt.Errorf("expected schema and data arguments, got %d", len(cfg.args))
	}

	st := newStyles(stdout)
	set, err := compileSchema(cfg.args[0], stderr, newStyles(stderr))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cfg.args[1])
	if err != nil {
		return fmt.Errorf("read data: %w", err)
	}
	buf := flyweight.NewBuffer(data)

	p, err := selectMessage(set, buf, cfg)
	if err != nil {
		return err
	}

	v := flyweight.NewView(p)
	if err := v.Bind(buf, cfg.offset); err != nil {
		return err
	}

	fmt.Fprintln(stdout, st.title.Render("message "+p.Name)+
		st.dim.Render(fmt.Sprintf("  offset=%d buffer=%d bytes", cfg.offset, len(data))))

	if h, ok := v.Header(); ok {
		status := st.ok.Render("valid")
		if !v.ValidateHeader() {
			status = st.err.Render("INVALID")
		}
		fmt.Fprintf(stdout, "header: length=%d encoding=%#04x id=%d version=%d %s\n",
			h.MessageLength, h.EncodingType, h.ProtocolID, h.ProtocolVersion, status)
	}

	t := st.table("FIELD", "TYPE", "OFFSET", "VALUE")
	v.Each(func(s plan.Slot, val any) {
		t.Row(s.Name, s.Type.String(), strconv.Itoa(s.Offset), formatValue(val))
	})
	fmt.Fprintln(stdout, t.Render())

	if p.Repeated == nil {
		return nil
	}
	return dumpRepeated(stdout, st, v)
}

// selectMessage picks the plan named by -message, or the message whose
// header protocol id matches the bytes at -offset.
func selectMessage(set *plan.Set, buf flyweight.DirectBuffer, cfg config) (*plan.Plan, error) {
	if cfg.message != "" {
		p, ok := set.Message(cfg.message)
		if !ok {
			return nil, fmt.Errorf("no message named %q in schema", cfg.message)
		}
		return p, nil
	}

	h, err := flyweight.PeekHeader(buf, cfg.offset)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for _, p := range set.Messages {
		if p.Header != nil && p.Header.ProtocolID == h.ProtocolID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no message with protocol id %d; pass -message", h.ProtocolID)
}

func dumpRepeated(w io.Writer, st styles, v *flyweight.View) error {
	r := v.Plan().Repeated
	n := v.ReadSize()
	fmt.Fprintf(w, "%s: %d x %s (%d bytes each)\n", r.Field, n, r.Element.Name, r.ElementLength)
	if n == 0 {
		return nil
	}

	headers := []string{"#"}
	for _, s := range r.Element.Fields {
		headers = append(headers, s.Name)
	}
	t := st.table(headers...)

	for i := 0; i < n; i++ {
		e, err := v.RecordAt(i)
		if err != nil {
			return fmt.Errorf("%s[%d]: %w", r.Field, i, err)
		}
		row := []string{strconv.Itoa(i)}
		e.Each(func(_ plan.Slot, val any) {
			row = append(row, formatValue(val))
		})
		t.Row(row...)
	}
	fmt.Fprintln(w, t.Render())
	return nil
}

func formatValue(val any) string {
	if s, ok := val.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(val)
}
