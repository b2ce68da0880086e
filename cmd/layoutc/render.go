package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
)

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
	dim    lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
}

// newStyles returns colored styles for terminals and bare ones otherwise,
// so piped output stays free of escape codes.
func newStyles(w io.Writer) styles {
	cell := lipgloss.NewStyle().Padding(0, 1)
	if !isTerminal(w) {
		return styles{
			title:  lipgloss.NewStyle(),
			header: cell,
			cell:   cell,
			border: lipgloss.NewStyle(),
			dim:    lipgloss.NewStyle(),
			ok:     lipgloss.NewStyle(),
			err:    lipgloss.NewStyle(),
		}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		header: cell.Bold(true).Foreground(lipgloss.Color("#87CEEB")),
		cell:   cell,
		border: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (s styles) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		})
}

func (s styles) printErr(w io.Writer, err error) {
	fmt.Fprintln(w, s.err.Render("error: "+err.Error()))
}
