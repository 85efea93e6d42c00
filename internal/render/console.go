// Package render turns an aggregated report into output: a colorized console
// transcript or a lossless JSON/YAML document. Renderers never mutate the
// report and never re-run probes.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sysprobe/sysprobe/internal/parse"
	"github.com/sysprobe/sysprobe/internal/report"
)

// maxColumnWidth caps console table columns, padding included.
const maxColumnWidth = 30

type consoleStyles struct {
	banner    lipgloss.Style
	header    lipgloss.Style
	label     lipgloss.Style
	title     lipgloss.Style
	tableHead lipgloss.Style
	separator lipgloss.Style
	footer    lipgloss.Style
}

// Console renders the human-readable projection.
type Console struct {
	styles consoleStyles
}

// NewConsole builds a console renderer; color=false yields plain text for
// pipes and dumb terminals.
func NewConsole(color bool) *Console {
	if !color {
		plain := lipgloss.NewStyle()
		return &Console{styles: consoleStyles{
			banner: plain, header: plain, label: plain, title: plain,
			tableHead: plain, separator: plain, footer: plain,
		}}
	}
	return &Console{styles: consoleStyles{
		banner:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		title:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		tableHead: lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true),
		separator: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}}
}

// Render writes the whole report. Rendering the same report twice produces
// byte-identical output.
func (c *Console) Render(w io.Writer, r *report.Report) error {
	if err := c.banner(w, r); err != nil {
		return err
	}
	for _, ns := range r.Sections() {
		if err := c.section(w, ns); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%s\n", c.styles.footer.Render("System information scan completed."))
	return err
}

func (c *Console) banner(w io.Writer, r *report.Report) error {
	const inner = 62
	top := "╔" + strings.Repeat("═", inner) + "╗"
	mid := "║" + center("Host System Report", inner) + "║"
	bottom := "╚" + strings.Repeat("═", inner) + "╝"
	for _, line := range []string{top, mid, bottom} {
		if _, err := fmt.Fprintln(w, c.styles.banner.Render(line)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	return err
}

func (c *Console) section(w io.Writer, ns report.NamedSection) error {
	title := strings.ToUpper(ns.Name) + " INFORMATION"
	if _, err := fmt.Fprintf(w, "\n%s\n", c.styles.header.Render("=== "+title+" ===")); err != nil {
		return err
	}

	if ns.Section.Len() == 0 {
		_, err := fmt.Fprintln(w, "  No data available")
		return err
	}

	for _, name := range ns.Section.Names() {
		value, _ := ns.Section.Get(name)
		if value.Kind() == report.KindTable {
			if err := c.table(w, parse.TitleLabel(name), value.Table()); err != nil {
				return err
			}
			continue
		}
		line := fmt.Sprintf("%s %s", c.styles.label.Render(parse.TitleLabel(name)+":"), value.Display())
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) table(w io.Writer, title string, t *report.Table) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", c.styles.title.Render(title+":")); err != nil {
		return err
	}
	if t.Len() == 0 {
		_, err := fmt.Fprintln(w, "  No data available")
		return err
	}

	widths := columnWidths(t)

	var header, separator strings.Builder
	header.WriteString("  ")
	separator.WriteString("  ")
	for i, h := range t.Headers {
		header.WriteString(pad(h, widths[i]))
		separator.WriteString(strings.Repeat("-", widths[i]))
	}
	if _, err := fmt.Fprintln(w, c.styles.tableHead.Render(header.String())); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, c.styles.separator.Render(separator.String())); err != nil {
		return err
	}

	for _, row := range t.Rows {
		var line strings.Builder
		line.WriteString("  ")
		for i, cell := range row {
			line.WriteString(pad(truncateCell(cell.Display(), widths[i]), widths[i]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

// columnWidths sizes each column to its widest content plus padding, capped
// at maxColumnWidth.
func columnWidths(t *report.Table) []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len([]rune(h))
		for _, row := range t.Rows {
			if l := len([]rune(row[i].Display())); l > widths[i] {
				widths[i] = l
			}
		}
		widths[i] += 2
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}
	return widths
}

// truncateCell clips content that does not fit the column's content width,
// marking the cut with a trailing ellipsis.
func truncateCell(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width-2 {
		return s
	}
	return string(runes[:width-5]) + "..."
}

func pad(s string, width int) string {
	runes := len([]rune(s))
	if runes >= width {
		return s
	}
	return s + strings.Repeat(" ", width-runes)
}

func center(s string, width int) string {
	gap := width - len([]rune(s))
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}
