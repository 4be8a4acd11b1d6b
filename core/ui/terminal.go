// Package ui - Terminal user interface
// Styled CLI output: headers, status lines, tables and summary boxes.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Palette
var (
	ColorAccent  = lipgloss.Color("#5B8DEF")
	ColorSuccess = lipgloss.Color("#3FB950")
	ColorWarning = lipgloss.Color("#D29922")
	ColorError   = lipgloss.Color("#FF6B6B")
	ColorMuted   = lipgloss.Color("#888888")
	ColorBorder  = lipgloss.Color("#444444")
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	renderer  *lipgloss.Renderer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer. Color is only emitted when out is a
// terminal and noColor is false.
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		renderer:  lipgloss.NewRenderer(out),
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Style returns a new style bound to the writer's renderer
func (w *Writer) Style() lipgloss.Style {
	return w.renderer.NewStyle()
}

func (w *Writer) paint(s lipgloss.Style, text string) string {
	if w.noColor {
		return text
	}
	return s.Render(text)
}

func (w *Writer) fg(c lipgloss.Color) lipgloss.Style {
	return w.Style().Foreground(c)
}

// Print writes text as is
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.paint(w.fg(ColorAccent).Bold(true), "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.paint(w.Style().Bold(true), "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s%s", w.paint(w.fg(ColorSuccess), "✓ "), fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println("%s%s", w.paint(w.fg(ColorWarning), "⚠ "), fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println("%s%s", w.paint(w.fg(ColorError), "✗ "), fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.Println("%s%s", w.paint(w.fg(ColorAccent), "ℹ "), fmt.Sprintf(format, args...))
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	w.Println("%s", w.paint(w.fg(ColorMuted), "  "+fmt.Sprintf(format, args...)))
}

// Muted renders secondary text
func (w *Writer) Muted(text string) string {
	return w.paint(w.fg(ColorMuted), text)
}

// Table renders a bordered table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	right   map[int]bool
	footer  []string
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	return &Table{
		w:       w,
		headers: headers,
		right:   make(map[int]bool),
	}
}

// AlignRight right-aligns the given columns, typically amounts
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

// AddRow adds a row, padding or truncating cells to the header count
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// SetFooter sets an emphasized last row, e.g. totals
func (t *Table) SetFooter(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.footer = row
}

// String renders the table
func (t *Table) String() string {
	rows := t.rows
	if t.footer != nil {
		rows = append(append([][]string(nil), rows...), t.footer)
	}
	footerRow := len(rows) - 1

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(t.headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := t.w.Style().Padding(0, 1)
			if t.right[col] {
				s = s.Align(lipgloss.Right)
			}
			if t.w.noColor {
				return s
			}
			switch {
			case row == table.HeaderRow:
				return s.Bold(true).Foreground(ColorAccent)
			case t.footer != nil && row == footerRow:
				return s.Bold(true)
			}
			return s
		})
	if !t.w.noColor {
		tbl = tbl.BorderStyle(t.w.fg(ColorBorder))
	}
	return tbl.String()
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println("%s", t.String())
}

// CostSummary renders a boxed cost summary
type CostSummary struct {
	w            *Writer
	Title        string
	TotalMonthly string
	TotalHourly  string
	TotalYearly  string
	Lines        []string
}

// NewCostSummary creates a cost summary
func (w *Writer) NewCostSummary(title string) *CostSummary {
	return &CostSummary{w: w, Title: title}
}

// Render prints the cost summary
func (s *CostSummary) Render() {
	s.w.Header(s.Title)

	lines := []string{
		s.w.paint(s.w.fg(ColorSuccess).Bold(true), fmt.Sprintf("Monthly Cost: %s", s.TotalMonthly)),
	}
	if s.TotalHourly != "" {
		lines = append(lines, s.w.Muted(fmt.Sprintf("Hourly Cost:  %s", s.TotalHourly)))
	}
	if s.TotalYearly != "" {
		lines = append(lines, s.w.Muted(fmt.Sprintf("Yearly Cost:  %s", s.TotalYearly)))
	}
	lines = append(lines, s.Lines...)

	box := s.w.Style().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)
	if !s.w.noColor {
		box = box.BorderForeground(ColorBorder)
	}
	s.w.Println("%s", box.Render(strings.Join(lines, "\n")))
}

// DiffView shows line-item changes between two estimates
type DiffView struct {
	w           *Writer
	Title       string
	Added       []DiffItem
	Removed     []DiffItem
	Changed     []DiffItem
	TotalChange string
	IsIncrease  bool
}

// DiffItem is a single diff item
type DiffItem struct {
	Name       string
	OldCost    string
	NewCost    string
	Change     string
	IsIncrease bool
}

// NewDiffView creates a diff view
func (w *Writer) NewDiffView(title string) *DiffView {
	return &DiffView{w: w, Title: title}
}

// Render prints the diff
func (d *DiffView) Render() {
	d.w.Header(d.Title)

	if len(d.Added) > 0 {
		d.w.SubHeader(fmt.Sprintf("Added (%d)", len(d.Added)))
		for _, item := range d.Added {
			d.w.Println("%s%s: %s", d.w.paint(d.w.fg(ColorError), "+ "), item.Name, item.NewCost)
		}
		d.w.Println("")
	}

	if len(d.Removed) > 0 {
		d.w.SubHeader(fmt.Sprintf("Removed (%d)", len(d.Removed)))
		for _, item := range d.Removed {
			d.w.Println("%s%s: %s", d.w.paint(d.w.fg(ColorSuccess), "- "), item.Name, item.OldCost)
		}
		d.w.Println("")
	}

	if len(d.Changed) > 0 {
		d.w.SubHeader(fmt.Sprintf("Changed (%d)", len(d.Changed)))
		for _, item := range d.Changed {
			change := d.w.paint(d.w.fg(ColorSuccess), item.Change)
			if item.IsIncrease {
				change = d.w.paint(d.w.fg(ColorError), "+"+item.Change)
			}
			d.w.Println("  %s: %s %s %s (%s)", item.Name, item.OldCost, d.w.paint(d.w.fg(ColorWarning), "→"), item.NewCost, change)
		}
		d.w.Println("")
	}

	d.w.Println("%s", strings.Repeat("─", 40))
	prefix := ""
	color := ColorSuccess
	if d.IsIncrease {
		prefix = "+"
		color = ColorError
	}
	d.w.Println("%s%s", d.w.paint(d.w.Style().Bold(true), "Total Change: "), d.w.paint(d.w.fg(color), prefix+d.TotalChange))
}
