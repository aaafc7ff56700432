// Package ui renders user-facing output and asks for confirmation.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
)

// Printer writes styled lines to w. Styles degrade to plain text when w is
// not a terminal.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) line(style lipgloss.Style, format string, a ...any) {
	fmt.Fprintln(p.w, style.Render(fmt.Sprintf(format, a...)))
}

func (p *Printer) Header(format string, a ...any) { p.line(headerStyle, format, a...) }
func (p *Printer) Success(format string, a ...any) { p.line(successStyle, format, a...) }
func (p *Printer) Warning(format string, a ...any) { p.line(warningStyle, format, a...) }
func (p *Printer) Error(format string, a ...any) { p.line(errorStyle, format, a...) }
func (p *Printer) Faint(format string, a ...any) { p.line(faintStyle, format, a...) }

// Paths prints an indented list.
func (p *Printer) Paths(paths []string) {
	for _, path := range paths {
		fmt.Fprintln(p.w, "  "+pathStyle.Render(path))
	}
}

// List prints a titled list, or nothing when items is empty.
func (p *Printer) List(title string, items []string, style func(string, ...any)) {
	if len(items) == 0 {
		return
	}
	style("%s (%d):", title, len(items))
	p.Paths(items)
}

// Block prints text verbatim inside a rounded border.
func (p *Printer) Block(text string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	fmt.Fprintln(p.w, box.Render(text))
}
