// Package ui renders command output: prefixed status lines, the version
// check summary card and the interactive check view.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/caioricciuti/plugin-updater/internal/ui/components"
)

// Printer writes icon-prefixed status lines. Colors are only emitted when
// the writer is a color-capable terminal.
type Printer struct {
	out    io.Writer
	styles *components.BaseStyles
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:    out,
		styles: components.NewBaseStylesFor(lipgloss.NewRenderer(out)),
	}
}

// Styles returns the styles bound to the printer's writer.
func (p *Printer) Styles() *components.BaseStyles {
	return p.styles
}

func (p *Printer) Info(format string, args ...interface{}) {
	p.line(components.LevelInfo, format, args...)
}

func (p *Printer) Success(format string, args ...interface{}) {
	p.line(components.LevelSuccess, format, args...)
}

func (p *Printer) Warning(format string, args ...interface{}) {
	p.line(components.LevelWarning, format, args...)
}

func (p *Printer) Error(format string, args ...interface{}) {
	p.line(components.LevelError, format, args...)
}

// Println writes an already rendered block, such as a card, as is.
func (p *Printer) Println(s string) {
	fmt.Fprintln(p.out, s)
}

func (p *Printer) line(level components.Level, format string, args ...interface{}) {
	status := components.StatusLine{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Styles:  p.styles,
	}
	p.Println(status.Render())
}
