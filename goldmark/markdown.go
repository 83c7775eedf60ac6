// Package goldmark renders markdown replies as styled terminal text,
// using goldmark for parsing and lipgloss for styling.
package goldmark

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/coda"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
)

// DefaultWidth is used when the caller passes a non-positive width.
const DefaultWidth = 80

// Renderer turns markdown into styled terminal text. Styles are bound to a
// lipgloss renderer, so output written to a non-terminal carries no escapes.
type Renderer struct {
	parser parser.Parser
	lr     *lipgloss.Renderer
	styles styles
}

// New creates a Renderer that styles output for lr using theme colors.
// A nil lr uses lipgloss's default renderer.
func New(lr *lipgloss.Renderer, theme coda.Theme) *Renderer {
	if lr == nil {
		lr = lipgloss.DefaultRenderer()
	}
	return &Renderer{
		parser: goldmark.DefaultParser(),
		lr:     lr,
		styles: newStyles(lr, theme),
	}
}

// Render parses markdown source and returns styled output. Paragraphs,
// headings, quotes and list items are word-wrapped to width. Code blocks
// are written as-is without reflow.
func (r *Renderer) Render(source string, width int) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return r.render([]byte(source), width)
}

// Render is a convenience wrapper around New(nil, theme).Render.
func Render(source string, width int, theme coda.Theme) string {
	return New(nil, theme).Render(source, width)
}
