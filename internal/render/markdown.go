// Package render formats assistant replies for the terminal.
package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer renders markdown for a terminal of a given width. The zero
// value is not usable; construct with NewRenderer.
type Renderer struct {
	tr    *glamour.TermRenderer
	style string
	width int
}

// NewRenderer builds a markdown renderer. Unknown styles fall back to
// auto-detection, zero or negative widths to 80 columns.
func NewRenderer(style string, width int) (*Renderer, error) {
	if width <= 0 {
		width = 80
	}

	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
	}
	switch style {
	case "dark", "light", "notty", "dracula", "ascii":
		opts = append(opts, glamour.WithStandardStyle(style))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &Renderer{tr: tr, style: style, width: width}, nil
}

// Render formats markdown text. When rendering fails the raw text is
// returned so the reply is never lost.
func (r *Renderer) Render(text string) string {
	out, err := r.tr.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// Width returns the wrap width the renderer was built with
func (r *Renderer) Width() int {
	return r.width
}
