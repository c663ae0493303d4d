package diagnostic

import (
	"fmt"
	"io"

	"github.com/MBogda/turing-machine-translator/internal/position"
)

const (
	ansiRed   = "\x1b[31;1m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Renderer prints diagnostics in caret style:
//
//	Semantic Error on 2:5: incompatible types INTEGER and BOOLEAN:
//	 x = true
//	     ^
type Renderer struct {
	highlighter *position.SpanHighlighter
	color       bool
}

// NewRenderer creates a renderer backed by the given sources.
func NewRenderer(sources *position.SourceMap, color bool) *Renderer {
	return &Renderer{
		highlighter: position.NewSpanHighlighter(sources),
		color:       color,
	}
}

// Render formats one diagnostic.
func (r *Renderer) Render(d Diagnostic) string {
	header := fmt.Sprintf("%s Error on %d:%d: %s:", d.Phase(), d.Pos.Line, d.Pos.Column, d.Message)
	if d.Pos.Filename != "" {
		header = d.Pos.Filename + ": " + header
	}
	if r.color {
		header = ansiRed + header + ansiReset
	}

	snippet := r.highlighter.HighlightPosition(d.Pos)
	if snippet == "" {
		return header
	}
	if r.color {
		snippet = ansiBold + snippet + ansiReset
	}
	return header + "\n" + snippet
}

// WriteAll renders every diagnostic to w, one block per diagnostic.
func (r *Renderer) WriteAll(w io.Writer, diagnostics []Diagnostic) error {
	for _, d := range diagnostics {
		if _, err := fmt.Fprintln(w, r.Render(d)); err != nil {
			return fmt.Errorf("write diagnostic: %w", err)
		}
	}
	return nil
}
