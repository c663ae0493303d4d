package position

import (
	"strings"
)

// SpanHighlighter renders source lines with a caret marker underneath.
type SpanHighlighter struct {
	sourceMap *SourceMap
}

// NewSpanHighlighter creates a new span highlighter.
func NewSpanHighlighter(sourceMap *SourceMap) *SpanHighlighter {
	return &SpanHighlighter{
		sourceMap: sourceMap,
	}
}

// HighlightPosition returns the source line containing pos followed by a
// caret line pointing at its column. Tabs are shown as single spaces so the
// caret lines up regardless of tab width. An unknown file or line yields "".
func (sh *SpanHighlighter) HighlightPosition(pos Position) string {
	if !pos.IsValid() || sh.sourceMap.GetFile(pos.Filename) == nil {
		return ""
	}

	line := sh.sourceMap.GetLine(pos)

	var result strings.Builder
	result.WriteString(" ")
	result.WriteString(strings.ReplaceAll(line, "\t", " "))
	result.WriteString("\n")
	result.WriteString(strings.Repeat(" ", pos.Column))
	result.WriteString("^")
	return result.String()
}

// HighlightSpan underlines a single-line span with carets. Multi-line spans
// are clipped to the end of their first line.
func (sh *SpanHighlighter) HighlightSpan(span Span) string {
	if !span.IsValid() {
		return ""
	}
	head := sh.HighlightPosition(span.Start)
	if head == "" {
		return ""
	}

	line := sh.sourceMap.GetLine(span.Start)
	width := span.End.Column - span.Start.Column
	if span.End.Line != span.Start.Line {
		width = len(line) - span.Start.Column + 1
	}
	if width <= 1 {
		return head
	}
	return head + strings.Repeat("^", width-1)
}
