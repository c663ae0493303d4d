// Package position tracks where tokens, tree nodes and diagnostics come from
// in the source text.
package position

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Position is a point in a source file. Line and Column are 1-based, Offset
// is a 0-based byte offset.
type Position struct {
	Filename string
	Line     int
	Column   int
	Offset   int
}

// IsValid reports whether p was produced by the lexer.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
}

// Span covers the source text of a node. End is exclusive.
type Span struct {
	Start Position
	End   Position
}

// IsValid reports whether both ends are valid and ordered within one file.
func (s Span) IsValid() bool {
	if !s.Start.IsValid() || !s.End.IsValid() {
		return false
	}
	return s.Start.Filename == s.End.Filename && s.Start.Offset <= s.End.Offset
}

func (s Span) String() string {
	start := s.Start.String()
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s-%d", start, s.End.Column)
	}
	return fmt.Sprintf("%s-%d:%d", start, s.End.Line, s.End.Column)
}

// Contains reports whether pos lies inside s.
func (s Span) Contains(pos Position) bool {
	return s.IsValid() && pos.Filename == s.Start.Filename &&
		pos.Offset >= s.Start.Offset && pos.Offset < s.End.Offset
}

// SourceFile is the text of one compiled file with an index of line starts.
type SourceFile struct {
	Filename string
	Content  string

	lineStarts []int
}

// NewSourceFile indexes content.
func NewSourceFile(filename, content string) *SourceFile {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &SourceFile{Filename: filename, Content: content, lineStarts: starts}
}

// LineCount returns the number of lines, counting a final unterminated one.
func (sf *SourceFile) LineCount() int {
	return len(sf.lineStarts)
}

// GetLine returns line n without its terminator, or "" when n is out of
// range.
func (sf *SourceFile) GetLine(n int) string {
	if n < 1 || n > len(sf.lineStarts) {
		return ""
	}
	end := len(sf.Content)
	if n < len(sf.lineStarts) {
		end = sf.lineStarts[n] - 1
	}
	return strings.TrimSuffix(sf.Content[sf.lineStarts[n-1]:end], "\r")
}

// PositionFromOffset converts a byte offset into a Position. Offsets outside
// the content yield the zero Position.
func (sf *SourceFile) PositionFromOffset(offset int) Position {
	if offset < 0 || offset > len(sf.Content) {
		return Position{}
	}
	line := sort.Search(len(sf.lineStarts), func(i int) bool {
		return sf.lineStarts[i] > offset
	})
	return Position{
		Filename: sf.Filename,
		Line:     line,
		Column:   offset - sf.lineStarts[line-1] + 1,
		Offset:   offset,
	}
}

// SourceMap holds the files of one compilation, keyed by filename.
type SourceMap struct {
	files map[string]*SourceFile
}

func NewSourceMap() *SourceMap {
	return &SourceMap{files: make(map[string]*SourceFile)}
}

// AddFile registers content under filename, replacing any earlier file.
func (sm *SourceMap) AddFile(filename, content string) *SourceFile {
	sf := NewSourceFile(filename, content)
	sm.files[filename] = sf
	return sf
}

func (sm *SourceMap) GetFile(filename string) *SourceFile {
	return sm.files[filename]
}

// GetLine returns the line pos points into, or "" for an unknown file.
func (sm *SourceMap) GetLine(pos Position) string {
	if sf := sm.files[pos.Filename]; sf != nil {
		return sf.GetLine(pos.Line)
	}
	return ""
}
