package position

import (
	"testing"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		pos      Position
		isValid  bool
	}{
		{
			name:     "Valid position with filename",
			pos:      Position{Filename: "dir/busy_beaver.tm", Line: 10, Column: 5, Offset: 100},
			isValid:  true,
			expected: "busy_beaver.tm:10:5",
		},
		{
			name:     "Valid position without filename",
			pos:      Position{Line: 1, Column: 1, Offset: 0},
			isValid:  true,
			expected: "1:1",
		},
		{
			name:    "Invalid position - zero line",
			pos:     Position{Line: 0, Column: 1},
			isValid: false,
		},
		{
			name:    "Invalid position - negative offset",
			pos:     Position{Line: 1, Column: 1, Offset: -1},
			isValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.isValid {
				t.Errorf("Position.IsValid() = %v, want %v", got, tt.isValid)
			}
			if tt.isValid {
				if got := tt.pos.String(); got != tt.expected {
					t.Errorf("Position.String() = %v, want %v", got, tt.expected)
				}
			}
		})
	}
}

func TestSpan(t *testing.T) {
	span := Span{
		Start: Position{Line: 1, Column: 1, Offset: 0},
		End:   Position{Line: 2, Column: 6, Offset: 12},
	}
	if got := span.String(); got != "1:1-2:6" {
		t.Errorf("Span.String() = %q", got)
	}

	tests := []struct {
		offset int
		want   bool
	}{
		{0, true},
		{11, true},
		{12, false},
		{-1, false},
	}
	for _, tt := range tests {
		if got := span.Contains(Position{Line: 1, Column: 1, Offset: tt.offset}); got != tt.want {
			t.Errorf("Contains(offset %d) = %v, want %v", tt.offset, got, tt.want)
		}
	}

	if (Span{Start: span.End, End: span.Start}).IsValid() {
		t.Error("reversed span reported valid")
	}
}

func TestSourceFilePositionFromOffset(t *testing.T) {
	sf := NewSourceFile("t.tm", "x = 3\r\n<i x\n")

	pos := sf.PositionFromOffset(7)
	if pos.Line != 2 || pos.Column != 1 {
		t.Errorf("PositionFromOffset(7) = %v, want 2:1", pos)
	}
	if got := sf.GetLine(1); got != "x = 3" {
		t.Errorf("GetLine(1) = %q, want %q", got, "x = 3")
	}
	if got := sf.LineCount(); got != 3 {
		t.Errorf("LineCount() = %d, want 3", got)
	}
	if pos := sf.PositionFromOffset(100); pos.IsValid() {
		t.Errorf("PositionFromOffset(100) = %v, want zero", pos)
	}
	if got := sf.GetLine(42); got != "" {
		t.Errorf("GetLine(42) = %q, want empty", got)
	}
}

func TestHighlightPosition(t *testing.T) {
	sm := NewSourceMap()
	sm.AddFile("t.tm", "x = 3\n\tx = true\n")
	sh := NewSpanHighlighter(sm)

	got := sh.HighlightPosition(Position{Filename: "t.tm", Line: 2, Column: 2, Offset: 7})
	want := "  x = true\n  ^"
	if got != want {
		t.Errorf("HighlightPosition() =\n%s\nwant\n%s", got, want)
	}

	if got := sh.HighlightPosition(Position{Filename: "missing.tm", Line: 1, Column: 1}); got != "" {
		t.Errorf("HighlightPosition() on unknown file = %q, want empty", got)
	}
}

func TestHighlightSpan(t *testing.T) {
	sm := NewSourceMap()
	sm.AddFile("t.tm", "x = 40000\n")
	sh := NewSpanHighlighter(sm)

	span := Span{
		Start: Position{Filename: "t.tm", Line: 1, Column: 5, Offset: 4},
		End:   Position{Filename: "t.tm", Line: 1, Column: 10, Offset: 9},
	}
	want := " x = 40000\n     ^^^^^"
	if got := sh.HighlightSpan(span); got != want {
		t.Errorf("HighlightSpan() =\n%s\nwant\n%s", got, want)
	}
}
