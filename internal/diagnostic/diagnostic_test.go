package diagnostic_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/MBogda/turing-machine-translator/internal/diagnostic"
	"github.com/MBogda/turing-machine-translator/internal/diagnostic/mocks"
	"github.com/MBogda/turing-machine-translator/internal/position"
)

func TestKindPhase(t *testing.T) {
	tests := []struct {
		kind  diagnostic.Kind
		phase diagnostic.Phase
	}{
		{diagnostic.UndefinedToken, diagnostic.PhaseLexer},
		{diagnostic.IndentationError, diagnostic.PhaseLexer},
		{diagnostic.UnexpectedToken, diagnostic.PhaseParser},
		{diagnostic.IncompatibleTypes, diagnostic.PhaseSemantic},
		{diagnostic.MultipleHeadsError, diagnostic.PhaseSemantic},
		{diagnostic.HeadPositionError, diagnostic.PhaseSemantic},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Phase(); got != tt.phase {
				t.Errorf("%s.Phase() = %s, want %s", tt.kind, got, tt.phase)
			}
		})
	}
}

func TestCollectorPhases(t *testing.T) {
	c := diagnostic.NewCollector(nil)
	if c.HasErrors() {
		t.Fatal("new collector should be empty")
	}

	pos := position.Position{Line: 3, Column: 7}
	c.Reportf(diagnostic.IndentationError, pos, "Indentation error")
	c.Reportf(diagnostic.InvalidType, pos, "invalid type %s", "TAPE")

	if !c.PhaseHasErrors(diagnostic.PhaseLexer) {
		t.Error("lexer phase should have errors")
	}
	if c.PhaseHasErrors(diagnostic.PhaseParser) {
		t.Error("parser phase should be clean")
	}
	if !c.PhaseHasErrors(diagnostic.PhaseSemantic) {
		t.Error("semantic phase should have errors")
	}
	if got := c.Count(diagnostic.InvalidType); got != 1 {
		t.Errorf("Count(InvalidType) = %d, want 1", got)
	}
	if got := c.All()[1].Error(); got != "Semantic Error on 3:7: invalid type TAPE" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCollectorForwardsToSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)

	first := diagnostic.Diagnostic{Kind: diagnostic.UndefinedToken, Message: "Undefined token '$'", Pos: position.Position{Line: 1, Column: 1}}
	second := diagnostic.Diagnostic{Kind: diagnostic.UnexpectedToken, Message: "expected token NEWLINE, got COLON", Pos: position.Position{Line: 2, Column: 4}}

	gomock.InOrder(
		sink.EXPECT().Report(first),
		sink.EXPECT().Report(second),
	)

	c := diagnostic.NewCollector(sink)
	c.Report(first)
	c.Report(second)

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestCollectorJSON(t *testing.T) {
	c := diagnostic.NewCollector(nil)
	c.Reportf(diagnostic.IntegerOutOfRange, position.Position{Filename: "a.tm", Line: 1, Column: 5}, "integer literal 40000 out of range")

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 record, got %d", len(decoded))
	}
	rec := decoded[0]
	if rec["phase"] != "Semantic" || rec["kind"] != "IntegerOutOfRange" || rec["file"] != "a.tm" {
		t.Errorf("unexpected record %v", rec)
	}
	if rec["line"].(float64) != 1 || rec["column"].(float64) != 5 {
		t.Errorf("unexpected location in %v", rec)
	}
}

func TestRenderer(t *testing.T) {
	sources := position.NewSourceMap()
	sources.AddFile("", "x = 3\nx = true\n")

	d := diagnostic.Diagnostic{
		Kind:    diagnostic.IncompatibleTypes,
		Message: "incompatible types INTEGER and BOOLEAN",
		Pos:     position.Position{Line: 2, Column: 5, Offset: 10},
	}

	r := diagnostic.NewRenderer(sources, false)
	want := "Semantic Error on 2:5: incompatible types INTEGER and BOOLEAN:\n x = true\n     ^"
	if got := r.Render(d); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}

	var buf bytes.Buffer
	if err := diagnostic.NewRenderer(sources, true).WriteAll(&buf, []diagnostic.Diagnostic{d}); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Error("coloured output should contain ANSI escapes")
	}
}
