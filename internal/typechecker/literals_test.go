package typechecker

import (
	"slices"
	"testing"

	"github.com/MBogda/turing-machine-translator/internal/ast"
	"github.com/MBogda/turing-machine-translator/internal/diagnostic"
	"github.com/MBogda/turing-machine-translator/internal/types"
)

func literalValue(t *testing.T, program *ast.InstructionSequence) *ast.Literal {
	t.Helper()
	lit, ok := program.Statements[0].(*ast.AssignmentStatement).Value.(*ast.Literal)
	if !ok {
		t.Fatalf("value is not a literal")
	}
	return lit
}

func TestLiteralDiagnostics(t *testing.T) {
	tests := []struct {
		input string
		want  []diagnostic.Kind
	}{
		{"x = 32767\n", nil},
		{"x = -32768\n", nil},
		{"x = 32768\n", []diagnostic.Kind{diagnostic.IntegerOutOfRange}},
		{"x = -32769\n", []diagnostic.Kind{diagnostic.IntegerOutOfRange}},
		{"s = 'ab'\n", []diagnostic.Kind{diagnostic.SymbolLengthError}},
		{"s = ''\n", []diagnostic.Kind{diagnostic.SymbolLengthError}},
		{"t = \"\"\n", []diagnostic.Kind{diagnostic.TapeLengthError}},
		{"t = \"a^b^c\"\n", []diagnostic.Kind{diagnostic.MultipleHeadsError}},
		{"t = \"ab^\"\n", []diagnostic.Kind{diagnostic.HeadPositionError}},
		{"t = \"^^\"\n", []diagnostic.Kind{diagnostic.TapeLengthError, diagnostic.MultipleHeadsError}},
		{"t = \"a\\^b^c\"\n", nil},
	}

	for _, tt := range tests {
		program, _, diags := analyze(t, tt.input)
		if got := kinds(diags); !slices.Equal(got, tt.want) {
			t.Errorf("%q: diagnostics %v, want %v", tt.input, diags.All(), tt.want)
		}
		lit := literalValue(t, program)
		if (lit.Value == nil) != (len(tt.want) > 0) {
			t.Errorf("%q: decoded value %v", tt.input, lit.Value)
		}
		if lit.Type != lit.Kind {
			t.Errorf("%q: literal typed %s, kind %s", tt.input, lit.Type, lit.Kind)
		}
	}
}

func TestLiteralValues(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"b = false\n", "false"},
		{"x = -12\n", "-12"},
		{"s = '\\''\n", `'\''`},
		{"t = \"ab^c\"\n", `"ab^c"`},
		{"t = \"abc\"\n", `"^abc"`},
	}

	for _, tt := range tests {
		program, _, diags := analyze(t, tt.input)
		if diags.HasErrors() {
			t.Errorf("%q: unexpected diagnostics %v", tt.input, diags.All())
			continue
		}
		lit := literalValue(t, program)
		if lit.Value.String() != tt.want {
			t.Errorf("%q: value %s, want %s", tt.input, lit.Value, tt.want)
		}
	}

	program, _, _ := analyze(t, "t = \"ab^c\"\n")
	tape := literalValue(t, program).Value.(types.TapeValue)
	if tape.Head != 2 || string(tape.Cells) != "abc" {
		t.Errorf("tape = %+v", tape)
	}
}
