package typechecker

import (
	"slices"
	"testing"

	"github.com/MBogda/turing-machine-translator/internal/ast"
	"github.com/MBogda/turing-machine-translator/internal/diagnostic"
	"github.com/MBogda/turing-machine-translator/internal/lexer"
	"github.com/MBogda/turing-machine-translator/internal/parser"
	"github.com/MBogda/turing-machine-translator/internal/types"
)

func analyze(t *testing.T, input string) (*ast.InstructionSequence, *Analyzer, *diagnostic.Collector) {
	t.Helper()
	diags := diagnostic.NewCollector(nil)
	program, err := parser.New(lexer.New(input, diags), diags).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	if diags.HasErrors() {
		t.Fatalf("Parse(%q) reported %v", input, diags.All())
	}
	a := New(diags)
	return a.Analyze(program), a, diags
}

func kinds(diags *diagnostic.Collector) []diagnostic.Kind {
	out := make([]diagnostic.Kind, 0, diags.Len())
	for _, d := range diags.All() {
		out = append(out, d.Kind)
	}
	return out
}

func lookup(t *testing.T, a *Analyzer, name string) types.Type {
	t.Helper()
	typ, ok := a.Symbols().Lookup(name)
	if !ok {
		t.Fatalf("%s is not declared", name)
	}
	return typ
}

func TestAssignThenOutput(t *testing.T) {
	program, a, diags := analyze(t, "x = 3\n<i x\n")

	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	if typ := lookup(t, a, "x"); typ != types.Integer {
		t.Errorf("x: %s, want INTEGER", typ)
	}

	assign := program.Statements[0].(*ast.AssignmentStatement)
	lit := assign.Value.(*ast.Literal)
	if lit.Value != types.IntegerValue(3) || lit.Raw != "3" {
		t.Errorf("literal = %v (raw %q)", lit.Value, lit.Raw)
	}
	output := program.Statements[1].(*ast.OutputStatement)
	if output.Type != types.Integer || output.Value.GetType() != types.Integer {
		t.Errorf("output typed %s / %s", output.Type, output.Value.GetType())
	}
}

func TestRedeclarationWithOtherType(t *testing.T) {
	_, a, diags := analyze(t, "x = 3\nx = true\n")

	if !slices.Equal(kinds(diags), []diagnostic.Kind{diagnostic.IncompatibleTypes}) {
		t.Fatalf("diagnostics = %v", diags.All())
	}
	if msg := diags.All()[0].Message; msg != "incompatible types: INTEGER and BOOLEAN" {
		t.Errorf("message = %q", msg)
	}
	if typ := lookup(t, a, "x"); typ != types.Integer {
		t.Errorf("x: %s, want INTEGER", typ)
	}
}

func TestTapeIndexMustBeInteger(t *testing.T) {
	_, a, diags := analyze(t, "t = \"abc\"\nc = t[\"a\"]\n")

	if !slices.Equal(kinds(diags), []diagnostic.Kind{diagnostic.InvalidType}) {
		t.Fatalf("diagnostics = %v", diags.All())
	}
	d := diags.All()[0]
	if d.Message != "invalid type: expected INTEGER, got TAPE" {
		t.Errorf("message = %q", d.Message)
	}
	if d.Pos.Line != 2 || d.Pos.Column != 7 {
		t.Errorf("reported at %s, want 2:7", d.Pos)
	}
	if typ := lookup(t, a, "c"); typ != types.Symbol {
		t.Errorf("c: %s, want SYMBOL", typ)
	}
}

func TestStaticTyping(t *testing.T) {
	tests := []struct {
		input string
		want  []diagnostic.Kind
	}{
		{"if true:\n  x = 1\nelse:\n  x = 'a'\n", []diagnostic.Kind{diagnostic.IncompatibleTypes}},
		{"while false:\n  t = \"a\"\nt = 1\n", []diagnostic.Kind{diagnostic.IncompatibleTypes}},
		{"x = 1\nif x == 1:\n  x = x + 1\n", nil},
		{"<i y\n", []diagnostic.Kind{diagnostic.UndeclaredVariable}},
		{"y += 1\n", []diagnostic.Kind{diagnostic.UndeclaredVariable}},
		{"x = y\nx = 1\n", []diagnostic.Kind{diagnostic.UndeclaredVariable}},
		{"x = y\nx = 3\nx = true\n<b x\n<i x\n", []diagnostic.Kind{
			diagnostic.UndeclaredVariable, diagnostic.IncompatibleTypes, diagnostic.InvalidType,
		}},
		{"while 1:\n  x = 1\n", []diagnostic.Kind{diagnostic.InvalidType}},
		{"if 'a':\n  x = 1\nelif 2:\n  x = 2\n", []diagnostic.Kind{diagnostic.InvalidType, diagnostic.InvalidType}},
		{"<b 1\n", []diagnostic.Kind{diagnostic.InvalidType}},
		{"<\" \"a\"\n<' 'a'\n<< 1\n", nil},
		{"x = true\nx += true\n", []diagnostic.Kind{diagnostic.InvalidType}},
		{"x = 1\nx -= 'a'\n", []diagnostic.Kind{diagnostic.IncompatibleTypes}},
		{"t = \"a\"\nt += \"b\"\nm = {q '_'}\nm += m\n", nil},
		{"t = \"ab\"\nt[0] = 'c'\nt^ = 1\n", nil},
		{"t = \"ab\"\nt[0] = 1\n", []diagnostic.Kind{diagnostic.IncompatibleTypes}},
		{"t = \"ab\"\nt^ = 'a'\n", []diagnostic.Kind{diagnostic.IncompatibleTypes}},
	}

	for _, tt := range tests {
		_, _, diags := analyze(t, tt.input)
		if got := kinds(diags); !slices.Equal(got, tt.want) {
			t.Errorf("%q: diagnostics %v, want %v", tt.input, diags.All(), tt.want)
		}
	}
}

func TestUntypedDeclarationIsRefined(t *testing.T) {
	_, a, diags := analyze(t, "x = y\nx = 3\nx = true\n")

	want := []diagnostic.Kind{diagnostic.UndeclaredVariable, diagnostic.IncompatibleTypes}
	if got := kinds(diags); !slices.Equal(got, want) {
		t.Fatalf("diagnostics = %v, want %v", diags.All(), want)
	}
	if d := diags.All()[1]; d.Pos.Line != 3 {
		t.Errorf("incompatible types reported at %s, want line 3", d.Pos)
	}
	if typ := lookup(t, a, "x"); typ != types.Integer {
		t.Errorf("x: %s, want INTEGER", typ)
	}
}

func TestOutputAnyInheritsType(t *testing.T) {
	program, _, diags := analyze(t, "<< 'a'\n")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	output := program.Statements[0].(*ast.OutputStatement)
	if output.Declared.IsSet() || output.Type != types.Symbol {
		t.Errorf("declared %s, resolved %s", output.Declared, output.Type)
	}
}

func TestOperatorTable(t *testing.T) {
	const prelude = "i = 1\nb = true\ns = 'a'\nt = \"ab\"\nm = {q '_'}\n"

	invalid := diagnostic.InvalidType
	incompatible := diagnostic.IncompatibleTypes

	tests := []struct {
		expr string
		want types.Type
		errs []diagnostic.Kind
	}{
		{"b or b", types.Boolean, nil},
		{"b and b", types.Boolean, nil},
		{"b or i", types.Boolean, []diagnostic.Kind{invalid}},
		{"not b", types.Boolean, nil},
		{"not i", types.Boolean, []diagnostic.Kind{invalid}},

		{"i == i", types.Boolean, nil},
		{"s != s", types.Boolean, nil},
		{"t == t", types.Boolean, nil},
		{"b == b", types.Boolean, []diagnostic.Kind{invalid, invalid}},
		{"i == s", types.Boolean, []diagnostic.Kind{incompatible}},

		{"i < i", types.Boolean, nil},
		{"i >= i", types.Boolean, nil},
		{"s < s", types.Boolean, []diagnostic.Kind{invalid, invalid}},

		{"i + i", types.Integer, nil},
		{"t + t", types.Tape, nil},
		{"m + m", types.TuringMachine, nil},
		{"t - t", types.Tape, nil},
		{"m - m", types.Integer, []diagnostic.Kind{invalid, invalid}},
		{"i + t", types.Integer, []diagnostic.Kind{incompatible}},
		{"b + t", types.Tape, []diagnostic.Kind{invalid}},

		{"i * i", types.Integer, nil},
		{"i / i", types.Integer, nil},
		{"i % t", types.Integer, []diagnostic.Kind{invalid}},
		{"-i", types.Integer, nil},
		{"-s", types.Integer, []diagnostic.Kind{invalid}},

		{"t[i]", types.Symbol, nil},
		{"t[]", types.Integer, nil},
		{"t^", types.Integer, nil},
		{"i^", types.Integer, []diagnostic.Kind{invalid}},
		{"m(t)", types.Tape, nil},
		{"t(m)", types.Tape, []diagnostic.Kind{invalid, invalid}},
		{"m(t)[0]", types.Symbol, nil},

		{">b", types.Boolean, nil},
		{">i", types.Integer, nil},
		{">'", types.Symbol, nil},
		{">\"", types.Tape, nil},
		{"(i + >i) * 2 > 3 or not b", types.Boolean, nil},
	}

	for _, tt := range tests {
		_, a, diags := analyze(t, prelude+"x = "+tt.expr+"\n")
		if got := kinds(diags); !slices.Equal(got, tt.errs) {
			t.Errorf("%s: diagnostics %v, want %v", tt.expr, diags.All(), tt.errs)
		}
		if typ := lookup(t, a, "x"); typ != tt.want {
			t.Errorf("%s: typed %s, want %s", tt.expr, typ, tt.want)
		}
	}
}

func TestUndeclaredOperandsAreTolerated(t *testing.T) {
	program, _, diags := analyze(t, "x = a + b * c\n")

	if got := diags.Count(diagnostic.UndeclaredVariable); got != 3 {
		t.Errorf("UndeclaredVariable count = %d, want 3", got)
	}
	if diags.Len() != 3 {
		t.Errorf("diagnostics = %v", diags.All())
	}
	value := program.Statements[0].(*ast.AssignmentStatement).Value
	if value.GetType() != types.Integer {
		t.Errorf("value typed %s, want INTEGER", value.GetType())
	}
}

func TestAnalyzeNil(t *testing.T) {
	if New(nil).Analyze(nil) != nil {
		t.Errorf("Analyze(nil) returned a program")
	}
}
