package ast

import (
	"strings"
	"testing"

	"github.com/MBogda/turing-machine-translator/internal/position"
	"github.com/MBogda/turing-machine-translator/internal/types"
)

// createTestSpan creates a basic position span for testing
func createTestSpan(line, col int) position.Span {
	return position.Span{
		Start: position.Position{Filename: "test.tm", Line: line, Column: col},
		End:   position.Position{Filename: "test.tm", Line: line, Column: col + 1},
	}
}

func ident(name string) *Identifier {
	return &Identifier{Span: createTestSpan(1, 1), Name: name}
}

func intLit(raw string) *Literal {
	return &Literal{Span: createTestSpan(1, 1), Kind: types.Integer, Raw: raw}
}

func symLit(raw string) *Literal {
	return &Literal{Span: createTestSpan(1, 1), Kind: types.Symbol, Raw: raw}
}

func TestExpressionString(t *testing.T) {
	tests := []struct {
		expr Expression
		want string
	}{
		{ident("x"), "x"},
		{&UnaryExpression{Operator: UnaryNot, Operand: ident("b")}, "(not b)"},
		{&UnaryExpression{Operator: UnaryMinus, Operand: intLit("3")}, "(-3)"},
		{&UnaryExpression{Operator: UnaryHead, Operand: ident("t")}, "t^"},
		{&UnaryExpression{Operator: UnaryNext, Operand: ident("t")}, "t[]"},
		{&BinaryExpression{Operator: BinaryAdd, Left: ident("a"), Right: intLit("1")}, "(a + 1)"},
		{&BinaryExpression{Operator: BinaryIndex, Left: ident("t"), Right: intLit("0")}, "t[0]"},
		{&BinaryExpression{Operator: BinaryApply, Left: ident("m"), Right: ident("t")}, "m(t)"},
		{&InputExpression{Kind: types.Tape}, `>"`},
		{&MachineLiteral{InitialState: ident("q"), Blank: symLit("'_'")}, "{q '_'}"},
	}

	for _, tt := range tests {
		if got := tt.expr.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIfStatementString(t *testing.T) {
	body := func(name string) *InstructionSequence {
		return &InstructionSequence{Statements: []Statement{
			&AssignmentStatement{Operator: AssignSet, Target: ident(name), Value: intLit("1")},
		}}
	}
	stmt := &IfStatement{
		Condition: ident("a"),
		Then:      body("x"),
		Else: &IfStatement{
			Condition: ident("b"),
			Then:      body("y"),
			Else:      body("z"),
		},
	}

	want := "if a:\n    x = 1\nelif b:\n    y = 1\nelse:\n    z = 1"
	if got := stmt.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestAssignOperator(t *testing.T) {
	tests := []struct {
		op       AssignOperator
		name     string
		binary   BinaryOperator
		compound bool
	}{
		{AssignSet, "=", 0, false},
		{AssignAdd, "+=", BinaryAdd, true},
		{AssignSub, "-=", BinarySub, true},
		{AssignMul, "*=", BinaryMul, true},
		{AssignDiv, "/=", BinaryDiv, true},
		{AssignMod, "%=", BinaryMod, true},
	}

	for _, tt := range tests {
		if tt.op.String() != tt.name {
			t.Errorf("%d.String() = %q, want %q", tt.op, tt.op.String(), tt.name)
		}
		binary, ok := tt.op.Binary()
		if ok != tt.compound || (ok && binary != tt.binary) {
			t.Errorf("%s.Binary() = %s, %v", tt.op, binary, ok)
		}
	}
}

func TestBinaryOperatorIsComparison(t *testing.T) {
	comparisons := map[BinaryOperator]bool{
		BinaryEq: true, BinaryNe: true, BinaryLt: true,
		BinaryGt: true, BinaryLe: true, BinaryGe: true,
	}
	for op := BinaryOr; op <= BinaryApply; op++ {
		if op.IsComparison() != comparisons[op] {
			t.Errorf("%s.IsComparison() = %v", op, op.IsComparison())
		}
	}
}

func TestTypeSlot(t *testing.T) {
	var expr Expression = ident("x")
	if expr.GetType().IsSet() {
		t.Fatalf("fresh identifier has type %s", expr.GetType())
	}
	expr.SetType(types.Integer)
	if expr.GetType() != types.Integer {
		t.Errorf("GetType() = %s, want INTEGER", expr.GetType())
	}
}

func TestPrint(t *testing.T) {
	x := ident("x")
	x.Type = types.Integer
	program := &InstructionSequence{Statements: []Statement{
		&AssignmentStatement{Operator: AssignSet, Target: x, Value: intLit("3")},
		&OutputStatement{Declared: types.Integer, Value: ident("x")},
		&MachineDefinition{
			Target: ident("m"),
			Table: &MachineTable{Instructions: []*MachineInstruction{{
				State:     ident("q"),
				Symbol:    symLit("'a'"),
				NextState: ident("q"),
				Write:     symLit("'a'"),
				Shift:     types.ShiftLeft,
			}}},
		},
	}}

	got := Print(program)
	want := []string{
		"InstructionSequence",
		"  AssignmentStatement =",
		"    target:",
		"      Identifier x : INTEGER",
		"    value:",
		"      Literal INTEGER 3",
		"  OutputStatement <i",
		"    Identifier x",
		"  MachineDefinition",
		"    target:",
		"      Identifier m",
		"    table:",
		"      MachineTable",
		"        MachineInstruction q 'a' = q 'a' <",
		"",
	}
	if got != strings.Join(want, "\n") {
		t.Errorf("Print() =\n%s", got)
	}
}
