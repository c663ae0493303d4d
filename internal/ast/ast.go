// Package ast defines the abstract syntax tree of the Turing-machine language.
//
// The node set is closed: every variant implements Node and has exactly one
// method on Visitor, so a pass that forgets a variant does not compile.
// Nodes are built once by the parser. The type checker only fills the type
// slots and the decoded literal values; no other phase mutates the tree.
package ast

import (
	"fmt"
	"strings"

	"github.com/MBogda/turing-machine-translator/internal/position"
	"github.com/MBogda/turing-machine-translator/internal/types"
)

// Node is the base interface for all AST nodes
type Node interface {
	// GetSpan returns the source span covered by this node
	GetSpan() position.Span
	// String returns a source-like rendering of the node
	String() string
	// Accept implements the visitor pattern for AST traversal
	Accept(visitor Visitor) interface{}
}

// Statement represents all statement nodes in the AST
type Statement interface {
	Node
	statementNode()
}

// Expression represents all expression nodes in the AST. Every expression
// carries a type slot that stays unset until semantic analysis.
type Expression interface {
	Node
	expressionNode()
	GetType() types.Type
	SetType(typ types.Type)
}

// TypeSlot holds the type assigned to a node by the type checker.
type TypeSlot struct {
	Type types.Type
}

func (t *TypeSlot) GetType() types.Type     { return t.Type }
func (t *TypeSlot) SetType(typ types.Type) { t.Type = typ }

// ===== Statements =====

// InstructionSequence is an ordered list of statements: the whole program or
// the body of a block.
type InstructionSequence struct {
	Span       position.Span
	Statements []Statement
}

func (s *InstructionSequence) GetSpan() position.Span { return s.Span }
func (s *InstructionSequence) statementNode()         {}
func (s *InstructionSequence) String() string {
	lines := make([]string, len(s.Statements))
	for i, stmt := range s.Statements {
		lines[i] = stmt.String()
	}
	return strings.Join(lines, "\n")
}
func (s *InstructionSequence) Accept(visitor Visitor) interface{} {
	return visitor.VisitInstructionSequence(s)
}

// IfStatement is a conditional. An elif chain is a nested IfStatement in
// Else; a final else block is an *InstructionSequence. Else is nil when the
// statement has no alternative.
type IfStatement struct {
	Span      position.Span
	Condition Expression
	Then      *InstructionSequence
	Else      Statement
}

func (s *IfStatement) GetSpan() position.Span { return s.Span }
func (s *IfStatement) statementNode()         {}
func (s *IfStatement) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "if %s:\n%s", s.Condition, indent(s.Then.String()))
	switch e := s.Else.(type) {
	case nil:
	case *IfStatement:
		fmt.Fprintf(&b, "\nel%s", e)
	default:
		fmt.Fprintf(&b, "\nelse:\n%s", indent(e.String()))
	}
	return b.String()
}
func (s *IfStatement) Accept(visitor Visitor) interface{} { return visitor.VisitIfStatement(s) }

// WhileStatement is a pre-tested loop.
type WhileStatement struct {
	Span      position.Span
	Condition Expression
	Body      *InstructionSequence
}

func (s *WhileStatement) GetSpan() position.Span { return s.Span }
func (s *WhileStatement) statementNode()         {}
func (s *WhileStatement) String() string {
	return fmt.Sprintf("while %s:\n%s", s.Condition, indent(s.Body.String()))
}
func (s *WhileStatement) Accept(visitor Visitor) interface{} { return visitor.VisitWhileStatement(s) }

// OutputStatement writes a value. Declared is the type named by the output
// operator, or Unset for the `<<` form. The slot holds the resolved type:
// Declared, or the value's type for `<<`.
type OutputStatement struct {
	Span     position.Span
	Declared types.Type
	Value    Expression
	TypeSlot
}

func (s *OutputStatement) GetSpan() position.Span { return s.Span }
func (s *OutputStatement) statementNode()         {}
func (s *OutputStatement) String() string {
	return fmt.Sprintf("%s %s", outputOperator(s.Declared), s.Value)
}
func (s *OutputStatement) Accept(visitor Visitor) interface{} { return visitor.VisitOutputStatement(s) }

// AssignmentStatement stores a value. Target is an *Identifier, an index
// expression (t[i]) or a head write (t^).
type AssignmentStatement struct {
	Span     position.Span
	Operator AssignOperator
	Target   Expression
	Value    Expression
}

func (s *AssignmentStatement) GetSpan() position.Span { return s.Span }
func (s *AssignmentStatement) statementNode()         {}
func (s *AssignmentStatement) String() string {
	return fmt.Sprintf("%s %s %s", s.Target, s.Operator, s.Value)
}
func (s *AssignmentStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitAssignmentStatement(s)
}

// MachineDefinition supplies a transition table to an existing machine
// variable using the block syntax `name:` NEWLINE INDENT instructions DEDENT.
type MachineDefinition struct {
	Span   position.Span
	Target *Identifier
	Table  *MachineTable
}

func (s *MachineDefinition) GetSpan() position.Span { return s.Span }
func (s *MachineDefinition) statementNode()         {}
func (s *MachineDefinition) String() string {
	rows := make([]string, len(s.Table.Instructions))
	for i, instr := range s.Table.Instructions {
		rows[i] = instr.String()
	}
	return fmt.Sprintf("%s:\n%s", s.Target, indent(strings.Join(rows, "\n")))
}
func (s *MachineDefinition) Accept(visitor Visitor) interface{} {
	return visitor.VisitMachineDefinition(s)
}

// ===== Expressions =====

// UnaryExpression applies a prefix (not, -) or postfix (^, []) operator.
type UnaryExpression struct {
	Span     position.Span
	Operator UnaryOperator
	Operand  Expression
	TypeSlot
}

func (e *UnaryExpression) GetSpan() position.Span { return e.Span }
func (e *UnaryExpression) expressionNode()        {}
func (e *UnaryExpression) String() string {
	switch e.Operator {
	case UnaryNot:
		return fmt.Sprintf("(not %s)", e.Operand)
	case UnaryMinus:
		return fmt.Sprintf("(-%s)", e.Operand)
	default:
		return fmt.Sprintf("%s%s", e.Operand, e.Operator)
	}
}
func (e *UnaryExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitUnaryExpression(e)
}

// BinaryExpression applies an infix operator, indexing (t[i]) or machine
// application (m(t)).
type BinaryExpression struct {
	Span     position.Span
	Operator BinaryOperator
	Left     Expression
	Right    Expression
	TypeSlot
}

func (e *BinaryExpression) GetSpan() position.Span { return e.Span }
func (e *BinaryExpression) expressionNode()        {}
func (e *BinaryExpression) String() string {
	switch e.Operator {
	case BinaryIndex:
		return fmt.Sprintf("%s[%s]", e.Left, e.Right)
	case BinaryApply:
		return fmt.Sprintf("%s(%s)", e.Left, e.Right)
	default:
		return fmt.Sprintf("(%s %s %s)", e.Left, e.Operator, e.Right)
	}
}
func (e *BinaryExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitBinaryExpression(e)
}

// Identifier is a variable reference, or a machine state inside a machine
// literal.
type Identifier struct {
	Span position.Span
	Name string
	TypeSlot
}

func (i *Identifier) GetSpan() position.Span             { return i.Span }
func (i *Identifier) expressionNode()                    {}
func (i *Identifier) String() string                     { return i.Name }
func (i *Identifier) Accept(visitor Visitor) interface{} { return visitor.VisitIdentifier(i) }

// Literal is a boolean, integer, symbol or tape literal. Raw keeps the
// lexeme; Value is the decoded value, set once by the type checker and left
// nil when the lexeme does not decode.
type Literal struct {
	Span  position.Span
	Kind  types.Type
	Raw   string
	Value types.Value
	TypeSlot
}

func (l *Literal) GetSpan() position.Span             { return l.Span }
func (l *Literal) expressionNode()                    {}
func (l *Literal) String() string                     { return l.Raw }
func (l *Literal) Accept(visitor Visitor) interface{} { return visitor.VisitLiteral(l) }

// MachineLiteral is a Turing-machine literal `{ state 'blank' : table }`.
// Table is nil when the literal has no colon part.
type MachineLiteral struct {
	Span         position.Span
	InitialState *Identifier
	Blank        *Literal
	Table        *MachineTable
	Value        *types.MachineValue
	TypeSlot
}

func (m *MachineLiteral) GetSpan() position.Span { return m.Span }
func (m *MachineLiteral) expressionNode()        {}
func (m *MachineLiteral) String() string {
	if m.Table == nil {
		return fmt.Sprintf("{%s %s}", m.InitialState, m.Blank)
	}
	return fmt.Sprintf("{%s %s: %s}", m.InitialState, m.Blank, m.Table)
}
func (m *MachineLiteral) Accept(visitor Visitor) interface{} { return visitor.VisitMachineLiteral(m) }

// InputExpression reads a value of type Kind.
type InputExpression struct {
	Span position.Span
	Kind types.Type
	TypeSlot
}

func (e *InputExpression) GetSpan() position.Span { return e.Span }
func (e *InputExpression) expressionNode()        {}
func (e *InputExpression) String() string         { return inputOperator(e.Kind) }
func (e *InputExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitInputExpression(e)
}

// ===== Machine tables =====

// MachineTable is a transition table. States and Symbols are filled by the
// type checker with the distinct states and symbols the table references,
// in first-seen order.
type MachineTable struct {
	Span         position.Span
	Instructions []*MachineInstruction
	States       []*Identifier
	Symbols      []*Literal
}

func (t *MachineTable) GetSpan() position.Span { return t.Span }
func (t *MachineTable) String() string {
	rows := make([]string, len(t.Instructions))
	for i, instr := range t.Instructions {
		rows[i] = instr.String()
	}
	return strings.Join(rows, "; ")
}
func (t *MachineTable) Accept(visitor Visitor) interface{} { return visitor.VisitMachineTable(t) }

// MachineInstruction is one transition `state sym = next write shift`. A `-`
// in the next-state or write position has already been replaced by a copy of
// the left-hand state or symbol.
type MachineInstruction struct {
	Span      position.Span
	State     *Identifier
	Symbol    *Literal
	NextState *Identifier
	Write     *Literal
	Shift     types.Shift
}

func (i *MachineInstruction) GetSpan() position.Span { return i.Span }
func (i *MachineInstruction) String() string {
	return fmt.Sprintf("%s %s = %s %s %s", i.State, i.Symbol, i.NextState, i.Write, i.Shift)
}
func (i *MachineInstruction) Accept(visitor Visitor) interface{} {
	return visitor.VisitMachineInstruction(i)
}

func indent(s string) string {
	return "    " + strings.ReplaceAll(s, "\n", "\n    ")
}

func outputOperator(t types.Type) string {
	switch t {
	case types.Boolean:
		return "<b"
	case types.Integer:
		return "<i"
	case types.Symbol:
		return "<'"
	case types.Tape:
		return `<"`
	default:
		return "<<"
	}
}

func inputOperator(t types.Type) string {
	switch t {
	case types.Boolean:
		return ">b"
	case types.Integer:
		return ">i"
	case types.Symbol:
		return ">'"
	default:
		return `>"`
	}
}
