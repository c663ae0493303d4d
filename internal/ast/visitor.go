package ast

import (
	"fmt"
	"strings"

	"github.com/MBogda/turing-machine-translator/internal/types"
)

// Visitor has one method per node variant. There is deliberately no base
// implementation to embed.
type Visitor interface {
	// Statement visitors.
	VisitInstructionSequence(node *InstructionSequence) interface{}
	VisitIfStatement(node *IfStatement) interface{}
	VisitWhileStatement(node *WhileStatement) interface{}
	VisitOutputStatement(node *OutputStatement) interface{}
	VisitAssignmentStatement(node *AssignmentStatement) interface{}
	VisitMachineDefinition(node *MachineDefinition) interface{}

	// Expression visitors.
	VisitUnaryExpression(node *UnaryExpression) interface{}
	VisitBinaryExpression(node *BinaryExpression) interface{}
	VisitIdentifier(node *Identifier) interface{}
	VisitLiteral(node *Literal) interface{}
	VisitMachineLiteral(node *MachineLiteral) interface{}
	VisitInputExpression(node *InputExpression) interface{}

	// Machine table visitors.
	VisitMachineTable(node *MachineTable) interface{}
	VisitMachineInstruction(node *MachineInstruction) interface{}
}

// Print renders node as an indented tree, one node per line, with the
// type of every typed node once analysis has assigned it.
func Print(node Node) string {
	p := &printer{}
	node.Accept(p)
	return p.b.String()
}

type printer struct {
	b     strings.Builder
	depth int
}

func (p *printer) line(format string, args ...interface{}) {
	p.b.WriteString(strings.Repeat("  ", p.depth))
	fmt.Fprintf(&p.b, format, args...)
	p.b.WriteByte('\n')
}

func (p *printer) child(label string, node Node) {
	p.depth++
	if label != "" {
		p.line("%s:", label)
		p.depth++
	}
	node.Accept(p)
	if label != "" {
		p.depth--
	}
	p.depth--
}

func typeSuffix(t types.Type) string {
	if !t.IsSet() {
		return ""
	}
	return " : " + t.String()
}

func (p *printer) VisitInstructionSequence(node *InstructionSequence) interface{} {
	p.line("InstructionSequence")
	for _, stmt := range node.Statements {
		p.child("", stmt)
	}
	return nil
}

func (p *printer) VisitIfStatement(node *IfStatement) interface{} {
	p.line("IfStatement")
	p.child("condition", node.Condition)
	p.child("then", node.Then)
	if node.Else != nil {
		p.child("else", node.Else)
	}
	return nil
}

func (p *printer) VisitWhileStatement(node *WhileStatement) interface{} {
	p.line("WhileStatement")
	p.child("condition", node.Condition)
	p.child("body", node.Body)
	return nil
}

func (p *printer) VisitOutputStatement(node *OutputStatement) interface{} {
	p.line("OutputStatement %s%s", outputOperator(node.Declared), typeSuffix(node.Type))
	p.child("", node.Value)
	return nil
}

func (p *printer) VisitAssignmentStatement(node *AssignmentStatement) interface{} {
	p.line("AssignmentStatement %s", node.Operator)
	p.child("target", node.Target)
	p.child("value", node.Value)
	return nil
}

func (p *printer) VisitMachineDefinition(node *MachineDefinition) interface{} {
	p.line("MachineDefinition")
	p.child("target", node.Target)
	p.child("table", node.Table)
	return nil
}

func (p *printer) VisitUnaryExpression(node *UnaryExpression) interface{} {
	p.line("UnaryExpression %s%s", node.Operator, typeSuffix(node.Type))
	p.child("", node.Operand)
	return nil
}

func (p *printer) VisitBinaryExpression(node *BinaryExpression) interface{} {
	p.line("BinaryExpression %s%s", node.Operator, typeSuffix(node.Type))
	p.child("", node.Left)
	p.child("", node.Right)
	return nil
}

func (p *printer) VisitIdentifier(node *Identifier) interface{} {
	p.line("Identifier %s%s", node.Name, typeSuffix(node.Type))
	return nil
}

func (p *printer) VisitLiteral(node *Literal) interface{} {
	if node.Value != nil {
		p.line("Literal %s %s => %s", node.Kind, node.Raw, node.Value)
	} else {
		p.line("Literal %s %s", node.Kind, node.Raw)
	}
	return nil
}

func (p *printer) VisitMachineLiteral(node *MachineLiteral) interface{} {
	p.line("MachineLiteral%s", typeSuffix(node.Type))
	p.child("initial", node.InitialState)
	p.child("blank", node.Blank)
	if node.Table != nil {
		p.child("table", node.Table)
	}
	return nil
}

func (p *printer) VisitInputExpression(node *InputExpression) interface{} {
	p.line("InputExpression %s", node.Kind)
	return nil
}

func (p *printer) VisitMachineTable(node *MachineTable) interface{} {
	p.line("MachineTable")
	for _, instr := range node.Instructions {
		p.child("", instr)
	}
	return nil
}

func (p *printer) VisitMachineInstruction(node *MachineInstruction) interface{} {
	p.line("MachineInstruction %s", node)
	return nil
}
