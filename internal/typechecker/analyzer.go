// Package typechecker implements the semantic analysis of the
// Turing-machine language.
//
// The Analyzer makes a single depth-first walk over the tree the parser
// built. It assigns a type to every expression, decodes literal lexemes into
// values and validates machine literals. Type errors are reported to the
// diagnostic collector and the walk goes on with a best-effort type, so one
// run surfaces as many independent problems as possible. Nodes whose type
// cannot be determined keep types.Unset; checks involving an unset type are
// skipped instead of being reported again.
package typechecker

import (
	"strings"

	"github.com/MBogda/turing-machine-translator/internal/ast"
	"github.com/MBogda/turing-machine-translator/internal/diagnostic"
	"github.com/MBogda/turing-machine-translator/internal/position"
	"github.com/MBogda/turing-machine-translator/internal/types"
)

// Analyzer is the type checker. It implements ast.Visitor: statement visits
// return nil, expression visits return the assigned types.Type.
type Analyzer struct {
	symbols     *SymbolTable
	diagnostics *diagnostic.Collector
}

var _ ast.Visitor = (*Analyzer)(nil)

// New creates an analyzer reporting to diags. A nil collector gets replaced
// by a private one.
func New(diags *diagnostic.Collector) *Analyzer {
	if diags == nil {
		diags = diagnostic.NewCollector(nil)
	}
	return &Analyzer{
		symbols:     NewSymbolTable(),
		diagnostics: diags,
	}
}

// Symbols returns the symbol table built by Analyze.
func (a *Analyzer) Symbols() *SymbolTable {
	return a.symbols
}

// Diagnostics returns the collector the analyzer reports to.
func (a *Analyzer) Diagnostics() *diagnostic.Collector {
	return a.diagnostics
}

// Analyze annotates program in place and returns it.
func (a *Analyzer) Analyze(program *ast.InstructionSequence) *ast.InstructionSequence {
	if program != nil {
		program.Accept(a)
	}
	return program
}

func (a *Analyzer) typeOf(expr ast.Expression) types.Type {
	typ, _ := expr.Accept(a).(types.Type)
	return typ
}

// require reports an InvalidType diagnostic when typ is set and not one of
// allowed.
func (a *Analyzer) require(typ types.Type, pos position.Position, allowed ...types.Type) bool {
	if !typ.IsSet() || typ.OneOf(allowed...) {
		return true
	}
	names := make([]string, len(allowed))
	for i, t := range allowed {
		names[i] = t.String()
	}
	a.diagnostics.Reportf(diagnostic.InvalidType, pos,
		"invalid type: expected %s, got %s", strings.Join(names, " or "), typ)
	return false
}

// agree reports an IncompatibleTypes diagnostic when both types are set and
// differ.
func (a *Analyzer) agree(want, got types.Type, pos position.Position) bool {
	if !want.IsSet() || !got.IsSet() || want == got {
		return true
	}
	a.diagnostics.Reportf(diagnostic.IncompatibleTypes, pos,
		"incompatible types: %s and %s", want, got)
	return false
}

// ===== Statements =====

func (a *Analyzer) VisitInstructionSequence(node *ast.InstructionSequence) interface{} {
	for _, stmt := range node.Statements {
		stmt.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitIfStatement(node *ast.IfStatement) interface{} {
	a.require(a.typeOf(node.Condition), node.Condition.GetSpan().Start, types.Boolean)
	node.Then.Accept(a)
	if node.Else != nil {
		node.Else.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitWhileStatement(node *ast.WhileStatement) interface{} {
	a.require(a.typeOf(node.Condition), node.Condition.GetSpan().Start, types.Boolean)
	node.Body.Accept(a)
	return nil
}

func (a *Analyzer) VisitOutputStatement(node *ast.OutputStatement) interface{} {
	valueType := a.typeOf(node.Value)
	if !node.Declared.IsSet() {
		node.SetType(valueType)
		return nil
	}
	a.require(valueType, node.Value.GetSpan().Start, node.Declared)
	node.SetType(node.Declared)
	return nil
}

// VisitAssignmentStatement analyzes the value first. A plain assignment to
// an unknown name declares it, and one to a name declared without a type
// fixes that type; every other assignment must agree with the type already
// declared.
func (a *Analyzer) VisitAssignmentStatement(node *ast.AssignmentStatement) interface{} {
	valueType := a.typeOf(node.Value)
	valuePos := node.Value.GetSpan().Start

	var targetType types.Type
	if ident, ok := node.Target.(*ast.Identifier); ok {
		declared, known := a.symbols.Lookup(ident.Name)
		switch {
		case !known && node.Operator == ast.AssignSet:
			a.symbols.Declare(ident.Name, valueType)
			ident.SetType(valueType)
			return nil
		case !known:
			a.undeclared(ident)
			return nil
		case !declared.IsSet() && node.Operator == ast.AssignSet && valueType.IsSet():
			a.symbols.Refine(ident.Name, valueType)
			ident.SetType(valueType)
			return nil
		}
		ident.SetType(declared)
		targetType = declared
	} else {
		targetType = a.typeOf(node.Target)
	}

	if !a.agree(targetType, valueType, valuePos) {
		return nil
	}
	if op, compound := node.Operator.Binary(); compound {
		rule := binaryRules[op]
		a.require(targetType, node.Target.GetSpan().Start, rule.left...)
	}
	return nil
}

// VisitMachineDefinition checks that the target is a machine variable and
// analyzes the new table.
func (a *Analyzer) VisitMachineDefinition(node *ast.MachineDefinition) interface{} {
	a.require(a.typeOf(node.Target), node.Target.Span.Start, types.TuringMachine)
	node.Table.Accept(a)
	return nil
}

func (a *Analyzer) undeclared(ident *ast.Identifier) {
	a.diagnostics.Reportf(diagnostic.UndeclaredVariable, ident.Span.Start,
		"undeclared variable %q", ident.Name)
}

// ===== Expressions =====

func (a *Analyzer) VisitUnaryExpression(node *ast.UnaryExpression) interface{} {
	operand := a.typeOf(node.Operand)
	rule := unaryRules[node.Operator]
	a.require(operand, node.Operand.GetSpan().Start, rule.operand)
	node.SetType(rule.result)
	return node.Type
}

func (a *Analyzer) VisitBinaryExpression(node *ast.BinaryExpression) interface{} {
	left := a.typeOf(node.Left)
	right := a.typeOf(node.Right)
	rule := binaryRules[node.Operator]

	leftOK := a.require(left, node.Left.GetSpan().Start, rule.left...)
	rightOK := a.require(right, node.Right.GetSpan().Start, rule.right...)
	if rule.sameType && leftOK && rightOK {
		a.agree(left, right, node.Right.GetSpan().Start)
	}

	result := rule.result
	if !result.IsSet() {
		switch {
		case leftOK && left.IsSet():
			result = left
		case rightOK && right.IsSet():
			result = right
		default:
			result = rule.left[0]
		}
	}
	node.SetType(result)
	return result
}

func (a *Analyzer) VisitIdentifier(node *ast.Identifier) interface{} {
	typ, ok := a.symbols.Lookup(node.Name)
	if !ok {
		a.undeclared(node)
		return types.Unset
	}
	node.SetType(typ)
	return typ
}

func (a *Analyzer) VisitLiteral(node *ast.Literal) interface{} {
	node.Value = a.decode(node)
	node.SetType(node.Kind)
	return node.Kind
}

func (a *Analyzer) VisitInputExpression(node *ast.InputExpression) interface{} {
	node.SetType(node.Kind)
	return node.Kind
}

// VisitMachineLiteral decodes the blank symbol and the table, and builds the
// machine value when every part decoded.
func (a *Analyzer) VisitMachineLiteral(node *ast.MachineLiteral) interface{} {
	node.InitialState.SetType(types.TuringMachineState)
	node.Blank.Accept(a)

	transitions := make([]types.Transition, 0)
	complete := node.Blank.Value != nil
	if node.Table != nil {
		table, ok := node.Table.Accept(a).([]types.Transition)
		transitions = table
		complete = complete && ok
	}

	if complete {
		blank := rune(node.Blank.Value.(types.SymbolValue))
		machine := types.NewMachineValue(node.InitialState.Name, blank, transitions)
		node.Value = &machine
	}
	node.SetType(types.TuringMachine)
	return types.TuringMachine
}

// VisitMachineTable analyzes every instruction and collects the distinct
// states and symbols they reference. It returns the decoded transitions, or
// nil when some instruction did not decode.
func (a *Analyzer) VisitMachineTable(node *ast.MachineTable) interface{} {
	node.States = node.States[:0]
	node.Symbols = node.Symbols[:0]
	seenStates := make(map[string]bool)
	seenSymbols := make(map[string]bool)

	transitions := make([]types.Transition, 0, len(node.Instructions))
	complete := true
	for _, instr := range node.Instructions {
		if t, ok := instr.Accept(a).(types.Transition); ok {
			transitions = append(transitions, t)
		} else {
			complete = false
		}

		for _, state := range []*ast.Identifier{instr.State, instr.NextState} {
			if !seenStates[state.Name] {
				seenStates[state.Name] = true
				node.States = append(node.States, state)
			}
		}
		for _, symbol := range []*ast.Literal{instr.Symbol, instr.Write} {
			key := symbolKey(symbol)
			if !seenSymbols[key] {
				seenSymbols[key] = true
				node.Symbols = append(node.Symbols, symbol)
			}
		}
	}

	if !complete {
		return nil
	}
	return transitions
}

// symbolKey identifies a symbol literal by its decoded value, falling back
// to the lexeme when it did not decode.
func symbolKey(lit *ast.Literal) string {
	if lit.Value != nil {
		return lit.Value.String()
	}
	return lit.Raw
}

// VisitMachineInstruction returns the decoded types.Transition, or nil when
// a symbol did not decode.
func (a *Analyzer) VisitMachineInstruction(node *ast.MachineInstruction) interface{} {
	node.State.SetType(types.TuringMachineState)
	node.NextState.SetType(types.TuringMachineState)
	node.Symbol.Accept(a)
	node.Write.Accept(a)

	symbol, ok := node.Symbol.Value.(types.SymbolValue)
	if !ok {
		return nil
	}
	write, ok := node.Write.Value.(types.SymbolValue)
	if !ok {
		return nil
	}
	return types.Transition{
		State:     node.State.Name,
		Symbol:    rune(symbol),
		NextState: node.NextState.Name,
		Write:     rune(write),
		Shift:     node.Shift,
	}
}
