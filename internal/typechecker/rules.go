package typechecker

import (
	"github.com/MBogda/turing-machine-translator/internal/ast"
	"github.com/MBogda/turing-machine-translator/internal/types"
)

// unaryRule gives the operand type an operator requires and the type it
// produces.
type unaryRule struct {
	operand types.Type
	result  types.Type
}

var unaryRules = map[ast.UnaryOperator]unaryRule{
	ast.UnaryNot:   {operand: types.Boolean, result: types.Boolean},
	ast.UnaryMinus: {operand: types.Integer, result: types.Integer},
	ast.UnaryHead:  {operand: types.Tape, result: types.Integer},
	ast.UnaryNext:  {operand: types.Tape, result: types.Integer},
}

// binaryRule gives the operand types an operator accepts. With sameType
// both operands must also agree with each other. A result of Unset means
// the result has the operands' type.
type binaryRule struct {
	left     []types.Type
	right    []types.Type
	sameType bool
	result   types.Type
}

var (
	booleans      = []types.Type{types.Boolean}
	integers      = []types.Type{types.Integer}
	tapes         = []types.Type{types.Tape}
	machines      = []types.Type{types.TuringMachine}
	comparables   = []types.Type{types.Integer, types.Symbol, types.Tape}
	addables      = []types.Type{types.Integer, types.Tape, types.TuringMachine}
	subtractables = []types.Type{types.Integer, types.Tape}
)

var binaryRules = map[ast.BinaryOperator]binaryRule{
	ast.BinaryOr:  {left: booleans, right: booleans, result: types.Boolean},
	ast.BinaryAnd: {left: booleans, right: booleans, result: types.Boolean},

	ast.BinaryEq: {left: comparables, right: comparables, sameType: true, result: types.Boolean},
	ast.BinaryNe: {left: comparables, right: comparables, sameType: true, result: types.Boolean},

	ast.BinaryLt: {left: integers, right: integers, result: types.Boolean},
	ast.BinaryGt: {left: integers, right: integers, result: types.Boolean},
	ast.BinaryLe: {left: integers, right: integers, result: types.Boolean},
	ast.BinaryGe: {left: integers, right: integers, result: types.Boolean},

	ast.BinaryAdd: {left: addables, right: addables, sameType: true},
	ast.BinarySub: {left: subtractables, right: subtractables, sameType: true},

	ast.BinaryMul: {left: integers, right: integers, result: types.Integer},
	ast.BinaryDiv: {left: integers, right: integers, result: types.Integer},
	ast.BinaryMod: {left: integers, right: integers, result: types.Integer},

	ast.BinaryIndex: {left: tapes, right: integers, result: types.Symbol},
	ast.BinaryApply: {left: machines, right: tapes, result: types.Tape},
}
