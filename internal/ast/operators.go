package ast

import "fmt"

// UnaryOperator represents unary operators
type UnaryOperator int

const (
	UnaryNot   UnaryOperator = iota // not x
	UnaryMinus                      // -x
	UnaryHead                       // t^
	UnaryNext                       // t[]
)

func (op UnaryOperator) String() string {
	switch op {
	case UnaryNot:
		return "not"
	case UnaryMinus:
		return "-"
	case UnaryHead:
		return "^"
	case UnaryNext:
		return "[]"
	default:
		return fmt.Sprintf("unary(%d)", int(op))
	}
}

// BinaryOperator represents binary operators
type BinaryOperator int

const (
	// Logical
	BinaryOr BinaryOperator = iota
	BinaryAnd

	// Comparison
	BinaryEq
	BinaryNe
	BinaryLt
	BinaryGt
	BinaryLe
	BinaryGe

	// Arithmetic
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod

	// Postfix
	BinaryIndex // t[i]
	BinaryApply // m(t)
)

var binaryOperatorNames = map[BinaryOperator]string{
	BinaryOr:    "or",
	BinaryAnd:   "and",
	BinaryEq:    "==",
	BinaryNe:    "!=",
	BinaryLt:    "<",
	BinaryGt:    ">",
	BinaryLe:    "<=",
	BinaryGe:    ">=",
	BinaryAdd:   "+",
	BinarySub:   "-",
	BinaryMul:   "*",
	BinaryDiv:   "/",
	BinaryMod:   "%",
	BinaryIndex: "[",
	BinaryApply: "(",
}

func (op BinaryOperator) String() string {
	if name, ok := binaryOperatorNames[op]; ok {
		return name
	}
	return fmt.Sprintf("binary(%d)", int(op))
}

// IsComparison reports whether op is one of == != < > <= >=.
func (op BinaryOperator) IsComparison() bool {
	return op >= BinaryEq && op <= BinaryGe
}

// AssignOperator represents assignment operators
type AssignOperator int

const (
	AssignSet AssignOperator = iota // =
	AssignAdd                       // +=
	AssignSub                       // -=
	AssignMul                       // *=
	AssignDiv                       // /=
	AssignMod                       // %=
)

var assignOperatorNames = [...]string{"=", "+=", "-=", "*=", "/=", "%="}

func (op AssignOperator) String() string {
	if op >= 0 && int(op) < len(assignOperatorNames) {
		return assignOperatorNames[op]
	}
	return fmt.Sprintf("assign(%d)", int(op))
}

// Binary returns the arithmetic operator a compound assignment applies.
// It returns false for plain `=`.
func (op AssignOperator) Binary() (BinaryOperator, bool) {
	switch op {
	case AssignAdd:
		return BinaryAdd, true
	case AssignSub:
		return BinarySub, true
	case AssignMul:
		return BinaryMul, true
	case AssignDiv:
		return BinaryDiv, true
	case AssignMod:
		return BinaryMod, true
	default:
		return 0, false
	}
}
