// Package types defines the static value types of the Turing-machine language
// and the decoded literal values the type checker produces.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is one of the six value kinds. The zero value means "not yet typed":
// nodes keep it until the type checker assigns a type, and keep it forever
// when their type cannot be determined (for example an undeclared variable).
type Type int

const (
	Unset Type = iota
	Boolean
	Integer
	Symbol
	Tape
	TuringMachine
	TuringMachineState
)

var typeNames = map[Type]string{
	Unset:              "UNSET",
	Boolean:            "BOOLEAN",
	Integer:            "INTEGER",
	Symbol:             "SYMBOL",
	Tape:               "TAPE",
	TuringMachine:      "TURING_MACHINE",
	TuringMachineState: "TURING_MACHINE_STATE",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// IsSet reports whether a type has been assigned.
func (t Type) IsSet() bool { return t != Unset }

// OneOf reports whether t is any of the given types.
func (t Type) OneOf(candidates ...Type) bool {
	for _, c := range candidates {
		if t == c {
			return true
		}
	}
	return false
}

// Integer literals must fit in a signed 16-bit word.
const (
	MinInteger = -32768
	MaxInteger = 32767
)

// Value is a decoded literal value.
type Value interface {
	Type() Type
	String() string
}

// BooleanValue is a decoded `true`/`false` literal.
type BooleanValue bool

func (BooleanValue) Type() Type       { return Boolean }
func (b BooleanValue) String() string { return fmt.Sprintf("%t", bool(b)) }

// IntegerValue is a decoded, range-checked integer literal.
type IntegerValue int16

func (IntegerValue) Type() Type       { return Integer }
func (i IntegerValue) String() string { return fmt.Sprintf("%d", int16(i)) }

// SymbolValue is a single tape character.
type SymbolValue rune

func (SymbolValue) Type() Type       { return Symbol }
func (s SymbolValue) String() string { return fmt.Sprintf("%q", rune(s)) }

// TapeValue is the finite representation of a two-way infinite tape: the
// written cells and the index of the cell under the head.
type TapeValue struct {
	Head  int
	Cells []rune
}

func (TapeValue) Type() Type { return Tape }

func (t TapeValue) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for i, c := range t.Cells {
		if i == t.Head {
			b.WriteByte('^')
		}
		b.WriteRune(c)
	}
	b.WriteByte('"')
	return b.String()
}

// Shift is the head movement of a transition.
type Shift byte

const (
	ShiftLeft  Shift = '<'
	ShiftRight Shift = '>'
	ShiftStay  Shift = '-'
)

func (s Shift) String() string { return string(rune(s)) }

// Transition is one row of a machine's transition table.
type Transition struct {
	State     string
	Symbol    rune
	NextState string
	Write     rune
	Shift     Shift
}

func (t Transition) String() string {
	return fmt.Sprintf("%s %q = %s %q %s", t.State, t.Symbol, t.NextState, t.Write, t.Shift)
}

// MachineValue is a decoded Turing-machine literal. States and Symbols are
// the distinct states and symbols referenced by the transition table, in
// sorted order. Determinism of the table is not checked.
type MachineValue struct {
	InitialState string
	Blank        rune
	States       []string
	Symbols      []rune
	Transitions  []Transition
}

func (MachineValue) Type() Type { return TuringMachine }

func (m MachineValue) String() string {
	rows := make([]string, len(m.Transitions))
	for i, t := range m.Transitions {
		rows[i] = t.String()
	}
	if len(rows) == 0 {
		return fmt.Sprintf("{%s %q}", m.InitialState, m.Blank)
	}
	return fmt.Sprintf("{%s %q: %s}", m.InitialState, m.Blank, strings.Join(rows, "; "))
}

// NewMachineValue builds a machine value and derives its state and symbol sets.
func NewMachineValue(initial string, blank rune, transitions []Transition) MachineValue {
	states := make(map[string]struct{})
	symbols := make(map[rune]struct{})
	for _, t := range transitions {
		states[t.State] = struct{}{}
		states[t.NextState] = struct{}{}
		symbols[t.Symbol] = struct{}{}
		symbols[t.Write] = struct{}{}
	}

	m := MachineValue{
		InitialState: initial,
		Blank:        blank,
		States:       make([]string, 0, len(states)),
		Symbols:      make([]rune, 0, len(symbols)),
		Transitions:  transitions,
	}
	for s := range states {
		m.States = append(m.States, s)
	}
	for s := range symbols {
		m.Symbols = append(m.Symbols, s)
	}
	sort.Strings(m.States)
	sort.Slice(m.Symbols, func(i, j int) bool { return m.Symbols[i] < m.Symbols[j] })
	return m
}
