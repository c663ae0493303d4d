package types

import (
	"reflect"
	"testing"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Unset, "UNSET"},
		{Boolean, "BOOLEAN"},
		{Tape, "TAPE"},
		{TuringMachineState, "TURING_MACHINE_STATE"},
		{Type(99), "Type(99)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", int(tt.typ), got, tt.want)
		}
	}
}

func TestTapeValueString(t *testing.T) {
	tape := TapeValue{Head: 1, Cells: []rune("abc")}
	if got := tape.String(); got != `"a^bc"` {
		t.Errorf("String() = %s", got)
	}
}

func TestNewMachineValue(t *testing.T) {
	m := NewMachineValue("q0", '_', []Transition{
		{State: "q0", Symbol: '1', NextState: "q1", Write: '0', Shift: ShiftRight},
		{State: "q1", Symbol: '_', NextState: "q1", Write: '_', Shift: ShiftStay},
	})

	if !reflect.DeepEqual(m.States, []string{"q0", "q1"}) {
		t.Errorf("States = %v", m.States)
	}
	if !reflect.DeepEqual(m.Symbols, []rune{'0', '1', '_'}) {
		t.Errorf("Symbols = %q", m.Symbols)
	}
	if m.Type() != TuringMachine {
		t.Errorf("Type() = %s", m.Type())
	}
}
