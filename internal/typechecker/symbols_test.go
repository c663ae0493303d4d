package typechecker

import (
	"slices"
	"testing"

	"github.com/MBogda/turing-machine-translator/internal/types"
)

func TestSymbolTable(t *testing.T) {
	st := NewSymbolTable()

	if !st.Declare("x", types.Integer) {
		t.Fatal("first Declare(x) failed")
	}
	if st.Declare("x", types.Boolean) {
		t.Error("second Declare(x) succeeded")
	}
	if !st.Declare("u", types.Unset) {
		t.Fatal("Declare(u) failed")
	}

	tests := []struct {
		name string
		typ  types.Type
		ok   bool
		want types.Type
	}{
		{"missing", types.Integer, false, types.Unset},
		{"x", types.Boolean, false, types.Integer},
		{"u", types.Tape, true, types.Tape},
		{"u", types.Symbol, false, types.Tape},
	}
	for _, tt := range tests {
		if got := st.Refine(tt.name, tt.typ); got != tt.ok {
			t.Errorf("Refine(%s, %s) = %v, want %v", tt.name, tt.typ, got, tt.ok)
		}
		if got, _ := st.Lookup(tt.name); got != tt.want {
			t.Errorf("%s: %s, want %s", tt.name, got, tt.want)
		}
	}

	if names := st.Names(); !slices.Equal(names, []string{"u", "x"}) || st.Len() != 2 {
		t.Errorf("Names() = %v, Len() = %d", names, st.Len())
	}
}
