package typechecker

import (
	"sort"

	"github.com/MBogda/turing-machine-translator/internal/types"
)

// SymbolTable maps variable names to their declared types. Typing is static:
// the first plain assignment to a name fixes its type for the whole program.
type SymbolTable struct {
	types map[string]types.Type
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{types: make(map[string]types.Type)}
}

// Declare installs name with typ. It returns false, leaving the table
// unchanged, when name is already declared.
func (st *SymbolTable) Declare(name string, typ types.Type) bool {
	if _, exists := st.types[name]; exists {
		return false
	}
	st.types[name] = typ
	return true
}

// Refine fixes the type of a name declared without one. It returns false,
// leaving the table unchanged, when name is unknown or already typed.
func (st *SymbolTable) Refine(name string, typ types.Type) bool {
	if current, exists := st.types[name]; !exists || current.IsSet() {
		return false
	}
	st.types[name] = typ
	return true
}

// Lookup returns the declared type of name.
func (st *SymbolTable) Lookup(name string) (types.Type, bool) {
	typ, ok := st.types[name]
	return typ, ok
}

// Names returns the declared names in sorted order.
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, len(st.types))
	for name := range st.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of declared names.
func (st *SymbolTable) Len() int {
	return len(st.types)
}
