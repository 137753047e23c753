package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"c0/internal/diag"
)

// Table is the scope stack plus the function table.
type Table struct {
	scopes    []*scope // [global] or [global, function]
	functions []Function
	funcIndex map[string]int
}

// NewTable returns a table with an empty global scope and the entry
// procedure at function index 0.
func NewTable() *Table {
	return &Table{
		scopes: []*scope{newScope(ScopeGlobal)},
		functions: []Function{{
			Name:      EntryName,
			NameIndex: -1,
			Level:     0,
			Return:    Void,
		}},
		funcIndex: make(map[string]int),
	}
}

func (t *Table) current() *scope {
	return t.scopes[len(t.scopes)-1]
}

// InFunction reports whether a function scope is open.
func (t *Table) InFunction() bool {
	return len(t.scopes) > 1
}

// EnterFunctionScope opens a fresh function scope; local slots restart at 0.
func (t *Table) EnterFunctionScope() {
	if t.InFunction() {
		panic("symbols: function scopes do not nest")
	}
	t.scopes = append(t.scopes, newScope(ScopeLocal))
}

// ExitFunctionScope discards the function scope and all its symbols.
func (t *Table) ExitFunctionScope() {
	if !t.InFunction() {
		panic("symbols: no function scope to exit")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// DeclareVariable adds a variable to the current scope.
func (t *Table) DeclareVariable(name string, typ Type, initialized bool) (Symbol, error) {
	kind := KindUninitialized
	if initialized {
		kind = KindVariable
	}
	return t.declare(name, kind, typ)
}

// DeclareConstant adds a constant to the current scope. Constants are always
// initialised.
func (t *Table) DeclareConstant(name string, typ Type) (Symbol, error) {
	return t.declare(name, KindConstant, typ)
}

func (t *Table) declare(name string, kind Kind, typ Type) (Symbol, error) {
	cur := t.current()
	if _, ok := cur.lookup(name); ok {
		return Symbol{}, diag.NewNoPos(diag.SemaRedeclaration)
	}
	if cur.kind == ScopeGlobal {
		if _, ok := t.funcIndex[name]; ok {
			return Symbol{}, diag.NewNoPos(diag.SemaRedeclaration)
		}
	}
	return *cur.declare(name, kind, typ), nil
}

// DeclareFunction appends a function and returns its table index.
// The name may not collide with a global symbol or another function.
func (t *Table) DeclareFunction(name string, nameIndex int32, params []Type, ret Type) (int, error) {
	if _, ok := t.funcIndex[name]; ok || name == EntryName {
		return 0, diag.NewNoPos(diag.SemaRedeclaration)
	}
	if _, ok := t.scopes[0].lookup(name); ok {
		return 0, diag.NewNoPos(diag.SemaRedeclaration)
	}
	idx := len(t.functions)
	t.functions = append(t.functions, Function{
		Name:      name,
		NameIndex: nameIndex,
		Level:     1,
		Params:    append([]Type(nil), params...),
		Return:    ret,
	})
	t.funcIndex[name] = idx
	return idx, nil
}

// Resolve finds name starting from the innermost scope.
func (t *Table) Resolve(name string) (Symbol, error) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].lookup(name); ok {
			return *sym, nil
		}
	}
	return Symbol{}, diag.NewNoPos(diag.SemaUndeclaredSymbol)
}

// ResolveFunction finds a user function by name.
func (t *Table) ResolveFunction(name string) (int, Function, error) {
	idx, ok := t.funcIndex[name]
	if !ok {
		return 0, Function{}, diag.NewNoPos(diag.SemaUndeclaredFunction)
	}
	return idx, t.functions[idx], nil
}

// MarkInitialized turns an uninitialised variable into a variable.
// Variables and constants are left untouched.
func (t *Table) MarkInitialized(name string) error {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].lookup(name); ok {
			if sym.Kind == KindUninitialized {
				sym.Kind = KindVariable
			}
			return nil
		}
	}
	return diag.NewNoPos(diag.SemaUndeclaredSymbol)
}

// Function returns the i-th function table entry.
func (t *Table) Function(i int) Function {
	return t.functions[i]
}

// Functions returns a copy of the function table.
func (t *Table) Functions() []Function {
	out := make([]Function, len(t.functions))
	copy(out, t.functions)
	return out
}

// LocalCount is the number of slots in the innermost scope.
func (t *Table) LocalCount() int32 {
	n, err := safecast.Conv[int32](len(t.current().ordered))
	if err != nil {
		panic(fmt.Errorf("slot count overflow: %w", err))
	}
	return n
}
