package symbols

import (
	"errors"
	"testing"

	"c0/internal/diag"
)

func TestEntryFunction(t *testing.T) {
	table := NewTable()
	fns := table.Functions()
	if len(fns) != 1 {
		t.Fatalf("expected only the entry function, got %d", len(fns))
	}
	if fns[0].Name != EntryName || fns[0].NameIndex != -1 || fns[0].Level != 0 || fns[0].Return != Void {
		t.Fatalf("unexpected entry function %+v", fns[0])
	}
	if table.InFunction() {
		t.Fatalf("fresh table must be at global scope")
	}
}

func TestSlotsAreIndependentPerScope(t *testing.T) {
	table := NewTable()
	mustVar(t, table, "g0", Int, true)
	g1 := mustVar(t, table, "g1", Char, false)
	if g1.Index != 1 || g1.Scope != ScopeGlobal || g1.Level() != 0 {
		t.Fatalf("unexpected global %+v", g1)
	}

	table.EnterFunctionScope()
	p := mustVar(t, table, "a", Int, true)
	if p.Index != 0 || p.Level() != 1 {
		t.Fatalf("first parameter must be local slot 0, got %+v", p)
	}
	l := mustVar(t, table, "b", Int, false)
	if l.Index != 1 {
		t.Fatalf("expected slot 1, got %d", l.Index)
	}
	if table.LocalCount() != 2 {
		t.Fatalf("expected 2 locals, got %d", table.LocalCount())
	}
	table.ExitFunctionScope()

	table.EnterFunctionScope()
	again := mustVar(t, table, "c", Int, true)
	if again.Index != 0 {
		t.Fatalf("local slots must restart per function, got %d", again.Index)
	}
	table.ExitFunctionScope()
}

func TestRedeclarationAndShadowing(t *testing.T) {
	table := NewTable()
	mustVar(t, table, "x", Int, true)
	if _, err := table.DeclareConstant("x", Int); !errors.Is(err, diag.ErrRedeclaration) {
		t.Fatalf("expected redeclaration, got %v", err)
	}

	table.EnterFunctionScope()
	local := mustVar(t, table, "x", Char, false)
	got, err := table.Resolve("x")
	if err != nil {
		t.Fatal(err)
	}
	if got != local {
		t.Fatalf("local must shadow global: got %+v", got)
	}
	if _, err := table.DeclareVariable("x", Int, true); !errors.Is(err, diag.ErrRedeclaration) {
		t.Fatalf("expected redeclaration in function scope, got %v", err)
	}
	table.ExitFunctionScope()

	got, err = table.Resolve("x")
	if err != nil || got.Scope != ScopeGlobal {
		t.Fatalf("after exit expected global x, got %+v, %v", got, err)
	}
}

func TestResolveUndeclared(t *testing.T) {
	table := NewTable()
	if _, err := table.Resolve("nope"); !errors.Is(err, diag.ErrUndeclaredSymbol) {
		t.Fatalf("expected undeclared symbol, got %v", err)
	}
	if _, _, err := table.ResolveFunction("nope"); !errors.Is(err, diag.ErrUndeclaredFunction) {
		t.Fatalf("expected undeclared function, got %v", err)
	}
	if err := table.MarkInitialized("nope"); !errors.Is(err, diag.ErrUndeclaredSymbol) {
		t.Fatalf("expected undeclared symbol, got %v", err)
	}
}

func TestFunctionNamespace(t *testing.T) {
	table := NewTable()
	mustVar(t, table, "g", Int, true)

	if _, err := table.DeclareFunction("g", 0, nil, Int); !errors.Is(err, diag.ErrRedeclaration) {
		t.Fatalf("function may not reuse a global name, got %v", err)
	}
	idx, err := table.DeclareFunction("f", 3, []Type{Int, Char}, Void)
	if err != nil || idx != 1 {
		t.Fatalf("DeclareFunction: idx=%d err=%v", idx, err)
	}
	if _, err := table.DeclareFunction("f", 4, nil, Int); !errors.Is(err, diag.ErrRedeclaration) {
		t.Fatalf("expected duplicate function error, got %v", err)
	}
	if _, err := table.DeclareVariable("f", Int, true); !errors.Is(err, diag.ErrRedeclaration) {
		t.Fatalf("global may not reuse a function name, got %v", err)
	}

	table.EnterFunctionScope()
	if _, err := table.DeclareVariable("f", Int, true); err != nil {
		t.Fatalf("local may shadow a function name: %v", err)
	}
	table.ExitFunctionScope()

	i, fn, err := table.ResolveFunction("f")
	if err != nil || i != 1 || fn.NameIndex != 3 || fn.Level != 1 || len(fn.Params) != 2 || fn.Return != Void {
		t.Fatalf("unexpected function %d %+v %v", i, fn, err)
	}
}

func TestMarkInitialized(t *testing.T) {
	table := NewTable()
	mustVar(t, table, "v", Int, false)
	if _, err := table.DeclareConstant("c", Int); err != nil {
		t.Fatal(err)
	}
	if err := table.MarkInitialized("v"); err != nil {
		t.Fatal(err)
	}
	if err := table.MarkInitialized("c"); err != nil {
		t.Fatal(err)
	}
	v, _ := table.Resolve("v")
	c, _ := table.Resolve("c")
	if v.Kind != KindVariable || !v.IsInitialized() {
		t.Fatalf("v not initialised: %+v", v)
	}
	if c.Kind != KindConstant || !c.IsConst() {
		t.Fatalf("constant changed kind: %+v", c)
	}
}

func TestTypeAssignability(t *testing.T) {
	cases := []struct {
		from, to Type
		ok       bool
	}{
		{Int, Int, true},
		{Char, Int, true},
		{Int, Char, true},
		{Void, Int, false},
		{Int, Void, false},
		{Unit, Int, false},
	}
	for _, tc := range cases {
		if got := tc.from.AssignableTo(tc.to); got != tc.ok {
			t.Fatalf("%v -> %v: got %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func mustVar(t *testing.T, table *Table, name string, typ Type, init bool) Symbol {
	t.Helper()
	sym, err := table.DeclareVariable(name, typ, init)
	if err != nil {
		t.Fatalf("declare %s: %v", name, err)
	}
	return sym
}
