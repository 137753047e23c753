package instr

import (
	"testing"
)

func TestEmitAndPatch(t *testing.T) {
	s := NewStream()
	s.Emit(LOADC, 0)
	j := s.EmitJump(JE)
	s.Emit(IPRINT)
	s.PatchHere(j)
	s.Emit(LOADA, 1, 3)

	want := []Instruction{
		{Op: LOADC, X: 0},
		{Op: JE, X: 3},
		{Op: IPRINT},
		{Op: LOADA, X: 1, Y: 3},
	}
	got := s.Instructions()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("instr %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPatchNonJumpPanics(t *testing.T) {
	s := NewStream()
	s.Emit(IADD)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when patching a non-jump")
		}
	}()
	s.Patch(0, 5)
}

func TestAppendRejectsJumps(t *testing.T) {
	s := NewStream()
	update := NewStream()
	update.Emit(LOADA, 1, 0)
	update.Emit(ISTORE)
	s.Append(update)
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	bad := NewStream()
	bad.Emit(JMP, 0)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on jump in appended stream")
		}
	}()
	s.Append(bad)
}

func TestOpTable(t *testing.T) {
	for op := ILL; op <= JLE; op++ {
		if !op.Valid() {
			t.Fatalf("%d should be valid", op)
		}
		if op.String() == "" {
			t.Fatalf("op %d has no mnemonic", op)
		}
	}
	if Op(200).Valid() {
		t.Fatal("200 must not be a valid op")
	}
	cases := map[Op]int{LOADA: 2, LOADC: 1, CALL: 1, JMP: 1, IADD: 0, POPN: 1}
	for op, n := range cases {
		if op.Operands() != n {
			t.Errorf("%s.Operands() = %d, want %d", op, op.Operands(), n)
		}
	}
	if !JLE.IsJump() || CALL.IsJump() {
		t.Error("IsJump misclassifies")
	}
}

func TestInstructionString(t *testing.T) {
	cases := map[Instruction]string{
		{Op: LOADA, X: 0, Y: 2}: "loada 0, 2",
		{Op: CALL, X: 1}:        "call 1",
		{Op: IMUL}:              "imul",
	}
	for in, want := range cases {
		if got := in.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
