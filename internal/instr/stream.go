package instr

import (
	"fmt"

	"fortio.org/safecast"
)

// Stream is the append-only instruction list of one function. The only
// in-place mutation allowed is patching a jump target.
type Stream struct {
	code []Instruction
}

// NewStream returns an empty stream.
func NewStream() *Stream {
	return &Stream{code: make([]Instruction, 0, 16)}
}

// Emit appends an instruction and returns its index. Missing operands are zero.
func (s *Stream) Emit(op Op, operands ...int32) int {
	in := Instruction{Op: op}
	if len(operands) > 0 {
		in.X = operands[0]
	}
	if len(operands) > 1 {
		in.Y = operands[1]
	}
	s.code = append(s.code, in)
	return len(s.code) - 1
}

// EmitJump appends a jump whose target is not known yet and returns its index.
func (s *Stream) EmitJump(op Op) int {
	if !op.IsJump() {
		panic(fmt.Errorf("EmitJump: %s is not a jump", op))
	}
	return s.Emit(op, -1)
}

// Len is the index the next emitted instruction will get.
func (s *Stream) Len() int {
	return len(s.code)
}

// Here returns Len as an operand.
func (s *Stream) Here() int32 {
	return MustOperand(len(s.code))
}

// Patch overwrites the target of the jump at index at.
func (s *Stream) Patch(at int, target int32) {
	if at < 0 || at >= len(s.code) {
		panic(fmt.Errorf("patch out of range: %d (len %d)", at, len(s.code)))
	}
	if !s.code[at].Op.IsJump() {
		panic(fmt.Errorf("patch of non-jump %s at %d", s.code[at].Op, at))
	}
	s.code[at].X = target
}

// PatchHere points the jump at index at to the next instruction.
func (s *Stream) PatchHere(at int) {
	s.Patch(at, s.Here())
}

// Append copies other's instructions to the end of s. Jumps inside other are
// not relocated, so other must not contain any.
func (s *Stream) Append(other *Stream) {
	for _, in := range other.code {
		if in.Op.IsJump() {
			panic(fmt.Errorf("append of stream containing %s", in.Op))
		}
	}
	s.code = append(s.code, other.code...)
}

// At returns the instruction at index i.
func (s *Stream) At(i int) Instruction {
	return s.code[i]
}

// Instructions returns the emitted code. Callers must not modify it.
func (s *Stream) Instructions() []Instruction {
	return s.code
}

// MustOperand converts an index or count to an operand.
func MustOperand(n int) int32 {
	v, err := safecast.Conv[int32](n)
	if err != nil {
		panic(fmt.Errorf("operand overflow: %w", err))
	}
	return v
}
