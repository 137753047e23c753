package program

import (
	"errors"
	"fmt"
	"slices"

	"c0/internal/instr"
	"c0/internal/symbols"
)

// Function is a function table entry as stored in the artifact.
// Entry 0 is the implicit entry procedure.
type Function struct {
	Name       string         `msgpack:"name"`
	NameIndex  int32          `msgpack:"name_index"` // -1 for the entry procedure
	ParamCount int32          `msgpack:"params"`
	Level      int32          `msgpack:"level"`
	ParamTypes []symbols.Type `msgpack:"param_types"`
	Return     symbols.Type   `msgpack:"ret"`
}

// Equal compares two entries field by field.
func (f Function) Equal(g Function) bool {
	return f.Name == g.Name && f.NameIndex == g.NameIndex &&
		f.ParamCount == g.ParamCount && f.Level == g.Level &&
		f.Return == g.Return && slices.Equal(f.ParamTypes, g.ParamTypes)
}

// Program is the result of compiling one source file.
type Program struct {
	Constants []Constant            `msgpack:"constants"`
	Functions []Function            `msgpack:"functions"`
	Code      [][]instr.Instruction `msgpack:"code"`
}

// Entry returns the global initialiser code.
func (p *Program) Entry() []instr.Instruction {
	if len(p.Code) == 0 {
		return nil
	}
	return p.Code[0]
}

// FunctionIndex finds a function by name; the entry procedure is not
// addressable.
func (p *Program) FunctionIndex(name string) (int, bool) {
	for i := 1; i < len(p.Functions); i++ {
		if p.Functions[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

var ErrMalformed = errors.New("malformed program")

// Validate checks the structural invariants of a Program: one stream per
// function, every operand addressing something that exists.
func (p *Program) Validate() error {
	if len(p.Functions) == 0 {
		return fmt.Errorf("%w: no entry function", ErrMalformed)
	}
	if len(p.Code) != len(p.Functions) {
		return fmt.Errorf("%w: %d functions but %d code streams", ErrMalformed, len(p.Functions), len(p.Code))
	}
	for i, fn := range p.Functions {
		if i > 0 && (fn.NameIndex < 0 || int(fn.NameIndex) >= len(p.Constants)) {
			return fmt.Errorf("%w: function %d name index %d out of range", ErrMalformed, i, fn.NameIndex)
		}
		if err := checkSignature(fn); err != nil {
			return fmt.Errorf("%w: function %d: %v", ErrMalformed, i, err)
		}
		for at, in := range p.Code[i] {
			if err := p.checkInstruction(len(p.Code[i]), in); err != nil {
				return fmt.Errorf("%w: F%d[%d] %s: %v", ErrMalformed, i, at, in, err)
			}
		}
	}
	return nil
}

func checkSignature(fn Function) error {
	if int(fn.ParamCount) != len(fn.ParamTypes) {
		return fmt.Errorf("%d parameters but %d types", fn.ParamCount, len(fn.ParamTypes))
	}
	for _, t := range fn.ParamTypes {
		if !t.IsValue() {
			return fmt.Errorf("parameter of type %s", t)
		}
	}
	if fn.Return != symbols.Void && !fn.Return.IsValue() {
		return fmt.Errorf("return type %s", fn.Return)
	}
	return nil
}

func (p *Program) checkInstruction(streamLen int, in instr.Instruction) error {
	switch {
	case !in.Op.Valid():
		return errors.New("unknown opcode")
	case in.Op.IsJump():
		// a jump may target one past the end: the fall-through exit
		if in.X < 0 || int(in.X) > streamLen {
			return errors.New("jump target out of range")
		}
	case in.Op == instr.LOADC:
		if in.X < 0 || int(in.X) >= len(p.Constants) {
			return errors.New("constant index out of range")
		}
	case in.Op == instr.CALL:
		if in.X <= 0 || int(in.X) >= len(p.Functions) {
			return errors.New("call target out of range")
		}
	case in.Op == instr.LOADA:
		if in.X != 0 && in.X != 1 {
			return errors.New("bad level")
		}
	}
	return nil
}
