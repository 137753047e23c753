package instr

import (
	"fmt"
	"strings"
)

// Instruction is a fixed-shape record: opcode plus up to two operands.
// Y is only used by LOADA.
type Instruction struct {
	Op Op    `msgpack:"op"`
	X  int32 `msgpack:"x"`
	Y  int32 `msgpack:"y"`
}

func (in Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(in.Op.String())
	switch in.Op.Operands() {
	case 1:
		fmt.Fprintf(&sb, " %d", in.X)
	case 2:
		fmt.Fprintf(&sb, " %d, %d", in.X, in.Y)
	}
	return sb.String()
}
