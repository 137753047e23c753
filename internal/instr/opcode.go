// Package instr defines the stack-machine instruction set emitted by the
// analyser and the append-only instruction stream it is written into.
package instr

// Op is a virtual-machine opcode. The numbering is part of the artifact
// format and must not change.
type Op uint8

const (
	ILL Op = iota
	LOADA
	LOADC
	IPUSH
	ILOAD
	ISTORE
	IADD
	ISUB
	IMUL
	INEG
	IDIV
	ICMP
	CALL
	RET
	IRET
	IPRINT
	CPRINT
	PRINTL
	ISCAN
	POPN
	POP
	JE
	JNE
	JMP
	JG
	JL
	JGE
	JLE
)

type opInfo struct {
	name     string
	operands int
}

var opTable = [...]opInfo{
	ILL:    {"ill", 0},
	LOADA:  {"loada", 2},
	LOADC:  {"loadc", 1},
	IPUSH:  {"ipush", 1},
	ILOAD:  {"iload", 0},
	ISTORE: {"istore", 0},
	IADD:   {"iadd", 0},
	ISUB:   {"isub", 0},
	IMUL:   {"imul", 0},
	INEG:   {"ineg", 0},
	IDIV:   {"idiv", 0},
	ICMP:   {"icmp", 0},
	CALL:   {"call", 1},
	RET:    {"ret", 0},
	IRET:   {"iret", 0},
	IPRINT: {"iprint", 0},
	CPRINT: {"cprint", 0},
	PRINTL: {"printl", 0},
	ISCAN:  {"iscan", 0},
	POPN:   {"popn", 1},
	POP:    {"pop", 0},
	JE:     {"je", 1},
	JNE:    {"jne", 1},
	JMP:    {"jmp", 1},
	JG:     {"jg", 1},
	JL:     {"jl", 1},
	JGE:    {"jge", 1},
	JLE:    {"jle", 1},
}

// String returns the lower-case mnemonic.
func (o Op) String() string {
	if int(o) < len(opTable) {
		return opTable[o].name
	}
	return "ill"
}

// Operands returns how many of X, Y the opcode uses.
func (o Op) Operands() int {
	if int(o) < len(opTable) {
		return opTable[o].operands
	}
	return 0
}

// IsJump reports whether X is an instruction index.
func (o Op) IsJump() bool {
	return o >= JE && o <= JLE
}

// Valid reports whether o is a defined opcode.
func (o Op) Valid() bool {
	return int(o) < len(opTable)
}
