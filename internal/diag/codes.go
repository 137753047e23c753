package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexEndOfFile         Code = 1000 // clean stop, never shown to users
	LexInvalidInput      Code = 1001
	LexInvalidIdentifier Code = 1002
	LexValueOverflow     Code = 1003

	// Синтаксические
	SynSyntaxError Code = 2001
	SynUnsupported Code = 2002

	// Семантические
	SemaRedeclaration         Code = 3002
	SemaUndeclaredSymbol      Code = 3003
	SemaUndeclaredFunction    Code = 3004
	SemaTypeMismatch          Code = 3005
	SemaConstAssignment       Code = 3006
	SemaArityMismatch         Code = 3007
	SemaMissingReturn         Code = 3008
	SemaConstWithoutInit      Code = 3009
	SemaUninitializedVariable Code = 3010
	SemaJumpOutsideLoop       Code = 3011
	SemaMissingMain           Code = 3012

	// Ввод-вывод
	IOStreamError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:               "Unknown error",
	LexEndOfFile:              "End of file",
	LexInvalidInput:           "Invalid input character",
	LexInvalidIdentifier:      "Invalid identifier",
	LexValueOverflow:          "Integer literal out of range",
	SynSyntaxError:            "Unexpected token",
	SynUnsupported:            "Language feature not supported",
	SemaRedeclaration:         "Symbol redeclared in the same scope",
	SemaUndeclaredSymbol:      "Use of undeclared identifier",
	SemaUndeclaredFunction:    "Call of undeclared function",
	SemaTypeMismatch:          "Type mismatch",
	SemaConstAssignment:       "Assignment to a constant",
	SemaArityMismatch:         "Wrong number of arguments",
	SemaMissingReturn:         "Missing return in non-void function",
	SemaConstWithoutInit:      "Constant declared without a value",
	SemaUninitializedVariable: "Use of uninitialized variable",
	SemaJumpOutsideLoop:       "break or continue outside of a loop",
	SemaMissingMain:           "Program has no main function",
	IOStreamError:             "Source stream is unreadable",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
