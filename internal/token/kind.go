package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwConst represents the 'const' keyword.
	KwConst
	// KwVoid represents the 'void' keyword.
	KwVoid
	// KwInt represents the 'int' keyword.
	KwInt
	// KwChar represents the 'char' keyword.
	KwChar
	// KwDouble represents the 'double' keyword.
	KwDouble
	// KwStruct represents the 'struct' keyword.
	KwStruct
	// KwIf represents the 'if' keyword.
	KwIf
	// KwElse represents the 'else' keyword.
	KwElse
	// KwSwitch represents the 'switch' keyword.
	KwSwitch
	// KwCase represents the 'case' keyword.
	KwCase
	// KwDefault represents the 'default' keyword.
	KwDefault
	// KwWhile represents the 'while' keyword.
	KwWhile
	// KwFor represents the 'for' keyword.
	KwFor
	// KwDo represents the 'do' keyword.
	KwDo
	// KwReturn represents the 'return' keyword.
	KwReturn
	// KwBreak represents the 'break' keyword.
	KwBreak
	// KwContinue represents the 'continue' keyword.
	KwContinue
	// KwPrint represents the 'print' keyword.
	KwPrint
	// KwScan represents the 'scan' keyword.
	KwScan

	// DecimalLit represents a decimal integer literal.
	DecimalLit
	// HexLit represents a hexadecimal integer literal.
	HexLit

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Assign    // =
	EqEq      // ==
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Semicolon // ;
	Comma     // ,
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	KwConst:    "KwConst",
	KwVoid:     "KwVoid",
	KwInt:      "KwInt",
	KwChar:     "KwChar",
	KwDouble:   "KwDouble",
	KwStruct:   "KwStruct",
	KwIf:       "KwIf",
	KwElse:     "KwElse",
	KwSwitch:   "KwSwitch",
	KwCase:     "KwCase",
	KwDefault:  "KwDefault",
	KwWhile:    "KwWhile",
	KwFor:      "KwFor",
	KwDo:       "KwDo",
	KwReturn:   "KwReturn",
	KwBreak:    "KwBreak",
	KwContinue: "KwContinue",
	KwPrint:    "KwPrint",
	KwScan:     "KwScan",
	DecimalLit: "DecimalLit",
	HexLit:     "HexLit",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Assign:     "Assign",
	EqEq:       "EqEq",
	BangEq:     "BangEq",
	Lt:         "Lt",
	LtEq:       "LtEq",
	Gt:         "Gt",
	GtEq:       "GtEq",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	Semicolon:  "Semicolon",
	Comma:      "Comma",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
