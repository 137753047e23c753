package token

import (
	"c0/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Text  string
	Value int64 // integer literals only
	Start source.Pos
	End   source.Pos
}

// IsLiteral reports whether the token is an integer literal.
func (t Token) IsLiteral() bool {
	return t.Kind == DecimalLit || t.Kind == HexLit
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwConst && t.Kind <= KwScan
}

// IsType reports whether the token names a type specifier.
func (t Token) IsType() bool {
	switch t.Kind {
	case KwVoid, KwInt, KwChar, KwDouble, KwStruct:
		return true
	default:
		return false
	}
}

// IsRelOp reports whether the token is a relational operator.
func (t Token) IsRelOp() bool {
	switch t.Kind {
	case EqEq, BangEq, Lt, LtEq, Gt, GtEq:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
