package lexer

import (
	"c0/internal/diag"
	"c0/internal/source"
	"c0/internal/token"
)

var punct = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	';': token.Semicolon,
	',': token.Comma,
}

// scanOperator finishes a token that started with a non-alphanumeric
// printable byte. Two-byte operators are decided by one byte of lookahead.
func (lx *Lexer) scanOperator(ch byte, start source.Pos) (token.Token, error) {
	if k, ok := punct[ch]; ok {
		return lx.emit(k, string(ch), 0, start), nil
	}

	var single, double token.Kind
	switch ch {
	case '=':
		single, double = token.Assign, token.EqEq
	case '<':
		single, double = token.Lt, token.LtEq
	case '>':
		single, double = token.Gt, token.GtEq
	case '!':
		single, double = token.Invalid, token.BangEq
	default:
		lx.cursor.Unread()
		return token.Token{}, diag.New(diag.LexInvalidInput, start)
	}

	if lx.follows('=') {
		return lx.emit(double, string(ch)+"=", 0, start), nil
	}
	if single == token.Invalid {
		return token.Token{}, diag.New(diag.LexInvalidInput, start)
	}
	return lx.emit(single, string(ch), 0, start), nil
}

// follows consumes the next byte if it equals b and pushes it back otherwise.
func (lx *Lexer) follows(b byte) bool {
	ch, ok := lx.cursor.Next()
	if ok && ch == b {
		return true
	}
	lx.cursor.Unread()
	return false
}
