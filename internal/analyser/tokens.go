package analyser

import (
	"c0/internal/diag"
	"c0/internal/token"
)

func (a *analyser) done() bool {
	return a.pos >= len(a.tokens)
}

func (a *analyser) peek() (token.Token, bool) {
	return a.peekAt(0)
}

func (a *analyser) peekAt(n int) (token.Token, bool) {
	if a.pos+n >= len(a.tokens) {
		return token.Token{}, false
	}
	return a.tokens[a.pos+n], true
}

// peekIs reports whether the next token has the given kind.
func (a *analyser) peekIs(kind token.Kind) bool {
	tok, ok := a.peek()
	return ok && tok.Kind == kind
}

func (a *analyser) next() (token.Token, bool) {
	tok, ok := a.peek()
	if ok {
		a.pos++
	}
	return tok, ok
}

// accept consumes the next token if it has the given kind.
func (a *analyser) accept(kind token.Kind) bool {
	if a.peekIs(kind) {
		a.pos++
		return true
	}
	return false
}

func (a *analyser) expect(kind token.Kind) (token.Token, error) {
	tok, ok := a.next()
	if !ok {
		return tok, diag.NewNoPos(diag.SynSyntaxError)
	}
	if tok.Kind != kind {
		return tok, unexpected(tok)
	}
	return tok, nil
}

// unexpected reports tok as out of place. Keywords for constructs the
// language reserves but does not implement get their own code.
func unexpected(tok token.Token) error {
	switch tok.Kind {
	case token.KwDouble, token.KwStruct, token.KwSwitch, token.KwCase, token.KwDefault:
		return diag.New(diag.SynUnsupported, tok.Start)
	}
	return diag.New(diag.SynSyntaxError, tok.Start)
}

// nextOrEOF returns the next token or the end-of-input syntax error.
func (a *analyser) nextOrEOF() (token.Token, error) {
	tok, ok := a.next()
	if !ok {
		return tok, diag.NewNoPos(diag.SynSyntaxError)
	}
	return tok, nil
}

// peekOrEOF returns the next token without consuming it, or the
// end-of-input syntax error.
func (a *analyser) peekOrEOF() (token.Token, error) {
	tok, ok := a.peek()
	if !ok {
		return tok, diag.NewNoPos(diag.SynSyntaxError)
	}
	return tok, nil
}
