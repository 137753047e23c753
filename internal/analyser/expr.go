package analyser

import (
	"c0/internal/diag"
	"c0/internal/instr"
	"c0/internal/source"
	"c0/internal/symbols"
	"c0/internal/token"
)

// Expr is a parsed expression. The set of implementations is closed.
type Expr interface {
	// emit appends the expression's code to s and returns its type.
	emit(s *instr.Stream) (symbols.Type, error)
	Pos() source.Pos
}

type (
	Literal struct {
		Tok   token.Token
		Index int32 // constant pool index
	}
	VarRef struct {
		Tok token.Token
		Sym symbols.Symbol
	}
	Call struct {
		Tok   token.Token
		Index int // function table index
		Fn    symbols.Function
		Args  []Expr
	}
	Unary struct {
		Op token.Token // '+' or '-'
		X  Expr
	}
	Binary struct {
		Op   token.Token
		L, R Expr
	}
)

func (e *Literal) Pos() source.Pos { return e.Tok.Start }
func (e *VarRef) Pos() source.Pos  { return e.Tok.Start }
func (e *Call) Pos() source.Pos    { return e.Tok.Start }
func (e *Unary) Pos() source.Pos   { return e.Op.Start }
func (e *Binary) Pos() source.Pos  { return e.L.Pos() }

func (e *Literal) emit(s *instr.Stream) (symbols.Type, error) {
	s.Emit(instr.LOADC, e.Index)
	return symbols.Int, nil
}

func (e *VarRef) emit(s *instr.Stream) (symbols.Type, error) {
	s.Emit(instr.LOADA, e.Sym.Level(), e.Sym.Index)
	s.Emit(instr.ILOAD)
	return e.Sym.Type, nil
}

func (e *Call) emit(s *instr.Stream) (symbols.Type, error) {
	for _, arg := range e.Args {
		if err := emitValue(s, arg); err != nil {
			return symbols.Unit, err
		}
	}
	s.Emit(instr.CALL, instr.MustOperand(e.Index))
	return e.Fn.Return, nil
}

func (e *Unary) emit(s *instr.Stream) (symbols.Type, error) {
	if err := emitValue(s, e.X); err != nil {
		return symbols.Unit, err
	}
	if e.Op.Kind == token.Minus {
		s.Emit(instr.INEG)
	}
	return symbols.Int, nil
}

var binaryOps = map[token.Kind]instr.Op{
	token.Plus:  instr.IADD,
	token.Minus: instr.ISUB,
	token.Star:  instr.IMUL,
	token.Slash: instr.IDIV,
}

func (e *Binary) emit(s *instr.Stream) (symbols.Type, error) {
	if err := emitValue(s, e.L); err != nil {
		return symbols.Unit, err
	}
	if err := emitValue(s, e.R); err != nil {
		return symbols.Unit, err
	}
	s.Emit(binaryOps[e.Op.Kind])
	return symbols.Int, nil
}

// emitValue emits e and rejects it if it produces no value.
func emitValue(s *instr.Stream, e Expr) error {
	typ, err := e.emit(s)
	if err != nil {
		return err
	}
	if !typ.IsValue() {
		return diag.New(diag.SemaTypeMismatch, e.Pos())
	}
	return nil
}

// valueInto parses an expression, emits it and checks it can be stored as dst.
func (a *analyser) valueInto(s *instr.Stream, dst symbols.Type) error {
	e, err := a.expression()
	if err != nil {
		return err
	}
	typ, err := e.emit(s)
	if err != nil {
		return err
	}
	if !typ.AssignableTo(dst) {
		return diag.New(diag.SemaTypeMismatch, e.Pos())
	}
	return nil
}

// expression ::= term {('+'|'-') term}
func (a *analyser) expression() (Expr, error) {
	left, err := a.term()
	if err != nil {
		return nil, err
	}
	for a.peekIs(token.Plus) || a.peekIs(token.Minus) {
		op, _ := a.next()
		right, err := a.term()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
	return left, nil
}

// term ::= factor {('*'|'/') factor}
func (a *analyser) term() (Expr, error) {
	left, err := a.factor()
	if err != nil {
		return nil, err
	}
	for a.peekIs(token.Star) || a.peekIs(token.Slash) {
		op, _ := a.next()
		right, err := a.factor()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
	return left, nil
}

// factor ::= [('+'|'-')] primary
func (a *analyser) factor() (Expr, error) {
	if a.peekIs(token.Plus) || a.peekIs(token.Minus) {
		op, _ := a.next()
		x, err := a.primary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, X: x}, nil
	}
	return a.primary()
}

// primary ::= '(' expression ')' | identifier | integer-literal | call
func (a *analyser) primary() (Expr, error) {
	tok, err := a.nextOrEOF()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Kind == token.LParen:
		e, err := a.expression()
		if err != nil {
			return nil, err
		}
		if _, err := a.expect(token.RParen); err != nil {
			return nil, err
		}
		return e, nil

	case tok.IsLiteral():
		return &Literal{Tok: tok, Index: a.pool.AddInt(tok.Value)}, nil

	case tok.Kind == token.Ident:
		if a.peekIs(token.LParen) {
			return a.call(tok)
		}
		sym, err := a.table.Resolve(tok.Text)
		if err != nil {
			return nil, at(err, tok)
		}
		if !sym.IsInitialized() {
			return nil, diag.New(diag.SemaUninitializedVariable, tok.Start)
		}
		return &VarRef{Tok: tok, Sym: sym}, nil
	}
	return nil, unexpected(tok)
}

// call ::= identifier '(' [expression {',' expression}] ')'
// The identifier has already been consumed.
func (a *analyser) call(name token.Token) (*Call, error) {
	index, fn, err := a.table.ResolveFunction(name.Text)
	if err != nil {
		return nil, at(err, name)
	}
	if _, err := a.expect(token.LParen); err != nil {
		return nil, err
	}

	c := &Call{Tok: name, Index: index, Fn: fn}
	if !a.accept(token.RParen) {
		for {
			arg, err := a.expression()
			if err != nil {
				return nil, err
			}
			c.Args = append(c.Args, arg)
			if a.accept(token.Comma) {
				continue
			}
			if _, err := a.expect(token.RParen); err != nil {
				return nil, err
			}
			break
		}
	}
	if len(c.Args) != len(fn.Params) {
		return nil, diag.New(diag.SemaArityMismatch, name.Start)
	}
	return c, nil
}
