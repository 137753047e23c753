package analyser

import (
	"c0/internal/diag"
	"c0/internal/instr"
	"c0/internal/symbols"
	"c0/internal/token"
)

// Statement parsers return whether the statement returns on every path:
// a return statement, a block containing one, or an if whose both branches
// return. Loops never count.

// compoundStatement ::= '{' {variable-declaration} {statement} '}'
func (a *analyser) compoundStatement(s *instr.Stream) (bool, error) {
	if _, err := a.expect(token.LBrace); err != nil {
		return false, err
	}
	for {
		tok, ok := a.peek()
		if !ok || (tok.Kind != token.KwConst && !tok.IsType()) {
			break
		}
		if err := a.variableDeclaration(s); err != nil {
			return false, err
		}
	}
	return a.statementsUntilBrace(s)
}

// statementsUntilBrace parses {statement} '}'.
func (a *analyser) statementsUntilBrace(s *instr.Stream) (bool, error) {
	returns := false
	for {
		tok, err := a.peekOrEOF()
		if err != nil {
			return false, err
		}
		if tok.Kind == token.RBrace {
			a.pos++
			return returns, nil
		}
		r, err := a.statement(s)
		if err != nil {
			return false, err
		}
		returns = returns || r
	}
}

func (a *analyser) statement(s *instr.Stream) (bool, error) {
	tok, err := a.peekOrEOF()
	if err != nil {
		return false, err
	}

	switch tok.Kind {
	case token.LBrace:
		a.pos++
		return a.statementsUntilBrace(s)
	case token.KwIf:
		return a.ifStatement(s)
	case token.KwWhile:
		return false, a.whileStatement(s)
	case token.KwDo:
		return false, a.doWhileStatement(s)
	case token.KwFor:
		return false, a.forStatement(s)
	case token.KwBreak, token.KwContinue:
		return false, a.jumpStatement(s)
	case token.KwReturn:
		return true, a.returnStatement(s)
	case token.KwPrint:
		return false, a.printStatement(s)
	case token.KwScan:
		return false, a.scanStatement(s)
	case token.Semicolon:
		a.pos++
		return false, nil
	case token.Ident:
		if err := a.assignmentOrCall(s); err != nil {
			return false, err
		}
		_, err := a.expect(token.Semicolon)
		return false, err
	}
	return false, unexpected(tok)
}

// assignmentOrCall decides by the token after the identifier.
func (a *analyser) assignmentOrCall(s *instr.Stream) error {
	first, err := a.peekOrEOF()
	if err != nil {
		return err
	}
	if first.Kind != token.Ident {
		return unexpected(first)
	}
	second, ok := a.peekAt(1)
	if !ok {
		a.pos++
		return diag.NewNoPos(diag.SynSyntaxError)
	}
	switch second.Kind {
	case token.Assign:
		return a.assignment(s)
	case token.LParen:
		return a.callStatement(s)
	}
	return unexpected(second)
}

// assignment ::= identifier '=' expression
func (a *analyser) assignment(s *instr.Stream) error {
	name, err := a.expect(token.Ident)
	if err != nil {
		return err
	}
	if _, err := a.expect(token.Assign); err != nil {
		return err
	}
	sym, err := a.table.Resolve(name.Text)
	if err != nil {
		return at(err, name)
	}
	if sym.IsConst() {
		return diag.New(diag.SemaConstAssignment, name.Start)
	}

	s.Emit(instr.LOADA, sym.Level(), sym.Index)
	if err := a.valueInto(s, sym.Type); err != nil {
		return err
	}
	s.Emit(instr.ISTORE)
	return at(a.table.MarkInitialized(name.Text), name)
}

// callStatement evaluates a call for its effect and drops the result.
func (a *analyser) callStatement(s *instr.Stream) error {
	name, err := a.expect(token.Ident)
	if err != nil {
		return err
	}
	c, err := a.call(name)
	if err != nil {
		return err
	}
	typ, err := c.emit(s)
	if err != nil {
		return err
	}
	if typ != symbols.Void {
		s.Emit(instr.POP)
	}
	return nil
}

// print-stmt ::= 'print' '(' [expression {',' expression}] ')' ';'
func (a *analyser) printStatement(s *instr.Stream) error {
	a.pos++ // print
	if _, err := a.expect(token.LParen); err != nil {
		return err
	}
	if !a.accept(token.RParen) {
		for first := true; ; first = false {
			if !first {
				s.Emit(instr.IPUSH, ' ')
				s.Emit(instr.CPRINT)
			}
			e, err := a.expression()
			if err != nil {
				return err
			}
			typ, err := e.emit(s)
			if err != nil {
				return err
			}
			switch typ {
			case symbols.Char:
				s.Emit(instr.CPRINT)
			case symbols.Int:
				s.Emit(instr.IPRINT)
			default:
				return diag.New(diag.SemaTypeMismatch, e.Pos())
			}

			if a.accept(token.Comma) {
				continue
			}
			if _, err := a.expect(token.RParen); err != nil {
				return err
			}
			break
		}
	}
	s.Emit(instr.PRINTL)
	_, err := a.expect(token.Semicolon)
	return err
}

// scan-stmt ::= 'scan' '(' identifier ')' ';'
func (a *analyser) scanStatement(s *instr.Stream) error {
	a.pos++ // scan
	if _, err := a.expect(token.LParen); err != nil {
		return err
	}
	name, err := a.expect(token.Ident)
	if err != nil {
		return err
	}
	sym, err := a.table.Resolve(name.Text)
	if err != nil {
		return at(err, name)
	}
	if sym.IsConst() {
		return diag.New(diag.SemaConstAssignment, name.Start)
	}
	s.Emit(instr.LOADA, sym.Level(), sym.Index)
	s.Emit(instr.ISCAN)
	s.Emit(instr.ISTORE)
	if err := a.table.MarkInitialized(name.Text); err != nil {
		return at(err, name)
	}

	if _, err := a.expect(token.RParen); err != nil {
		return err
	}
	_, err = a.expect(token.Semicolon)
	return err
}

// jump-stmt ::= 'break' ';' | 'continue' ';'
func (a *analyser) jumpStatement(s *instr.Stream) error {
	tok, _ := a.next()
	if len(a.loops) == 0 {
		return diag.New(diag.SemaJumpOutsideLoop, tok.Start)
	}
	loop := a.loops[len(a.loops)-1]
	j := s.EmitJump(instr.JMP)
	if tok.Kind == token.KwBreak {
		loop.breaks = append(loop.breaks, j)
	} else {
		loop.continues = append(loop.continues, j)
	}
	_, err := a.expect(token.Semicolon)
	return err
}

// 'return' [expression] ';'
func (a *analyser) returnStatement(s *instr.Stream) error {
	tok, _ := a.next()
	want := a.fn.decl.Return

	if a.accept(token.Semicolon) {
		if want != symbols.Void {
			return diag.New(diag.SemaTypeMismatch, tok.Start)
		}
		s.Emit(instr.RET)
		return nil
	}

	if want == symbols.Void {
		return diag.New(diag.SemaTypeMismatch, tok.Start)
	}
	if err := a.valueInto(s, want); err != nil {
		return err
	}
	s.Emit(instr.IRET)
	_, err := a.expect(token.Semicolon)
	return err
}
