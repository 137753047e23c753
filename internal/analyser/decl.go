package analyser

import (
	"fmt"

	"c0/internal/diag"
	"c0/internal/instr"
	"c0/internal/symbols"
	"c0/internal/token"
	"c0/internal/trace"
)

// typeSpecifier ::= 'void' | 'int' | 'char'
func (a *analyser) typeSpecifier() (symbols.Type, token.Token, error) {
	tok, err := a.nextOrEOF()
	if err != nil {
		return symbols.Unit, tok, err
	}
	switch tok.Kind {
	case token.KwVoid:
		return symbols.Void, tok, nil
	case token.KwInt:
		return symbols.Int, tok, nil
	case token.KwChar:
		return symbols.Char, tok, nil
	default:
		return symbols.Unit, tok, unexpected(tok)
	}
}

// valueType is a type specifier that may name a slot.
func (a *analyser) valueType() (symbols.Type, token.Token, error) {
	typ, tok, err := a.typeSpecifier()
	if err != nil {
		return typ, tok, err
	}
	if typ == symbols.Void {
		return typ, tok, errAt(diag.SemaTypeMismatch, tok.Start)
	}
	return typ, tok, nil
}

// variableDeclaration ::= ['const'] type init-declarator {',' init-declarator} ';'
//
// Every declarator leaves one value on the stack, which becomes its slot.
func (a *analyser) variableDeclaration(s *instr.Stream) error {
	isConst := a.accept(token.KwConst)
	typ, _, err := a.valueType()
	if err != nil {
		return err
	}

	for {
		name, err := a.expect(token.Ident)
		if err != nil {
			return err
		}

		var declErr error
		if a.accept(token.Assign) {
			// initialiser first: the new name is not visible inside it
			if err := a.valueInto(s, typ); err != nil {
				return err
			}
			if isConst {
				_, declErr = a.table.DeclareConstant(name.Text, typ)
			} else {
				_, declErr = a.table.DeclareVariable(name.Text, typ, true)
			}
		} else {
			if isConst {
				return errAt(diag.SemaConstWithoutInit, name.Start)
			}
			s.Emit(instr.IPUSH, 0)
			_, declErr = a.table.DeclareVariable(name.Text, typ, false)
		}
		if declErr != nil {
			return at(declErr, name)
		}

		if a.accept(token.Comma) {
			continue
		}
		_, err = a.expect(token.Semicolon)
		return err
	}
}

type param struct {
	name    token.Token
	typ     symbols.Type
	isConst bool
}

// functionDefinition ::= type identifier '(' [param {',' param}] ')' compound
func (a *analyser) functionDefinition() error {
	ret, _, err := a.typeSpecifier()
	if err != nil {
		return err
	}
	name, err := a.expect(token.Ident)
	if err != nil {
		return err
	}
	if _, err := a.expect(token.LParen); err != nil {
		return err
	}
	params, err := a.parameters()
	if err != nil {
		return err
	}
	if name.Text == EntryFunction && len(params) != 0 {
		return errAt(diag.SemaArityMismatch, name.Start)
	}

	types := make([]symbols.Type, len(params))
	for i, p := range params {
		types[i] = p.typ
	}
	nameIndex := a.pool.AddString(name.Text)
	index, err := a.table.DeclareFunction(name.Text, nameIndex, types, ret)
	if err != nil {
		return at(err, name)
	}

	s := instr.NewStream()
	a.code = append(a.code, s)
	a.fn = &funcCtx{index: index, decl: a.table.Function(index), name: name}
	a.table.EnterFunctionScope()
	defer func() {
		a.table.ExitFunctionScope()
		a.fn = nil
	}()

	for _, p := range params {
		var declErr error
		if p.isConst {
			_, declErr = a.table.DeclareConstant(p.name.Text, p.typ)
		} else {
			_, declErr = a.table.DeclareVariable(p.name.Text, p.typ, true)
		}
		if declErr != nil {
			return at(declErr, p.name)
		}
	}

	returns, err := a.compoundStatement(s)
	if err != nil {
		return err
	}
	if ret == symbols.Void {
		s.Emit(instr.RET)
	} else if !returns {
		return errAt(diag.SemaMissingReturn, name.Start)
	}

	trace.Point(a.tracer, trace.ScopeNode, "function", fmt.Sprintf("%s #%d: %d instructions", name.Text, index, s.Len()))
	return nil
}

// parameters parses the list after '(' up to and including ')'.
func (a *analyser) parameters() ([]param, error) {
	var params []param
	if a.accept(token.RParen) {
		return params, nil
	}
	for {
		isConst := a.accept(token.KwConst)
		typ, _, err := a.valueType()
		if err != nil {
			return nil, err
		}
		name, err := a.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		params = append(params, param{name: name, typ: typ, isConst: isConst})

		if a.accept(token.Comma) {
			continue
		}
		if _, err := a.expect(token.RParen); err != nil {
			return nil, err
		}
		return params, nil
	}
}
