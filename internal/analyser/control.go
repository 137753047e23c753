package analyser

import (
	"c0/internal/instr"
	"c0/internal/token"
)

// falseJump maps a relational operator to the jump taken when the
// comparison is false.
var falseJump = map[token.Kind]instr.Op{
	token.Lt:     instr.JGE,
	token.LtEq:   instr.JG,
	token.Gt:     instr.JLE,
	token.GtEq:   instr.JL,
	token.EqEq:   instr.JNE,
	token.BangEq: instr.JE,
}

// condition ::= expression [relop expression]
//
// Emits the comparison and an unpatched jump to the false branch; returns
// the index of that jump.
func (a *analyser) condition(s *instr.Stream) (int, error) {
	left, err := a.expression()
	if err != nil {
		return 0, err
	}
	if err := emitValue(s, left); err != nil {
		return 0, err
	}

	tok, ok := a.peek()
	if !ok || !tok.IsRelOp() {
		// bare value: false when zero
		return s.EmitJump(instr.JE), nil
	}
	a.pos++
	right, err := a.expression()
	if err != nil {
		return 0, err
	}
	if err := emitValue(s, right); err != nil {
		return 0, err
	}
	s.Emit(instr.ICMP)
	return s.EmitJump(falseJump[tok.Kind]), nil
}

// parenCondition ::= '(' condition ')'
func (a *analyser) parenCondition(s *instr.Stream) (int, error) {
	if _, err := a.expect(token.LParen); err != nil {
		return 0, err
	}
	j, err := a.condition(s)
	if err != nil {
		return 0, err
	}
	if _, err := a.expect(token.RParen); err != nil {
		return 0, err
	}
	return j, nil
}

// if-stmt ::= 'if' '(' condition ')' statement ['else' statement]
func (a *analyser) ifStatement(s *instr.Stream) (bool, error) {
	a.pos++ // if
	toElse, err := a.parenCondition(s)
	if err != nil {
		return false, err
	}
	thenReturns, err := a.statement(s)
	if err != nil {
		return false, err
	}

	if !a.accept(token.KwElse) {
		s.PatchHere(toElse)
		return false, nil
	}

	toEnd := s.EmitJump(instr.JMP)
	s.PatchHere(toElse)
	elseReturns, err := a.statement(s)
	if err != nil {
		return false, err
	}
	s.PatchHere(toEnd)
	return thenReturns && elseReturns, nil
}

// loopBody parses the body of a loop with its own break/continue context.
func (a *analyser) loopBody(s *instr.Stream) (*loopCtx, error) {
	loop := &loopCtx{}
	a.loops = append(a.loops, loop)
	defer func() { a.loops = a.loops[:len(a.loops)-1] }()

	if _, err := a.statement(s); err != nil {
		return nil, err
	}
	return loop, nil
}

// closeLoop points every break past the loop and every continue at target.
func closeLoop(s *instr.Stream, loop *loopCtx, continueTarget int32) {
	for _, j := range loop.breaks {
		s.PatchHere(j)
	}
	for _, j := range loop.continues {
		s.Patch(j, continueTarget)
	}
}

// 'while' '(' condition ')' statement
func (a *analyser) whileStatement(s *instr.Stream) error {
	a.pos++ // while
	start := s.Here()
	exit, err := a.parenCondition(s)
	if err != nil {
		return err
	}
	loop, err := a.loopBody(s)
	if err != nil {
		return err
	}
	s.Emit(instr.JMP, start)
	s.PatchHere(exit)
	closeLoop(s, loop, start)
	return nil
}

// 'do' statement 'while' '(' condition ')' ';'
func (a *analyser) doWhileStatement(s *instr.Stream) error {
	a.pos++ // do
	start := s.Here()
	loop, err := a.loopBody(s)
	if err != nil {
		return err
	}
	if _, err := a.expect(token.KwWhile); err != nil {
		return err
	}
	condStart := s.Here()
	exit, err := a.parenCondition(s)
	if err != nil {
		return err
	}
	s.Emit(instr.JMP, start)
	s.PatchHere(exit)
	closeLoop(s, loop, condStart)
	_, err = a.expect(token.Semicolon)
	return err
}

// 'for' '(' [assignment {',' assignment}] ';' [condition] ';'
//
//	[update {',' update}] ')' statement
//
// The update list is parsed before the body but must run after it, so it
// is generated into a detached stream and appended once the body is done.
func (a *analyser) forStatement(s *instr.Stream) error {
	a.pos++ // for
	if _, err := a.expect(token.LParen); err != nil {
		return err
	}

	if !a.peekIs(token.Semicolon) {
		for {
			if err := a.assignment(s); err != nil {
				return err
			}
			if !a.accept(token.Comma) {
				break
			}
		}
	}
	if _, err := a.expect(token.Semicolon); err != nil {
		return err
	}

	start := s.Here()
	exit := -1
	if !a.peekIs(token.Semicolon) {
		j, err := a.condition(s)
		if err != nil {
			return err
		}
		exit = j
	}
	if _, err := a.expect(token.Semicolon); err != nil {
		return err
	}

	update := instr.NewStream()
	if !a.peekIs(token.RParen) {
		for {
			if err := a.assignmentOrCall(update); err != nil {
				return err
			}
			if !a.accept(token.Comma) {
				break
			}
		}
	}
	if _, err := a.expect(token.RParen); err != nil {
		return err
	}

	loop, err := a.loopBody(s)
	if err != nil {
		return err
	}
	updateStart := s.Here()
	s.Append(update)
	s.Emit(instr.JMP, start)
	if exit >= 0 {
		s.PatchHere(exit)
	}
	closeLoop(s, loop, updateStart)
	return nil
}
