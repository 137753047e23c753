package diag

import (
	"errors"
	"fmt"

	"c0/internal/source"
)

// Error is a CompilationError: a code and, unless the failure happened at
// end of input, the position it refers to.
type Error struct {
	Code   Code
	Pos    source.Pos
	HasPos bool
}

// Sentinels for errors.Is; they match any Error with the same code.
var (
	ErrStream                = &Error{Code: IOStreamError}
	ErrEOF                   = &Error{Code: LexEndOfFile}
	ErrInvalidInput          = &Error{Code: LexInvalidInput}
	ErrInvalidIdentifier     = &Error{Code: LexInvalidIdentifier}
	ErrValueOverflow         = &Error{Code: LexValueOverflow}
	ErrSyntax                = &Error{Code: SynSyntaxError}
	ErrUnsupported           = &Error{Code: SynUnsupported}
	ErrRedeclaration         = &Error{Code: SemaRedeclaration}
	ErrUndeclaredSymbol      = &Error{Code: SemaUndeclaredSymbol}
	ErrUndeclaredFunction    = &Error{Code: SemaUndeclaredFunction}
	ErrTypeMismatch          = &Error{Code: SemaTypeMismatch}
	ErrConstAssignment       = &Error{Code: SemaConstAssignment}
	ErrArityMismatch         = &Error{Code: SemaArityMismatch}
	ErrMissingReturn         = &Error{Code: SemaMissingReturn}
	ErrConstWithoutInit      = &Error{Code: SemaConstWithoutInit}
	ErrUninitializedVariable = &Error{Code: SemaUninitializedVariable}
	ErrJumpOutsideLoop       = &Error{Code: SemaJumpOutsideLoop}
	ErrMissingMain           = &Error{Code: SemaMissingMain}
)

// New returns an Error at pos.
func New(code Code, pos source.Pos) *Error {
	return &Error{Code: code, Pos: pos, HasPos: true}
}

// NewNoPos returns an Error that has no meaningful position (end of input).
func NewNoPos(code Code) *Error {
	return &Error{Code: code}
}

// At returns a copy of e positioned at pos.
func (e *Error) At(pos source.Pos) *Error {
	return New(e.Code, pos)
}

func (e *Error) Error() string {
	if !e.HasPos {
		return fmt.Sprintf("at end of input: %s", e.Code)
	}
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line+1, e.Pos.Col+1, e.Code)
}

// Is matches by code so positioned errors compare equal to the sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// CodeOf extracts the Code from err, or UnknownCode if err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return UnknownCode
}
