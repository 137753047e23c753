package diag

import (
	"errors"

	"c0/internal/source"
)

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	File     source.FileID
	Pos      source.Pos
	HasPos   bool
}

// FromError turns a CompilationError raised while processing file into a
// Diagnostic. Non-diag errors become IO stream errors.
func FromError(file source.FileID, err error) Diagnostic {
	code := CodeOf(err)
	d := Diagnostic{
		Severity: SevError,
		Code:     code,
		Message:  code.Title(),
		File:     file,
	}
	if code == UnknownCode {
		d.Code = IOStreamError
		d.Message = err.Error()
	}
	var e *Error
	if errors.As(err, &e) && e.HasPos {
		d.Pos = e.Pos
		d.HasPos = true
	}
	return d
}
