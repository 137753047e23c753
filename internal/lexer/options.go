package lexer

import (
	"c0/internal/trace"
)

type Options struct {
	Tracer trace.Tracer // может быть nil
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}
