package driver

import (
	"c0/internal/observ"
)

// Options control one compilation. The tracer travels in the context.
type Options struct {
	Timer          *observ.Timer // может быть nil
	Cache          *DiskCache    // nil disables the artifact cache
	MaxDiagnostics int
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}
