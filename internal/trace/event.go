package trace

import "time"

// Kind tells span boundaries from instant events.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	}
	return "unknown"
}

// Scope is the granularity of an event. Smaller values are coarser, so a
// Level can filter with a single comparison.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one CLI command, parallel compile
	ScopePass                    // load, lex, analyse, encode
	ScopeModule                  // one source file, cache hits and misses
	ScopeNode                    // one function inside the analyser
)

var scopeNames = [...]string{"unknown", "driver", "pass", "module", "node"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one record in the trace.
type Event struct {
	Time     time.Time
	Seq      uint64 // global, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	GID      uint64 // goroutine that produced the event
	Name     string // "lex", "analyse", "file:prog.c0", ...
	Detail   string
	Extra    map[string]string
}
