package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// goid reads the goroutine number from the "goroutine N [" stack header.
// Parallel file compilations are told apart by it.
func goid() uint64 {
	var buf [64]byte
	hdr := bytes.TrimPrefix(buf[:runtime.Stack(buf[:], false)], []byte("goroutine "))
	if i := bytes.IndexByte(hdr, ' '); i > 0 {
		if id, err := strconv.ParseUint(string(hdr[:i]), 10, 64); err == nil {
			return id
		}
	}
	return 0
}

func accepts(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Span is an open interval in the trace. A span from a tracer that does not
// accept its scope is inert: End and WithExtra do nothing.
type Span struct {
	tracer Tracer
	tmpl   Event // shared fields of the begin and end events
	start  time.Time
}

// Begin emits a span-begin event; parent is 0 for a root span.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !accepts(t, scope) {
		return &Span{}
	}
	s := &Span{
		tracer: t,
		start:  time.Now(),
		tmpl: Event{
			Scope:    scope,
			SpanID:   NextSpanID(),
			ParentID: parent,
			GID:      goid(),
			Name:     name,
		},
	}
	ev := s.tmpl
	ev.Time, ev.Seq, ev.Kind = s.start, NextSeq(), KindSpanBegin
	t.Emit(&ev)
	return s
}

func (s *Span) live() bool { return s != nil && s.tracer != nil }

// End emits the span-end event carrying detail and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	ev := s.tmpl
	ev.Time, ev.Seq, ev.Kind, ev.Detail = time.Now(), NextSeq(), KindSpanEnd, detail
	s.tracer.Emit(&ev)
	return ev.Time.Sub(s.start)
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.tmpl.Extra == nil {
		s.tmpl.Extra = make(map[string]string, 2)
	}
	s.tmpl.Extra[key] = value
	return s
}

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.tmpl.SpanID
}

// Point emits an instant event when the tracer accepts the scope.
func Point(t Tracer, scope Scope, name, detail string) {
	if !accepts(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Seq:    NextSeq(),
		Kind:   KindPoint,
		Scope:  scope,
		GID:    goid(),
		Name:   name,
		Detail: detail,
	})
}
