// Package trace is the event log of the c0 compiler.
//
// The driver and the compiler passes report what they do as events: spans
// around phases (load, lex, analyse, encode) and instant points for
// per-file and per-function facts. Events go to a Tracer.
//
// # Usage
//
//	c0 build --trace=- --trace-level=detail prog.c0
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory, dumped on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: events are kept in a ring and dumped only when a build fails
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything, including per-function events
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "analyse", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace
