// Package trace is the structured log channel of the fern tool.
//
// Events are emitted by the driver around its phases (load, lex+parse, render)
// and, for `fern check`, around every file. Nothing is written unless a tracer is
// installed in the context:
//
//	fern parse --trace=- --trace-level=detail main.fern
//
// # Tracers
//
//   - Nop: the default, drops everything
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: failures only
//   - LevelPhase: driver and phase boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything, token events included
//
// # Spans
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Begin(ctx, trace.ScopePhase, "lex+parse")
//	defer span.End("")
package trace
