// Package trace is the structured event log of analex.
//
// Every interesting step of an analysis (the whole command, each pass over a
// file, each file of a directory run) is recorded as a pair of begin/end
// events. Tracing is off unless requested:
//
//	analex diag --trace=- --trace-level=phase prog.txt
//	analex diag --trace=out.ndjson --trace-level=detail ./samples
//
// Levels:
//
//   - LevelOff: nothing
//   - LevelError: failures only
//   - LevelPhase: command and pass boundaries
//   - LevelDetail: plus per-file events of directory runs
//   - LevelDebug: plus per-line events
//
// The tracer travels with the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", parentID)
//	defer span.End("")
package trace
