// Package diag defines the diagnostic model shared by the lexer and the
// structural checkers.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text, shown after the "Line N:" prefix.
//   - Primary span – where the problem is; for line heuristics this is the whole line.
//   - Line – 1-based line of Primary, resolved by the producer.
//   - Fixes – optional text edits (the lexer's spelling suggestions).
//
// # Ordering
//
// A Bag preserves insertion order. Lexical diagnostics are emitted while
// scanning, structural diagnostics afterwards, one checker at a time; the
// order is part of the result and is never re-sorted by this package.
//
// # Scope
//
// Package diag does not format or print. Rendering lives in internal/diagfmt,
// applying fixes lives in internal/fix.
package diag
