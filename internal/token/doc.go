// Package token defines lexical categories of the teaching language.
// Invariants:
//   - Token.Text is exactly the source slice covered by Token.Span.
//   - Tokens never span lines; Token.Line is the 1-based line of Span.Start.
//   - Every token has exactly one Kind. Unknown is never counted.
//   - Reserved words are case-sensitive: only the lowercase spellings are keywords.
package token
