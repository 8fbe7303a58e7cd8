// Package checks holds the line-oriented structural heuristics that run
// after tokenization. Each checker looks at the raw text on its own, knows
// nothing about the others and never fails; false positives and duplicated
// findings are part of the deal.
package checks

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"analex/internal/source"
)

// Checker is one independent heuristic pass.
type Checker interface {
	Name() string
	Check(f *source.File, lines []source.Line, r Reporter)
}

// All returns the checkers in reporting order.
func All() []Checker {
	return []Checker{
		Balance{},
		Comma{},
		Operator{},
		Terminator{},
		Declaration{},
		Call{},
	}
}

// Names lists the checker names in reporting order.
func Names() []string {
	all := All()
	out := make([]string, len(all))
	for i, c := range all {
		out[i] = c.Name()
	}
	return out
}

// trimmed returns the line without surrounding whitespace and its span.
func trimmed(ln source.Line) (string, source.Span) {
	left := len(ln.Text) - len(strings.TrimLeftFunc(ln.Text, unicode.IsSpace))
	t := strings.TrimSpace(ln.Text)
	return t, sub(ln, left, left+len(t))
}

// sub is the span of ln.Text[from:to].
func sub(ln source.Line, from, to int) source.Span {
	f, err := safecast.Conv[uint32](from)
	if err != nil {
		panic(err)
	}
	t, err := safecast.Conv[uint32](to)
	if err != nil {
		panic(err)
	}
	return source.Span{File: ln.Span.File, Start: ln.Span.Start + f, End: ln.Span.Start + t}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// boundaryBefore reports a word boundary between s[:i] and s[i:], given
// that s[i:] starts with a word character.
func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

// boundaryAt reports a word boundary at i, given that s[:i] ends with a
// word character.
func boundaryAt(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}
