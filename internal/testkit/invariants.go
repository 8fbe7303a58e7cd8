package testkit

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"analex/internal/source"
	"analex/internal/token"
)

// CheckTokenInvariants runs a minimal set of invariants on a token stream:
// 1) every span is non-empty, inside the file and reads exactly Token.Text
// 2) spans are strictly increasing and never overlap
// 3) every gap between tokens (and before/after them) is whitespace only
// 4) Token.Line is the line of the span start and tokens never cross a newline
func CheckTokenInvariants(tokens []token.Token, f *source.File) error {
	if f == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("token %d (%q): empty span %v", i, tok.Text, sp)
		}
		if sp.File != f.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, f.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("token %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %v overlaps previous end %d", i, sp, prevEnd)
		}
		if got := f.Text(sp); got != tok.Text {
			return fmt.Errorf("token %d: text %q does not match source %q", i, tok.Text, got)
		}
		if gap := f.Content[prevEnd:sp.Start]; !allSpace(gap) {
			return fmt.Errorf("token %d: non-space gap %q before it", i, gap)
		}
		if line := f.LineOf(sp.Start); line != tok.Line {
			return fmt.Errorf("token %d (%q): line %d, span is on line %d", i, tok.Text, tok.Line, line)
		}
		for _, b := range f.Content[sp.Start:sp.End] {
			if b == '\n' {
				return fmt.Errorf("token %d (%q) crosses a newline", i, tok.Text)
			}
		}
		prevEnd = sp.End
	}
	if tail := f.Content[prevEnd:]; !allSpace(tail) {
		return fmt.Errorf("unscanned tail %q", tail)
	}
	return nil
}

func allSpace(b []byte) bool {
	for len(b) > 0 {
		r, sz := utf8.DecodeRune(b)
		if !unicode.IsSpace(r) {
			return false
		}
		b = b[sz:]
	}
	return true
}
