package checks

import (
	"regexp"

	"analex/internal/diag"
	"analex/internal/source"
)

var bareCall = regexp.MustCompile(`^\([a-zA-Z0-9_]*\)` + ws + `*;$`)

// Call catches a parenthesised argument with no function in front of it,
// e.g. "(x);". A lone string such as `("hola");` does not match.
type Call struct{}

func (Call) Name() string { return "call" }

func (Call) Check(_ *source.File, lines []source.Line, r Reporter) {
	for _, ln := range lines {
		t, sp := trimmed(ln)
		if bareCall.MatchString(t) {
			r.Finding(diag.CallMalformed, sp, ln.Num, "malformed function call or string outside a function")
		}
	}
}
