package checks

import (
	"fmt"
	"regexp"
	"strings"

	"analex/internal/diag"
	"analex/internal/source"
)

// ws is \s with the Unicode spaces the RE2 class leaves out.
const ws = `[\s\v\x{85}\p{Z}]`

var (
	declPrefix = regexp.MustCompile(`^int` + ws + `+[a-zA-Z_][a-zA-Z0-9_]*(` + ws + `*,` + ws + `*[a-zA-Z_][a-zA-Z0-9_]*)*` + ws + `*;`)
	declName   = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// Declaration validates lines starting with "int". The line must open with
// a well-formed declaration up to its ';'. When it does, every
// comma-separated piece of the rest of the line must be a plain name, so
// "int a, b; c d" is still caught.
type Declaration struct{}

func (Declaration) Name() string { return "declaration" }

func (Declaration) Check(_ *source.File, lines []source.Line, r Reporter) {
	for _, ln := range lines {
		t, sp := trimmed(ln)
		if !strings.HasPrefix(t, "int") {
			continue
		}
		if !declPrefix.MatchString(t) {
			r.Finding(diag.DeclarationMalformed, sp, ln.Num, "malformed variable declaration or missing ';'")
			continue
		}
		rest := strings.TrimRight(strings.TrimSpace(t[len("int"):]), ";")
		for _, name := range strings.Split(rest, ",") {
			name = strings.TrimSpace(name)
			if declName.MatchString(name) {
				continue
			}
			r.Finding(diag.DeclarationBadName, sp, ln.Num,
				fmt.Sprintf("invalid variable '%s' in declaration or missing comma", name))
		}
	}
}
