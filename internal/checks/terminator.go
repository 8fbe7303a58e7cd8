package checks

import (
	"strings"

	"analex/internal/diag"
	"analex/internal/source"
	"analex/internal/token"
)

// Terminator requires every statement line to end with ';'. Blank lines,
// lines opening a block ("... {"), lines starting or ending with '}' and
// the bare block keywords "programa" and "end" are exempt.
type Terminator struct{}

func (Terminator) Name() string { return "terminator" }

func (Terminator) Check(_ *source.File, lines []source.Line, r Reporter) {
	for _, ln := range lines {
		t, sp := trimmed(ln)
		if exemptFromTerminator(t) || strings.HasSuffix(t, ";") {
			continue
		}
		at := source.Span{File: sp.File, Start: sp.End, End: sp.End}
		r.Finding(diag.TerminatorMissing, sp, ln.Num, "missing ';' at end of line", diag.Fix{
			Title: "insert ';'",
			Edits: []diag.FixEdit{{Span: at, NewText: ";"}},
		})
	}
}

func exemptFromTerminator(t string) bool {
	switch {
	case t == "":
		return true
	case strings.HasSuffix(t, "{"), strings.HasPrefix(t, "}"), strings.HasSuffix(t, "}"):
		return true
	case t == token.KwPrograma, t == token.KwEnd:
		return true
	}
	return false
}
