package checks

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"analex/internal/diag"
	"analex/internal/source"
	"analex/internal/token"
)

// Operator flags two names separated only by whitespace ("a b") on lines
// that mention no reserved word and hold no string literal. Only the
// first such pair on a line is reported.
type Operator struct{}

func (Operator) Name() string { return "operator" }

func (Operator) Check(_ *source.File, lines []source.Line, r Reporter) {
	for _, ln := range lines {
		if strings.Contains(ln.Text, `"`) || mentionsReserved(ln.Text) {
			continue
		}
		from, to, ok := adjacentNames(ln.Text)
		if !ok {
			continue
		}
		r.Finding(diag.OperatorMissing, sub(ln, from, to), ln.Num,
			fmt.Sprintf("missing operator between '%s'", ln.Text[from:to]))
	}
}

// mentionsReserved is a plain substring test: "integer" and "sprint" count.
func mentionsReserved(s string) bool {
	for _, w := range token.ReservedWords {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// adjacentNames finds the leftmost "name<space>name" where both names are
// ASCII identifiers standing on word boundaries.
func adjacentNames(s string) (from, to int, ok bool) {
	for i := 0; i < len(s); {
		if isIdentStart(s[i]) && boundaryBefore(s, i) {
			if end, found := pairFrom(s, i); found {
				return i, end, true
			}
		}
		_, sz := utf8.DecodeRuneInString(s[i:])
		i += sz
	}
	return 0, 0, false
}

func pairFrom(s string, i int) (int, bool) {
	j := i + 1
	for j < len(s) && isIdentContinue(s[j]) {
		j++
	}
	k := j
	for k < len(s) {
		r, sz := utf8.DecodeRuneInString(s[k:])
		if !unicode.IsSpace(r) {
			break
		}
		k += sz
	}
	if k == j || k >= len(s) || !isIdentStart(s[k]) {
		return 0, false
	}
	m := k + 1
	for m < len(s) && isIdentContinue(s[m]) {
		m++
	}
	if !boundaryAt(s, m) {
		return 0, false
	}
	return m, true
}
