package checks

import (
	"strings"

	"analex/internal/diag"
	"analex/internal/source"
)

// Comma looks at the declarator list of lines mentioning "int" (anywhere,
// "printf" included): the text after the last "int" up to the first ';',
// split on ','. A filled slot followed by an empty one means a comma
// without a name after it. One finding per line at most.
type Comma struct{}

func (Comma) Name() string { return "comma" }

func (Comma) Check(_ *source.File, lines []source.Line, r Reporter) {
	for _, ln := range lines {
		at := strings.LastIndex(ln.Text, "int")
		if at < 0 {
			continue
		}
		list := ln.Text[at+len("int"):]
		if semi := strings.IndexByte(list, ';'); semi >= 0 {
			list = list[:semi]
		}
		parts := strings.Split(list, ",")
		for i := 0; i+1 < len(parts); i++ {
			if strings.TrimSpace(parts[i]) != "" && strings.TrimSpace(parts[i+1]) == "" {
				_, sp := trimmed(ln)
				r.Finding(diag.CommaMissing, sp, ln.Num, "missing comma between variables")
				break
			}
		}
	}
}
