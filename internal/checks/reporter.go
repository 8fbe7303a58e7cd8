package checks

import (
	"analex/internal/diag"
	"analex/internal/source"
)

// Reporter receives checker findings. A diag.Reporter is wrapped with
// NewReporter; every finding is an error diagnostic.
type Reporter interface {
	Finding(code diag.Code, sp source.Span, line uint32, msg string, fixes ...diag.Fix)
}

type reporter struct{ r diag.Reporter }

// NewReporter adapts r; a nil r drops findings.
func NewReporter(r diag.Reporter) Reporter {
	return reporter{r: r}
}

func (a reporter) Finding(code diag.Code, sp source.Span, line uint32, msg string, fixes ...diag.Fix) {
	b := diag.ReportError(a.r, code, sp, line, msg)
	for _, fx := range fixes {
		b = b.WithFix(fx.Title, fx.Edits...)
	}
	b.Emit()
}
