package diag

import (
	"fmt"

	"analex/internal/source"
)

type FixEdit struct {
	Span    source.Span
	NewText string
	OldText string // guard: the edit applies only if the span still reads OldText
}

type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Line     uint32
	Fixes    []Fix
}

// String renders the classic line-prefixed form: "Line 3: missing ';' at end of line".
func (d Diagnostic) String() string {
	return fmt.Sprintf("Line %d: %s", d.Line, d.Message)
}

func New(sev Severity, code Code, primary source.Span, line uint32, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Line:     line,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, line uint32, msg string) Diagnostic {
	return New(SevError, code, primary, line, msg)
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}
