package cache

import (
	"analex/internal/diag"
	"analex/internal/session"
	"analex/internal/source"
	"analex/internal/token"
)

// Payload is one cached analysis. Spans are stored as offsets; the file ID
// is restored on load.
type Payload struct {
	Schema      uint16         `msgpack:"schema"`
	Path        string         `msgpack:"path"`
	Tokens      []Token        `msgpack:"tokens"`
	Diagnostics []Diagnostic   `msgpack:"diagnostics"`
	Counts      map[string]int `msgpack:"counts"` // by token.Kind.String()
}

type Token struct {
	Kind       uint8  `msgpack:"k"`
	Start      uint32 `msgpack:"s"`
	End        uint32 `msgpack:"e"`
	Line       uint32 `msgpack:"l"`
	Text       string `msgpack:"t"`
	Problem    string `msgpack:"p,omitempty"`
	Suggestion string `msgpack:"g,omitempty"`
}

type Diagnostic struct {
	Code     uint16 `msgpack:"code"`
	Severity uint8  `msgpack:"sev"`
	Message  string `msgpack:"msg"`
	Start    uint32 `msgpack:"start"`
	End      uint32 `msgpack:"end"`
	Line     uint32 `msgpack:"line"`
	Fixes    []Fix  `msgpack:"fixes,omitempty"`
}

type Fix struct {
	Title string `msgpack:"title"`
	Edits []Edit `msgpack:"edits"`
}

type Edit struct {
	Start   uint32 `msgpack:"start"`
	End     uint32 `msgpack:"end"`
	NewText string `msgpack:"new"`
	OldText string `msgpack:"old,omitempty"`
}

// NewPayload flattens an analysis result for storage.
func NewPayload(path string, tokens []token.Token, diags []diag.Diagnostic, counts session.Counts) *Payload {
	p := &Payload{
		Schema:      schemaVersion,
		Path:        path,
		Tokens:      make([]Token, len(tokens)),
		Diagnostics: make([]Diagnostic, len(diags)),
		Counts:      make(map[string]int, len(counts)),
	}
	for i, t := range tokens {
		p.Tokens[i] = Token{
			Kind: uint8(t.Kind), Start: t.Span.Start, End: t.Span.End, Line: t.Line,
			Text: t.Text, Problem: t.Problem, Suggestion: t.Suggestion,
		}
	}
	for i, d := range diags {
		cd := Diagnostic{
			Code: uint16(d.Code), Severity: uint8(d.Severity), Message: d.Message,
			Start: d.Primary.Start, End: d.Primary.End, Line: d.Line,
		}
		for _, fx := range d.Fixes {
			f := Fix{Title: fx.Title, Edits: make([]Edit, len(fx.Edits))}
			for j, e := range fx.Edits {
				f.Edits[j] = Edit{Start: e.Span.Start, End: e.Span.End, NewText: e.NewText, OldText: e.OldText}
			}
			cd.Fixes = append(cd.Fixes, f)
		}
		p.Diagnostics[i] = cd
	}
	for k, n := range counts {
		p.Counts[k.String()] = n
	}
	return p
}

// Restore rebuilds the result with spans pointing into file.
func (p *Payload) Restore(file source.FileID) ([]token.Token, []diag.Diagnostic, session.Counts) {
	span := func(start, end uint32) source.Span {
		return source.Span{File: file, Start: start, End: end}
	}
	tokens := make([]token.Token, len(p.Tokens))
	for i, t := range p.Tokens {
		tokens[i] = token.Token{
			Kind: token.Kind(t.Kind), Span: span(t.Start, t.End), Line: t.Line,
			Text: t.Text, Problem: t.Problem, Suggestion: t.Suggestion,
		}
	}
	diags := make([]diag.Diagnostic, len(p.Diagnostics))
	for i, d := range p.Diagnostics {
		out := diag.New(diag.Severity(d.Severity), diag.Code(d.Code), span(d.Start, d.End), d.Line, d.Message)
		for _, fx := range d.Fixes {
			edits := make([]diag.FixEdit, len(fx.Edits))
			for j, e := range fx.Edits {
				edits[j] = diag.FixEdit{Span: span(e.Start, e.End), NewText: e.NewText, OldText: e.OldText}
			}
			out = out.WithFix(fx.Title, edits...)
		}
		diags[i] = out
	}
	counts := session.NewCounts()
	for name, n := range p.Counts {
		if k, ok := token.ParseKind(name); ok && k.IsCounted() {
			counts[k] = n
		}
	}
	return tokens, diags, counts
}
