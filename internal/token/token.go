package token

import (
	"analex/internal/source"
)

// Token represents a single classified lexeme.
type Token struct {
	Kind Kind
	Span source.Span
	Line uint32
	Text string
	// Problem holds the lexical complaint about this token ("" when valid).
	Problem string
	// Suggestion is the closest vocabulary entry when Problem is set.
	Suggestion string
}

// Invalid reports whether the lexer attached a problem to the token.
func (t Token) Invalid() bool { return t.Problem != "" }

// IsName reports whether the token is an identifier or a variable.
func (t Token) IsName() bool { return t.Kind == Identifier || t.Kind == Variable }

// Category returns the display label, marking invalid names the way the
// classroom tool always did.
func (t Token) Category() string {
	if t.Invalid() {
		switch t.Kind {
		case ReservedWord:
			return "Palabra reservada inválida"
		case Identifier, Variable:
			return "Identificador inválido"
		}
	}
	return t.Kind.Label()
}
