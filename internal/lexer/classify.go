package lexer

import (
	"fmt"

	"analex/internal/diag"
	"analex/internal/token"
)

// misspelledSum is the one literal misspelling the course flags by name.
const (
	misspelledSum = "sum"
	expectedSum   = "suma"
)

// classify validates the raw match and resolves Identifier vs Variable.
// Invalid names are never registered, so they are reported again on every
// occurrence.
func (lx *Lexer) classify(tok *token.Token) {
	switch {
	case tok.Text == misspelledSum:
		lx.flag(tok, diag.LexInvalidIdent, expectedSum,
			fmt.Sprintf("expected '%s' instead of '%s'", expectedSum, tok.Text))

	case tok.Kind == token.Identifier:
		if lx.opts.Registry.Lookup(tok.Text) {
			tok.Kind = token.Variable
			return
		}
		if !token.IsVocabulary(tok.Text) {
			if s, ok := lx.opts.Suggest.Closest(tok.Text); ok {
				lx.flag(tok, diag.LexInvalidIdent, s,
					fmt.Sprintf("expected '%s' instead of '%s'", s, tok.Text))
				return
			}
		}
		lx.opts.Registry.Register(tok.Text)

	case tok.Kind == token.ReservedWord && !token.IsReserved(tok.Text):
		// недостижимо с текущей таблицей, но таблица может расшириться
		s, _ := lx.opts.Suggest.Closest(tok.Text)
		lx.flag(tok, diag.LexInvalidReserved, s,
			fmt.Sprintf("invalid reserved word '%s', expected '%s'", tok.Text, s))
	}
}

func (lx *Lexer) flag(tok *token.Token, code diag.Code, suggestion, msg string) {
	tok.Problem = msg
	tok.Suggestion = suggestion
	b := diag.ReportError(lx.opts.Reporter, code, tok.Span, tok.Line, msg)
	if suggestion != "" {
		b = b.WithFix(fmt.Sprintf("replace '%s' with '%s'", tok.Text, suggestion), diag.FixEdit{
			Span:    tok.Span,
			NewText: suggestion,
			OldText: tok.Text,
		})
	}
	b.Emit()
}
