package lexer

import (
	"fmt"
	"unicode"

	"analex/internal/diag"
	"analex/internal/source"
	"analex/internal/suggest"
	"analex/internal/token"
)

type Lexer struct {
	file   *source.File
	lines  []source.Line
	line   int // index into lines
	cursor Cursor
	opts   Options
}

func New(file *source.File, opts Options) *Lexer {
	if opts.Registry == nil {
		opts.Registry = localRegistry{}
	}
	if opts.Suggest == nil {
		opts.Suggest = suggest.New(suggest.DefaultThreshold)
	}
	lx := &Lexer{
		file:  file,
		lines: file.Lines(),
		opts:  opts,
	}
	if len(lx.lines) > 0 {
		lx.cursor = NewCursor(file, lx.lines[0].Span)
	}
	return lx
}

// Next returns the next token; ok is false once every line is exhausted.
// Each call consumes at least one character, so scanning is linear in the
// input length.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	for {
		if lx.line >= len(lx.lines) {
			return token.Token{}, false
		}
		lx.skipSpace()
		if !lx.cursor.EOF() {
			break
		}
		lx.line++
		if lx.line < len(lx.lines) {
			lx.cursor = NewCursor(lx.file, lx.lines[lx.line].Span)
		}
	}

	lineNum := lx.lines[lx.line].Num
	start := lx.cursor.Mark()
	m, matched := MatchAt(&lx.cursor)
	if !matched {
		// один символ: гарантия продвижения
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		text := lx.file.Text(sp)
		diag.ReportError(lx.opts.Reporter, diag.LexInvalidToken, sp, lineNum,
			fmt.Sprintf("invalid token '%s'", text)).Emit()
		return token.Token{Kind: token.Unknown, Span: sp, Line: lineNum, Text: text}, true
	}

	lx.cursor.Advance(m.Len)
	sp := lx.cursor.SpanFrom(start)
	tok = token.Token{Kind: m.Kind, Span: sp, Line: lineNum, Text: lx.file.Text(sp)}
	lx.classify(&tok)
	lx.opts.Registry.Count(tok.Kind)
	return tok, true
}

// All drains the lexer.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, len(lx.file.Content)/3+1)
	for {
		tok, ok := lx.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

func (lx *Lexer) skipSpace() {
	for {
		r, sz := lx.cursor.Peek()
		if sz == 0 || !unicode.IsSpace(r) {
			return
		}
		lx.cursor.Bump()
	}
}
