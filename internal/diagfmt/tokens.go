package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"analex/internal/token"
)

type TokenOutput struct {
	Line       uint32 `json:"line"`
	Lexeme     string `json:"lexeme"`
	Kind       string `json:"kind"`
	Category   string `json:"category"`
	StartByte  uint32 `json:"start_byte"`
	EndByte    uint32 `json:"end_byte"`
	Problem    string `json:"problem,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func tokenOutputs(tokens []token.Token) []TokenOutput {
	out := make([]TokenOutput, len(tokens))
	for i, tok := range tokens {
		out[i] = TokenOutput{
			Line:       tok.Line,
			Lexeme:     tok.Text,
			Kind:       tok.Kind.String(),
			Category:   tok.Category(),
			StartByte:  tok.Span.Start,
			EndByte:    tok.Span.End,
			Problem:    tok.Problem,
			Suggestion: tok.Suggestion,
		}
	}
	return out
}

// FormatTokensPretty выводит токены таблицей: строка, лексема, категория, пометки.
// Ширина колонок считается по видимой ширине, а не по байтам.
func FormatTokensPretty(w io.Writer, tokens []token.Token, useColor bool) error {
	headers := [3]string{"Línea", "Lexema", "Categoría"}
	widths := [3]int{}
	rows := make([][3]string, len(tokens))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for i, tok := range tokens {
		rows[i] = [3]string{fmt.Sprint(tok.Line), tok.Text, tok.Category()}
		for j, cell := range rows[i] {
			widths[j] = max(widths[j], runewidth.StringWidth(cell))
		}
	}

	bad := color.New(color.FgRed)
	hint := color.New(color.FgGreen)
	setColor(bad, useColor)
	setColor(hint, useColor)

	var sb strings.Builder
	writeRow(&sb, headers[:], widths[:])
	sb.WriteString(strings.Repeat("-", widths[0]+widths[1]+widths[2]+6) + "\n")
	for i, tok := range tokens {
		line := rowString(rows[i][:], widths[:])
		if tok.Invalid() {
			line = bad.Sprint(line)
			if tok.Suggestion != "" {
				line += "  " + hint.Sprintf("→ %s", tok.Suggestion)
			}
		}
		sb.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeRow(sb *strings.Builder, cells []string, widths []int) {
	sb.WriteString(strings.TrimRight(rowString(cells, widths), " "))
	sb.WriteString("\n")
}

func rowString(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = runewidth.FillRight(c, widths[i])
	}
	return strings.Join(parts, "   ")
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokenOutputs(tokens))
}
