package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"analex/internal/session"
	"analex/internal/token"
)

// CountOutput is one row of the category table.
type CountOutput struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

func countOutputs(c session.Counts) []CountOutput {
	out := make([]CountOutput, len(token.Counted))
	for i, k := range token.Counted {
		out[i] = CountOutput{Category: k.Label(), Count: c[k]}
	}
	return out
}

// FormatCounts prints the per-category totals in fixed category order,
// then the overall total.
func FormatCounts(w io.Writer, c session.Counts, useColor bool) error {
	rows := countOutputs(c)
	width := runewidth.StringWidth("Total")
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r.Category))
	}
	bold := color.New(color.Bold)
	setColor(bold, useColor)

	var sb strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&sb, "%s  %5d\n", runewidth.FillRight(r.Category, width), r.Count)
	}
	fmt.Fprintf(&sb, "%s  %5d\n", bold.Sprint(runewidth.FillRight("Total", width)), c.Total())
	_, err := io.WriteString(w, sb.String())
	return err
}
