package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"analex/internal/diag"
	"analex/internal/source"
)

// HeuristicNote closes the report whenever a structural check fired.
const HeuristicNote = "note: structural checks are line-based heuristics; they can miss errors and report false positives"

type palette struct {
	sev   map[diag.Severity]*color.Color
	code  *color.Color
	gut   *color.Color
	caret *color.Color
	help  *color.Color
	note  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		code:  color.New(color.Bold),
		gut:   color.New(color.FgBlue),
		caret: color.New(color.FgRed, color.Bold),
		help:  color.New(color.FgGreen),
		note:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.code, p.gut, p.caret, p.help, p.note} {
		setColor(c, enabled)
	}
	for _, c := range p.sev {
		setColor(c, enabled)
	}
	return p
}

func setColor(c *color.Color, enabled bool) {
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

// Pretty печатает диагностики в человекочитаемом виде:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   2 | int a b
//	     |     ^~~
//	help: replace 'prinft' with 'printf'
//
// Диагностики идут в порядке получения.
func Pretty(w io.Writer, diagnostics []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	structural := false
	for _, d := range diagnostics {
		structural = structural || d.Code.IsStructural()
		var f *source.File
		if d.Line > 0 {
			f = fs.Get(d.Primary.File)
		}
		if f == nil {
			fmt.Fprintf(w, "%s %s: %s\n", p.sev[d.Severity].Sprint(d.Severity), p.code.Sprint(d.Code.ID()), d.Message)
			continue
		}
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(f, fs, opts.PathMode), start.Line, start.Col,
			p.sev[d.Severity].Sprint(d.Severity), p.code.Sprint(d.Code.ID()), d.Message)
		writeContext(w, f, d, start, opts.Context, p)
		if opts.ShowFixes {
			for _, fx := range d.Fixes {
				fmt.Fprintf(w, "  %s %s\n", p.help.Sprint("help:"), fx.Title)
				writePreview(w, fs, fx, p)
			}
		}
	}
	if opts.Footer && structural {
		fmt.Fprintln(w, p.note.Sprint(HeuristicNote))
	}
}

func writeContext(w io.Writer, f *source.File, d diag.Diagnostic, start source.LineCol, context int, p palette) {
	if context < 0 {
		return
	}
	first := int(start.Line) - context
	if first < 1 {
		first = 1
	}
	last := min(int(start.Line)+context, lineCount(f))
	width := len(fmt.Sprint(last))
	for n := first; n <= last; n++ {
		text := f.GetLine(uint32(n))
		fmt.Fprintf(w, " %s %s\n", p.gut.Sprintf("%*d |", width, n), strings.ReplaceAll(text, "\t", "    "))
		if n != int(start.Line) {
			continue
		}
		prefix := strings.ReplaceAll(text[:min(int(start.Col-1), len(text))], "\t", "    ")
		marked := d.Primary.Len()
		if int(start.Col-1)+int(marked) > len(text) {
			marked = 0
		}
		underline := "^"
		if marked > 1 {
			span := f.Text(d.Primary)
			underline = "^" + strings.Repeat("~", max(runewidth.StringWidth(span)-1, 0))
		}
		fmt.Fprintf(w, " %s %s%s\n", p.gut.Sprintf("%*s |", width, ""),
			strings.Repeat(" ", runewidth.StringWidth(prefix)), p.caret.Sprint(underline))
	}
}

func writePreview(w io.Writer, fs *source.FileSet, fx diag.Fix, p palette) {
	for _, edit := range fx.Edits {
		preview, err := buildFixEditPreview(fs, edit)
		if err != nil {
			continue
		}
		for _, l := range preview.before {
			fmt.Fprintf(w, "    %s\n", p.caret.Sprint("- "+l))
		}
		for _, l := range preview.after {
			fmt.Fprintf(w, "    %s\n", p.help.Sprint("+ "+l))
		}
	}
}

func lineCount(f *source.File) int {
	n := len(f.LineIdx)
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

// Short prints the classic one-line form, "Line N: message".
func Short(w io.Writer, diagnostics []diag.Diagnostic) {
	for _, d := range diagnostics {
		fmt.Fprintln(w, d.String())
	}
}
