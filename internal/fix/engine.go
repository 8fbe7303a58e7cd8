// Package fix applies the text edits attached to diagnostics: spelling
// replacements from the lexer ("prinft" → "printf", "sum" → "suma") and
// inserted terminators from the terminator check.
package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"analex/internal/diag"
	"analex/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeAll ApplyMode = iota
	ApplyModeOnce
	ApplyModeID
	ApplyModeLexical // only spelling replacements
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID      string
	Title   string
	Code    diag.Code
	Line    uint32
	Message string
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// ApplyResult aggregates applied and skipped fixes and the edited text.
type ApplyResult struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	Output  []byte // file content with the applied fixes
}

type candidate struct {
	id   string
	diag diag.Diagnostic
	fix  diag.Fix
}

// FixID is the stable identifier shown to users: CODE-offset-index.
func FixID(d diag.Diagnostic, idx int) string {
	return fmt.Sprintf("%s-%d-%d", d.Code.ID(), d.Primary.Start, idx)
}

// Apply selects fixes from diagnostics of file and applies them to a copy
// of its content. Nothing is written; see WriteFile.
func Apply(file *source.File, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if file == nil {
		return result, fmt.Errorf("fix: file is nil")
	}
	result.Output = append([]byte(nil), file.Content...)

	candidates := gatherCandidates(file.ID, diagnostics)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	selected, skipped := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skipped...)

	var accepted []diag.FixEdit
	for _, cand := range selected {
		if reason := check(file, cand.fix.Edits, accepted); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{ID: cand.id, Title: cand.fix.Title, Reason: reason})
			continue
		}
		accepted = append(accepted, cand.fix.Edits...)
		result.Applied = append(result.Applied, AppliedFix{
			ID:      cand.id,
			Title:   cand.fix.Title,
			Code:    cand.diag.Code,
			Line:    cand.diag.Line,
			Message: cand.diag.Message,
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	result.Output = rewrite(file.Content, accepted)
	return result, nil
}

func gatherCandidates(file source.FileID, diagnostics []diag.Diagnostic) []candidate {
	var cands []candidate
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 || !sameFile(file, f.Edits) {
				continue
			}
			cands = append(cands, candidate{id: FixID(d, idx), diag: d, fix: f})
		}
	}
	// по позиции, при равенстве сохраняем порядок диагностик
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].fix.Edits[0].Span.Start < cands[j].fix.Edits[0].Span.Start
	})
	return cands
}

func sameFile(file source.FileID, edits []diag.FixEdit) bool {
	for _, e := range edits {
		if e.Span.File != file {
			return false
		}
	}
	return true
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.id == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeOnce:
		return candidates[:1], nil
	case ApplyModeLexical:
		var selected []candidate
		var skipped []SkippedFix
		for _, cand := range candidates {
			if cand.diag.Code.IsLexical() {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{ID: cand.id, Title: cand.fix.Title, Reason: "not a lexical fix"})
		}
		return selected, skipped
	default:
		return candidates, nil
	}
}

// check validates edits against the original text and the edits already
// accepted. An empty result means the edits can be applied.
func check(file *source.File, edits, accepted []diag.FixEdit) string {
	n := len(file.Content)
	for i, e := range edits {
		if int(e.Span.End) > n || e.Span.End < e.Span.Start {
			return "edit span out of range"
		}
		if e.OldText != "" && file.Text(e.Span) != e.OldText {
			return "existing text does not match expected content"
		}
		for _, prev := range accepted {
			if prev.Span.Overlaps(e.Span) {
				return "conflicts with a previously applied edit"
			}
		}
		for _, other := range edits[:i] {
			if other.Span.Overlaps(e.Span) {
				return "fix has overlapping edits"
			}
		}
	}
	return ""
}

// rewrite applies non-overlapping edits back to front so that original
// offsets stay valid.
func rewrite(content []byte, edits []diag.FixEdit) []byte {
	sorted := append([]diag.FixEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start > sorted[j].Span.Start
	})
	out := append([]byte(nil), content...)
	for _, e := range sorted {
		suffix := append([]byte(nil), out[e.Span.End:]...)
		out = append(append(out[:e.Span.Start], e.NewText...), suffix...)
	}
	return out
}

// WriteFile stores content at path keeping the existing file mode.
func WriteFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
