package diagfmt

import (
	"fmt"

	"analex/internal/diag"
	"analex/internal/source"
)

type fixEditPreview struct {
	before []string
	after  []string
}

// buildFixEditPreview shows the line an edit touches before and after it.
// Edits produced by the analyzer never cross a line.
func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, fmt.Errorf("nil FileSet")
	}
	file := fs.Get(edit.Span.File)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	start, end := fs.Resolve(edit.Span)
	if start.Line != end.Line {
		return fixEditPreview{}, fmt.Errorf("edit spans lines %d-%d", start.Line, end.Line)
	}
	line := file.GetLine(start.Line)
	from := int(start.Col - 1)
	to := from + int(edit.Span.Len())
	if from < 0 || to > len(line) {
		return fixEditPreview{}, fmt.Errorf("edit span %v out of range for line %d", edit.Span, start.Line)
	}
	return fixEditPreview{
		before: []string{line},
		after:  []string{line[:from] + edit.NewText + line[to:]},
	}, nil
}
