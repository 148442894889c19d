package infrastructure

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffLineType classifies a line of a diff.
type DiffLineType string

// Diff line types.
const (
	DiffAdded     DiffLineType = "added"
	DiffRemoved   DiffLineType = "removed"
	DiffUnchanged DiffLineType = "unchanged"
)

// DiffLine is one line of a line-based diff. Line numbers are 1-based and
// zero when the line does not exist on that side.
type DiffLine struct {
	Type         DiffLineType `json:"type"`
	Content      string       `json:"content"`
	OriginalLine int          `json:"originalLine,omitempty"`
	ModifiedLine int          `json:"modifiedLine,omitempty"`
}

// DiffStats counts lines per DiffLineType.
type DiffStats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Unchanged int `json:"unchanged"`
}

// DiffResult is the outcome of comparing two texts.
type DiffResult struct {
	Stats DiffStats  `json:"stats"`
	Lines []DiffLine `json:"lines,omitempty"`
}

// TextDiffer compares texts line by line.
type TextDiffer struct{}

// NewTextDiffer creates a new TextDiffer.
func NewTextDiffer() *TextDiffer {
	return &TextDiffer{}
}

// Compare diffs original against modified. Removed lines of a changed block
// are listed before the added ones. Lines are only returned when includeLines is set.
func (d *TextDiffer) Compare(original, modified string, includeLines bool) DiffResult {
	a, b := splitLines(original), splitLines(modified)

	// Autojunk would treat frequent lines of long inputs as noise.
	matcher := difflib.NewMatcherWithJunk(a, b, false, nil)

	var result DiffResult
	emit := func(line DiffLine) {
		switch line.Type {
		case DiffAdded:
			result.Stats.Additions++
		case DiffRemoved:
			result.Stats.Deletions++
		default:
			result.Stats.Unchanged++
		}
		if includeLines {
			result.Lines = append(result.Lines, line)
		}
	}

	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for i := 0; i < op.I2-op.I1; i++ {
				emit(DiffLine{Type: DiffUnchanged, Content: a[op.I1+i], OriginalLine: op.I1 + i + 1, ModifiedLine: op.J1 + i + 1})
			}
		case 'd', 'r', 'i':
			for i := op.I1; i < op.I2; i++ {
				emit(DiffLine{Type: DiffRemoved, Content: a[i], OriginalLine: i + 1})
			}
			for j := op.J1; j < op.J2; j++ {
				emit(DiffLine{Type: DiffAdded, Content: b[j], ModifiedLine: j + 1})
			}
		}
	}

	if includeLines && result.Lines == nil {
		result.Lines = []DiffLine{}
	}
	return result
}

// splitLines splits on \n, dropping a trailing \r from each line.
// A final newline terminates the last line rather than starting an empty one,
// and the empty text has no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
