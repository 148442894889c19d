package infrastructure

import (
	"testing"
)

// TestTextDiffer_SingleChange tests the stats of a one-line replacement.
func TestTextDiffer_SingleChange(t *testing.T) {
	result := NewTextDiffer().Compare("a", "b", true)

	if result.Stats != (DiffStats{Additions: 1, Deletions: 1, Unchanged: 0}) {
		t.Errorf("Unexpected stats %+v", result.Stats)
	}
	if len(result.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(result.Lines))
	}
	if result.Lines[0].Type != DiffRemoved || result.Lines[0].Content != "a" || result.Lines[0].OriginalLine != 1 {
		t.Errorf("Unexpected first line %+v", result.Lines[0])
	}
	if result.Lines[1].Type != DiffAdded || result.Lines[1].Content != "b" || result.Lines[1].ModifiedLine != 1 {
		t.Errorf("Unexpected second line %+v", result.Lines[1])
	}
}

// TestTextDiffer_Compare tests stats and line numbering on multi-line inputs.
func TestTextDiffer_Compare(t *testing.T) {
	tests := []struct {
		name     string
		original string
		modified string
		want     DiffStats
	}{
		{"identical", "x\ny", "x\ny", DiffStats{Unchanged: 2}},
		{"both empty", "", "", DiffStats{}},
		{"added to empty", "", "one\ntwo", DiffStats{Additions: 2}},
		{"removed all", "one\ntwo", "", DiffStats{Deletions: 2}},
		{"insert middle", "a\nc", "a\nb\nc", DiffStats{Additions: 1, Unchanged: 2}},
		{"delete middle", "a\nb\nc", "a\nc", DiffStats{Deletions: 1, Unchanged: 2}},
		{"crlf ignored", "a\r\nb", "a\nb", DiffStats{Unchanged: 2}},
		{"trailing newline ignored", "a\n", "a", DiffStats{Unchanged: 1}},
		{"trailing crlf ignored", "a\r\nb\r\n", "a\nb", DiffStats{Unchanged: 2}},
		{"blank last line kept", "a\n\n", "a", DiffStats{Deletions: 1, Unchanged: 1}},
		{"lone newline", "\n", "", DiffStats{Deletions: 1}},
	}

	d := NewTextDiffer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := d.Compare(tt.original, tt.modified, true)
			if result.Stats != tt.want {
				t.Errorf("Expected stats %+v, got %+v", tt.want, result.Stats)
			}
			total := tt.want.Additions + tt.want.Deletions + tt.want.Unchanged
			if len(result.Lines) != total {
				t.Errorf("Expected %d lines, got %d", total, len(result.Lines))
			}
		})
	}
}

// TestTextDiffer_LineNumbers tests original and modified numbering around an insertion.
func TestTextDiffer_LineNumbers(t *testing.T) {
	result := NewTextDiffer().Compare("a\nc", "a\nb\nc", true)

	want := []DiffLine{
		{Type: DiffUnchanged, Content: "a", OriginalLine: 1, ModifiedLine: 1},
		{Type: DiffAdded, Content: "b", ModifiedLine: 2},
		{Type: DiffUnchanged, Content: "c", OriginalLine: 2, ModifiedLine: 3},
	}
	if len(result.Lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d", len(want), len(result.Lines))
	}
	for i := range want {
		if result.Lines[i] != want[i] {
			t.Errorf("Line %d: expected %+v, got %+v", i, want[i], result.Lines[i])
		}
	}
}

// TestTextDiffer_WithoutLines tests that lines are omitted on request.
func TestTextDiffer_WithoutLines(t *testing.T) {
	result := NewTextDiffer().Compare("a\nb", "a\nc", false)

	if result.Lines != nil {
		t.Errorf("Expected no lines, got %d", len(result.Lines))
	}
	if result.Stats != (DiffStats{Additions: 1, Deletions: 1, Unchanged: 1}) {
		t.Errorf("Unexpected stats %+v", result.Stats)
	}
}
