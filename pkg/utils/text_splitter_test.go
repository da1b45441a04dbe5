package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short", 100, 10)
	if len(chunks) != 1 || chunks[0] != "short" {
		t.Errorf("chunks = %v, want [short]", chunks)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10) // 100 chars
	chunks := SplitText(text, 40, 10)

	if len(chunks) < 3 {
		t.Fatalf("len = %d, want at least 3", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 40 {
			t.Errorf("chunk %d has %d chars, cap is 40", i, len(c))
		}
	}

	// Consecutive chunks share the overlap region.
	first := chunks[0]
	second := chunks[1]
	if !strings.HasPrefix(second, first[30:]) {
		t.Errorf("chunk 1 does not start with the tail of chunk 0")
	}
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("x", 95)
	chunks := SplitText(text, 40, 0)

	var total int
	for _, c := range chunks {
		total += len(c)
	}
	if total != 95 {
		t.Errorf("total chars = %d, want 95", total)
	}
}

func TestSplitTextOverlapAtLeastChunkSize(t *testing.T) {
	text := strings.Repeat("y", 50)
	chunks := SplitText(text, 10, 10)

	// Degenerate overlap falls back to non-overlapping steps.
	if len(chunks) != 5 {
		t.Errorf("len = %d, want 5", len(chunks))
	}
}

func TestSplitTextMultibyte(t *testing.T) {
	text := strings.Repeat("héllo wörld ", 20)
	chunks := SplitText(text, 50, 5)

	joined := strings.Join(chunks, "")
	if !strings.Contains(joined, "héllo") {
		t.Errorf("multibyte runes mangled")
	}
}
