package websearch

import (
	"strings"
	"testing"
)

func TestFormatForLLMEmpty(t *testing.T) {
	if got := FormatForLLM(nil); got != NoResultsReply {
		t.Errorf("FormatForLLM(nil) = %q, want %q", got, NoResultsReply)
	}
}

func TestFormatForLLMNumbering(t *testing.T) {
	results := []Result{
		{Title: "First", Content: "first content", URL: "https://a.example", Source: "DuckDuckGo"},
		{Title: "Second", Content: "second content", Source: "DuckDuckGo Web"},
	}

	got := FormatForLLM(results)

	if !strings.Contains(got, "1. First") {
		t.Errorf("missing first entry, got:\n%s", got)
	}
	if !strings.Contains(got, "2. Second") {
		t.Errorf("missing second entry, got:\n%s", got)
	}
	if !strings.Contains(got, "URL: https://a.example") {
		t.Errorf("missing URL line, got:\n%s", got)
	}
	if strings.Contains(got, "URL: \n") {
		t.Errorf("entry without URL should omit the URL line, got:\n%s", got)
	}
}
