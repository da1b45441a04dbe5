package websearch

import (
	"fmt"
	"strings"
)

// NoResultsReply is returned when a search came back empty.
const NoResultsReply = "No search results found."

// FormatForLLM renders search results as a numbered context block.
func FormatForLLM(results []Result) string {
	if len(results) == 0 {
		return NoResultsReply
	}

	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Title)
		fmt.Fprintf(&b, "   Content: %s\n", r.Content)
		if r.URL != "" {
			fmt.Fprintf(&b, "   URL: %s\n", r.URL)
		}
		fmt.Fprintf(&b, "   Source: %s\n", r.Source)
		if i < len(results)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
