package websearch

import (
	"regexp"
	"strings"
)

// searchKeywords flag queries that likely need current information.
var searchKeywords = []string{
	"current", "latest", "recent", "today", "now", "2024", "2025",
	"news", "update", "happening", "trending", "price", "weather",
	"stock", "market", "crypto", "bitcoin", "ethereum", "covid",
	"pandemic", "election", "war", "crisis", "breaking", "live",
	"real-time", "time-sensitive", "what is happening", "what's new",
}

var currentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`what.*happening.*now`),
	regexp.MustCompile(`what.*latest.*on`),
	regexp.MustCompile(`current.*status.*of`),
	regexp.MustCompile(`recent.*developments.*in`),
	regexp.MustCompile(`what.*new.*in`),
	regexp.MustCompile(`latest.*news.*about`),
	regexp.MustCompile(`current.*price.*of`),
	regexp.MustCompile(`what.*weather.*today`),
	regexp.MustCompile(`breaking.*news`),
	regexp.MustCompile(`live.*updates`),
}

// ShouldSearch reports whether a query would benefit from an internet
// search. It is a heuristic over recency keywords and question shapes.
func ShouldSearch(query string) bool {
	queryLower := strings.ToLower(query)

	for _, keyword := range searchKeywords {
		if strings.Contains(queryLower, keyword) {
			return true
		}
	}

	for _, pattern := range currentPatterns {
		if pattern.MatchString(queryLower) {
			return true
		}
	}

	return false
}
