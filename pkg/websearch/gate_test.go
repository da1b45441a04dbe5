package websearch

import "testing"

func TestShouldSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{
			name:  "weather keyword",
			query: "What's the weather today in Jakarta?",
			want:  true,
		},
		{
			name:  "latest news pattern",
			query: "give me the latest news about the semiconductor industry",
			want:  true,
		},
		{
			name:  "current price pattern",
			query: "current price of gold per gram",
			want:  true,
		},
		{
			name:  "breaking news pattern",
			query: "any breaking news from the summit?",
			want:  true,
		},
		{
			name:  "timeless question",
			query: "What is photosynthesis?",
			want:  false,
		},
		{
			name:  "document question",
			query: "Summarize chapter three of the uploaded report",
			want:  false,
		},
		{
			name:  "keyword is case insensitive",
			query: "LATEST developments please",
			want:  true,
		},
		{
			name:  "empty query",
			query: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldSearch(tt.query); got != tt.want {
				t.Errorf("ShouldSearch(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
