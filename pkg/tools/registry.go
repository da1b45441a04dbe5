package tools

import (
	"encoding/json"
	"strings"

	"ai-docchat-be/internal/entity"
)

// Invocation is a resolved tool call: the tool plus an optional payload
// decoded from the query or supplied by the router.
type Invocation struct {
	Tool    *entity.SessionTool
	Payload map[string]interface{}
}

// ResolveExplicit scans the query for a direct tool mention: either
// "run <name>" or the bare tool name. First catalog match wins, in
// listing order. A trailing JSON object after "with" becomes the
// payload; malformed JSON means no payload, never a failure.
func ResolveExplicit(query string, catalog []*entity.SessionTool) *Invocation {
	queryLower := strings.ToLower(query)

	for _, tool := range catalog {
		nameLower := strings.ToLower(tool.Name)
		if strings.Contains(queryLower, "run "+nameLower) || strings.Contains(queryLower, nameLower) {
			return &Invocation{
				Tool:    tool,
				Payload: extractPayload(query),
			}
		}
	}
	return nil
}

// extractPayload pulls a JSON object following the word "with" out of
// the query text.
func extractPayload(query string) map[string]interface{} {
	idx := strings.LastIndex(strings.ToLower(query), "with ")
	if idx < 0 {
		return nil
	}
	rest := strings.TrimSpace(query[idx+len("with "):])

	start := strings.IndexAny(rest, "{[")
	if start < 0 {
		return nil
	}
	raw := rest[start:]

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		// Arrays get wrapped so downstream always sees a map.
		var list []interface{}
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil
		}
		return map[string]interface{}{"args": list}
	}
	return payload
}
