package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/pkg/llm"
)

const routerPromptTemplate = `You are a tool router for a document chat assistant.
Available tools:
%s
User query: %s

Decide whether one of the tools should be invoked to answer this query.
Respond with a JSON object only, no other text:
{"use_tool": true or false, "tool_name": "<name or empty>", "arguments": {<key-value arguments or empty>}}`

// routerDecision is the structured verdict extracted from the model's
// free-form reply.
type routerDecision struct {
	UseTool   interface{}            `json:"use_tool"`
	ToolName  string                 `json:"tool_name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// Route asks the language model whether a cataloged tool should handle
// the query. Any parse failure or unmatched tool name means "no tool",
// never an error to the caller.
func Route(ctx context.Context, provider llm.LLMProvider, query string, catalog []*entity.SessionTool) *Invocation {
	if len(catalog) == 0 {
		return nil
	}

	prompt := fmt.Sprintf(routerPromptTemplate, serializeCatalog(catalog), query)

	reply, err := provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return nil
	}

	decision, ok := decodeDecision(reply)
	if !ok || !isTruthy(decision.UseTool) || decision.ToolName == "" {
		return nil
	}

	for _, tool := range catalog {
		if strings.EqualFold(tool.Name, decision.ToolName) {
			return &Invocation{
				Tool:    tool,
				Payload: decision.Arguments,
			}
		}
	}
	return nil
}

func serializeCatalog(catalog []*entity.SessionTool) string {
	var b strings.Builder
	for _, tool := range catalog {
		fmt.Fprintf(&b, "- name: %s\n  type: %s\n", tool.Name, tool.Type)
		if tool.Type == entity.ToolTypeApi {
			fmt.Fprintf(&b, "  endpoint: %s %s\n", tool.HttpMethod, tool.ApiUrl)
		}
		if tool.Description != "" {
			fmt.Fprintf(&b, "  description: %s\n", tool.Description)
		}
		if tool.ParamsDoc != "" {
			fmt.Fprintf(&b, "  params: %s\n", tool.ParamsDoc)
		}
	}
	return b.String()
}

// decodeDecision extracts the first JSON object embedded in free-form
// model output. Best effort only; malformed text reports failure.
func decodeDecision(reply string) (*routerDecision, bool) {
	start := strings.Index(reply, "{")
	if start < 0 {
		return nil, false
	}

	dec := json.NewDecoder(strings.NewReader(reply[start:]))
	var decision routerDecision
	if err := dec.Decode(&decision); err != nil {
		return nil, false
	}
	return &decision, true
}

func isTruthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "true" || s == "yes" || s == "1"
	case float64:
		return t != 0
	default:
		return false
	}
}
