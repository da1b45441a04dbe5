package tools

import (
	"context"
	"fmt"
	"strings"

	"ai-docchat-be/pkg/llm"
)

const summarizePromptTemplate = `A tool named "%s" was invoked to help answer this user query:
%s

The tool returned the following output:
%s

Write a concise, user-facing answer based on the tool output. If the
output indicates an error, briefly explain what went wrong and suggest
next steps. Do not mention internal details or stack traces.`

// Summarize turns raw tool output into a user-facing answer. If the
// summarization call fails, the raw output is the fallback.
func Summarize(ctx context.Context, provider llm.LLMProvider, toolName, query, output string) string {
	prompt := fmt.Sprintf(summarizePromptTemplate, toolName, query, output)

	summary, err := provider.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(summary) == "" {
		return output
	}
	return summary
}
