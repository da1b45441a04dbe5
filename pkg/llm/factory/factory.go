package factory

import (
	"fmt"

	"ai-docchat-be/pkg/llm"
	"ai-docchat-be/pkg/llm/groq"
	"ai-docchat-be/pkg/llm/ollama"
)

// Config carries the provider selection plus credentials. ApiKey may be
// a per-session override; falls back to the process-level key.
type Config struct {
	Provider string
	Model    string
	BaseURL  string
	ApiKey   string
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "groq", "":
		return groq.NewGroqProvider(cfg.ApiKey, cfg.BaseURL, cfg.Model), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
