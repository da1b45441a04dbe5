package entity

import (
	"time"

	"github.com/google/uuid"
)

// ModelConfig is the per-session LLM configuration. ApiKey overrides the
// globally configured credential when set.
type ModelConfig struct {
	Provider    string  `json:"provider"`
	Name        string  `json:"name"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	ApiKey      string  `json:"api_key,omitempty"`
}

type ChatSession struct {
	Id                    uuid.UUID
	Name                  string
	AdminId               uuid.UUID
	IsActive              bool
	ChunkSize             int
	ChunkOverlap          int
	InternetSearchEnabled bool
	Model                 ModelConfig
	CreatedAt             time.Time
	UpdatedAt             *time.Time
}
