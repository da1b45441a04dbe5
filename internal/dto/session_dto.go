package dto

import (
	"time"

	"github.com/google/uuid"
)

type ModelConfigDTO struct {
	Provider    string  `json:"provider"`
	Name        string  `json:"name"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	ApiKey      string  `json:"api_key,omitempty"`
}

type CreateSessionRequest struct {
	Name                  string          `json:"name" validate:"required,min=1,max=100"`
	ChunkSize             int             `json:"chunk_size" validate:"omitempty,gt=0"`
	ChunkOverlap          int             `json:"chunk_overlap" validate:"omitempty,gte=0"`
	InternetSearchEnabled bool            `json:"internet_search_enabled"`
	Model                 *ModelConfigDTO `json:"model,omitempty"`
}

type UpdateSessionRequest struct {
	Name                  *string         `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	IsActive              *bool           `json:"is_active,omitempty"`
	ChunkSize             *int            `json:"chunk_size,omitempty" validate:"omitempty,gt=0"`
	ChunkOverlap          *int            `json:"chunk_overlap,omitempty" validate:"omitempty,gte=0"`
	InternetSearchEnabled *bool           `json:"internet_search_enabled,omitempty"`
	Model                 *ModelConfigDTO `json:"model,omitempty"`
}

type SessionResponse struct {
	Id                    uuid.UUID      `json:"id"`
	Name                  string         `json:"name"`
	IsActive              bool           `json:"is_active"`
	ChunkSize             int            `json:"chunk_size"`
	ChunkOverlap          int            `json:"chunk_overlap"`
	InternetSearchEnabled bool           `json:"internet_search_enabled"`
	Model                 ModelConfigDTO `json:"model"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             *time.Time     `json:"updated_at,omitempty"`
}
