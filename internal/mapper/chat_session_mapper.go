package mapper

import (
	"encoding/json"
	"time"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/model"

	"gorm.io/datatypes"
)

type ChatSessionMapper struct{}

func NewChatSessionMapper() *ChatSessionMapper {
	return &ChatSessionMapper{}
}

func (m *ChatSessionMapper) ToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	var modelCfg entity.ModelConfig
	if len(s.ModelConfig) > 0 {
		// Malformed config falls back to the zero value; the LLM factory
		// applies provider defaults on top.
		_ = json.Unmarshal(s.ModelConfig, &modelCfg)
	}

	return &entity.ChatSession{
		Id:                    s.Id,
		Name:                  s.Name,
		AdminId:               s.AdminId,
		IsActive:              s.IsActive,
		ChunkSize:             s.ChunkSize,
		ChunkOverlap:          s.ChunkOverlap,
		InternetSearchEnabled: s.InternetSearchEnabled,
		Model:                 modelCfg,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             updatedAt,
	}
}

func (m *ChatSessionMapper) ToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	raw, err := json.Marshal(s.Model)
	if err != nil {
		raw = []byte("{}")
	}

	return &model.ChatSession{
		Id:                    s.Id,
		Name:                  s.Name,
		AdminId:               s.AdminId,
		IsActive:              s.IsActive,
		ChunkSize:             s.ChunkSize,
		ChunkOverlap:          s.ChunkOverlap,
		InternetSearchEnabled: s.InternetSearchEnabled,
		ModelConfig:           datatypes.JSON(raw),
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             updatedAt,
	}
}

func (m *ChatSessionMapper) ToEntities(sessions []*model.ChatSession) []*entity.ChatSession {
	entities := make([]*entity.ChatSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
