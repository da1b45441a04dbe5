package mapper

import (
	"time"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/model"
)

type SessionToolMapper struct{}

func NewSessionToolMapper() *SessionToolMapper {
	return &SessionToolMapper{}
}

func (m *SessionToolMapper) ToEntity(t *model.SessionTool) *entity.SessionTool {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.SessionTool{
		Id:            t.Id,
		ChatSessionId: t.ChatSessionId,
		Name:          t.Name,
		Type:          t.Type,
		ApiUrl:        t.ApiUrl,
		HttpMethod:    t.HttpMethod,
		Source:        t.Source,
		Description:   t.Description,
		ParamsDoc:     t.ParamsDoc,
		ReturnsDoc:    t.ReturnsDoc,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *SessionToolMapper) ToModel(t *entity.SessionTool) *model.SessionTool {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.SessionTool{
		Id:            t.Id,
		ChatSessionId: t.ChatSessionId,
		Name:          t.Name,
		Type:          t.Type,
		ApiUrl:        t.ApiUrl,
		HttpMethod:    t.HttpMethod,
		Source:        t.Source,
		Description:   t.Description,
		ParamsDoc:     t.ParamsDoc,
		ReturnsDoc:    t.ReturnsDoc,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *SessionToolMapper) ToEntities(tools []*model.SessionTool) []*entity.SessionTool {
	entities := make([]*entity.SessionTool, len(tools))
	for i, t := range tools {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
