package mapper

import (
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type SessionEmbeddingMapper struct{}

func NewSessionEmbeddingMapper() *SessionEmbeddingMapper {
	return &SessionEmbeddingMapper{}
}

func (m *SessionEmbeddingMapper) ToEntity(e *model.SessionEmbedding) *entity.SessionEmbedding {
	if e == nil {
		return nil
	}
	return &entity.SessionEmbedding{
		Id:            e.Id,
		ChatSessionId: e.ChatSessionId,
		ChunkIndex:    e.ChunkIndex,
		Content:       e.Content,
		Vector:        e.EmbeddingValue.Slice(),
		CreatedAt:     e.CreatedAt,
	}
}

func (m *SessionEmbeddingMapper) ToModel(e *entity.SessionEmbedding) *model.SessionEmbedding {
	if e == nil {
		return nil
	}
	return &model.SessionEmbedding{
		Id:             e.Id,
		ChatSessionId:  e.ChatSessionId,
		ChunkIndex:     e.ChunkIndex,
		Content:        e.Content,
		EmbeddingValue: pgvector.NewVector(e.Vector),
		CreatedAt:      e.CreatedAt,
	}
}

func (m *SessionEmbeddingMapper) ToEntities(embeddings []*model.SessionEmbedding) []*entity.SessionEmbedding {
	entities := make([]*entity.SessionEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *SessionEmbeddingMapper) ToModels(embeddings []*entity.SessionEmbedding) []*model.SessionEmbedding {
	models := make([]*model.SessionEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
