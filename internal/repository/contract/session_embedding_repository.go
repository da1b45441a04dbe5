package contract

import (
	"context"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.SessionEmbedding) error
	// ReplaceForSession swaps the durable chunk set for a session wholesale.
	ReplaceForSession(ctx context.Context, sessionId uuid.UUID, embeddings []*entity.SessionEmbedding) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindAllBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.SessionEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
