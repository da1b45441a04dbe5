package contract

import (
	"context"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionToolRepository interface {
	Create(ctx context.Context, tool *entity.SessionTool) error
	Update(ctx context.Context, tool *entity.SessionTool) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SessionTool, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionTool, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
