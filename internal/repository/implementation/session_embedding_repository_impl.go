package implementation

import (
	"context"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/mapper"
	"ai-docchat-be/internal/model"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionEmbeddingMapper
}

func NewSessionEmbeddingRepository(db *gorm.DB) contract.SessionEmbeddingRepository {
	return &SessionEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionEmbeddingMapper(),
	}
}

func (r *SessionEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.SessionEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *SessionEmbeddingRepositoryImpl) ReplaceForSession(ctx context.Context, sessionId uuid.UUID, embeddings []*entity.SessionEmbedding) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("chat_session_id = ?", sessionId).Delete(&model.SessionEmbedding{}).Error; err != nil {
			return err
		}
		if len(embeddings) == 0 {
			return nil
		}
		models := r.mapper.ToModels(embeddings)
		if err := tx.Create(models).Error; err != nil {
			return err
		}
		for i, m := range models {
			*embeddings[i] = *r.mapper.ToEntity(m)
		}
		return nil
	})
}

func (r *SessionEmbeddingRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Where("chat_session_id = ?", sessionId).Delete(&model.SessionEmbedding{}).Error
}

func (r *SessionEmbeddingRepositoryImpl) FindAllBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.SessionEmbedding, error) {
	var models []*model.SessionEmbedding
	err := r.db.WithContext(ctx).
		Where("chat_session_id = ?", sessionId).
		Order("chunk_index ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SessionEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SessionEmbedding{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
