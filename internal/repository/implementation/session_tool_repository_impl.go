package implementation

import (
	"context"
	"errors"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/mapper"
	"ai-docchat-be/internal/model"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionToolRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionToolMapper
}

func NewSessionToolRepository(db *gorm.DB) contract.SessionToolRepository {
	return &SessionToolRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionToolMapper(),
	}
}

func (r *SessionToolRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionToolRepositoryImpl) Create(ctx context.Context, tool *entity.SessionTool) error {
	m := r.mapper.ToModel(tool)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tool = *r.mapper.ToEntity(m)
	return nil
}

func (r *SessionToolRepositoryImpl) Update(ctx context.Context, tool *entity.SessionTool) error {
	m := r.mapper.ToModel(tool)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*tool = *r.mapper.ToEntity(m)
	return nil
}

func (r *SessionToolRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SessionTool{}, id).Error
}

func (r *SessionToolRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chat_session_id = ?", sessionId).Delete(&model.SessionTool{}).Error
}

func (r *SessionToolRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SessionTool, error) {
	var m model.SessionTool
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionToolRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionTool, error) {
	var models []*model.SessionTool
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SessionToolRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SessionTool{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
