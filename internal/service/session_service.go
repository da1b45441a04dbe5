package service

import (
	"context"
	"fmt"
	"time"

	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/memory"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/events"
	pktNats "ai-docchat-be/pkg/nats"
	"ai-docchat-be/pkg/vectorindex"

	"github.com/google/uuid"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

type ISessionService interface {
	GetAll(ctx context.Context, userId uuid.UUID, isAdmin bool) ([]*dto.SessionResponse, error)
	Create(ctx context.Context, adminId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Show(ctx context.Context, userId uuid.UUID, isAdmin bool, id uuid.UUID) (*dto.SessionResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type sessionService struct {
	uowFactory     unitofwork.RepositoryFactory
	indexManager   *vectorindex.Manager
	conversations  *memory.ConversationRepository
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	indexManager *vectorindex.Manager,
	conversations *memory.ConversationRepository,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:     uowFactory,
		indexManager:   indexManager,
		conversations:  conversations,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// GetAll lists every session for admins and only active ones for
// everyone else.
func (s *sessionService) GetAll(ctx context.Context, userId uuid.UUID, isAdmin bool) ([]*dto.SessionResponse, error) {
	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if !isAdmin {
		specs = append(specs, specification.ActiveSessions{})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, toSessionResponse(session))
	}
	return result, nil
}

func (s *sessionService) Create(ctx context.Context, adminId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	chunkSize := req.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	chunkOverlap := req.ChunkOverlap
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = defaultChunkOverlap
		if chunkOverlap >= chunkSize {
			chunkOverlap = 0
		}
	}

	session := &entity.ChatSession{
		Id:                    uuid.New(),
		Name:                  req.Name,
		AdminId:               adminId,
		IsActive:              true,
		ChunkSize:             chunkSize,
		ChunkOverlap:          chunkOverlap,
		InternetSearchEnabled: req.InternetSearchEnabled,
		Model:                 toModelConfig(req.Model),
		CreatedAt:             time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "SESSION_CREATED",
			Data: map[string]interface{}{
				"session_id": session.Id,
				"name":       session.Name,
				"admin_id":   adminId,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("session", "Failed to publish SESSION_CREATED event", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	return toSessionResponse(session), nil
}

func (s *sessionService) Show(ctx context.Context, userId uuid.UUID, isAdmin bool, id uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil // Not found
	}
	if !canAccessSession(session, userId, isAdmin) {
		return nil, ErrAccessDenied
	}
	return toSessionResponse(session), nil
}

func (s *sessionService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	if req.Name != nil {
		session.Name = *req.Name
	}
	if req.IsActive != nil {
		session.IsActive = *req.IsActive
	}
	if req.ChunkSize != nil && *req.ChunkSize > 0 {
		session.ChunkSize = *req.ChunkSize
	}
	if req.ChunkOverlap != nil && *req.ChunkOverlap >= 0 && *req.ChunkOverlap < session.ChunkSize {
		session.ChunkOverlap = *req.ChunkOverlap
	}
	if req.InternetSearchEnabled != nil {
		session.InternetSearchEnabled = *req.InternetSearchEnabled
	}
	if req.Model != nil {
		session.Model = toModelConfig(req.Model)
	}
	now := time.Now()
	session.UpdatedAt = &now

	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// Delete removes the session and everything hanging off it: messages,
// tools, documents and their pages, stored embeddings, the in-memory
// index and the conversation window.
func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.SessionToolRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentPageRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.SessionEmbeddingRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if err := s.indexManager.Discard(ctx, id); err != nil {
		s.logger.Warn("session", "Failed to discard index", map[string]interface{}{
			"session_id": id.String(),
			"error":      err.Error(),
		})
	}
	s.conversations.Delete(id)

	return nil
}

func toModelConfig(m *dto.ModelConfigDTO) entity.ModelConfig {
	if m == nil {
		return entity.ModelConfig{}
	}
	return entity.ModelConfig{
		Provider:    m.Provider,
		Name:        m.Name,
		Temperature: m.Temperature,
		MaxTokens:   m.MaxTokens,
		ApiKey:      m.ApiKey,
	}
}

func toSessionResponse(session *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:                    session.Id,
		Name:                  session.Name,
		IsActive:              session.IsActive,
		ChunkSize:             session.ChunkSize,
		ChunkOverlap:          session.ChunkOverlap,
		InternetSearchEnabled: session.InternetSearchEnabled,
		// ApiKey stays server-side.
		Model: dto.ModelConfigDTO{
			Provider:    session.Model.Provider,
			Name:        session.Model.Name,
			Temperature: session.Model.Temperature,
			MaxTokens:   session.Model.MaxTokens,
		},
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}
