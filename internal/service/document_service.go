package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/events"
	pktNats "ai-docchat-be/pkg/nats"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, adminId uuid.UUID, sessionId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.DocumentResponse, error)
	GetAll(ctx context.Context, adminId uuid.UUID, sessionId uuid.UUID) ([]*dto.DocumentResponse, error)
	Delete(ctx context.Context, adminId uuid.UUID, sessionId uuid.UUID, documentId uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (s *documentService) ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, adminId uuid.UUID, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByAdminID{AdminID: adminId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session not found")
	}
	return session, nil
}

func (s *documentService) Upload(ctx context.Context, adminId uuid.UUID, sessionId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.ownedSession(ctx, uow, adminId, sessionId); err != nil {
		return nil, err
	}

	document := &entity.Document{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Filename:      req.Filename,
		PageCount:     len(req.Pages),
		UploadedAt:    time.Now(),
	}

	pages := make([]*entity.DocumentPage, 0, len(req.Pages))
	for i, content := range req.Pages {
		pages = append(pages, &entity.DocumentPage{
			Id:            uuid.New(),
			DocumentId:    document.Id,
			ChatSessionId: sessionId,
			PageIndex:     i,
			Content:       content,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, err
	}
	if err := uow.DocumentPageRepository().CreateBulk(ctx, pages); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if err := s.publishIngest(ctx, sessionId, document.Id); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "DOCUMENT_UPLOADED",
			Data: map[string]interface{}{
				"document_id": document.Id,
				"session_id":  sessionId,
				"filename":    document.Filename,
				"page_count":  document.PageCount,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("document", "Failed to publish DOCUMENT_UPLOADED event", map[string]interface{}{
				"document_id": document.Id.String(),
				"session_id":  sessionId.String(),
				"error":       err.Error(),
			})
		}
	}

	return toDocumentResponse(document), nil
}

func (s *documentService) GetAll(ctx context.Context, adminId uuid.UUID, sessionId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.ownedSession(ctx, uow, adminId, sessionId); err != nil {
		return nil, err
	}

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DocumentResponse, 0, len(documents))
	for _, document := range documents {
		result = append(result, toDocumentResponse(document))
	}
	return result, nil
}

// Delete removes the document and its pages. The index keeps serving its
// current chunks until the next ingest rebuilds it from what remains.
func (s *documentService) Delete(ctx context.Context, adminId uuid.UUID, sessionId uuid.UUID, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.ownedSession(ctx, uow, adminId, sessionId); err != nil {
		return err
	}

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.ByChatSessionID{ChatSessionID: sessionId},
	)
	if err != nil {
		return err
	}
	if document == nil {
		return fmt.Errorf("document not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentPageRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, documentId); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *documentService) publishIngest(ctx context.Context, sessionId uuid.UUID, documentId uuid.UUID) error {
	payload := dto.IngestDocumentMessage{
		ChatSessionId: sessionId,
		DocumentId:    documentId,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payloadJson)
}

func toDocumentResponse(document *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:         document.Id,
		Filename:   document.Filename,
		PageCount:  document.PageCount,
		UploadedAt: document.UploadedAt,
	}
}
