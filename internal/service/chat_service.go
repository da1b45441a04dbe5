package service

import (
	"context"
	"errors"
	"time"

	"ai-docchat-be/internal/config"
	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/llm"
	"ai-docchat-be/pkg/llm/factory"
	"ai-docchat-be/pkg/rag/pipeline"

	"github.com/google/uuid"
)

// historyLimit caps a history read to the most recent messages.
const historyLimit = 50

type IChatService interface {
	SendChat(ctx context.Context, userId uuid.UUID, isAdmin bool, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, isAdmin bool, sessionId uuid.UUID) (*dto.GetChatHistoryResponse, error)
	DeleteMessage(ctx context.Context, userId uuid.UUID, isAdmin bool, messageId uuid.UUID) error
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	pipeline   *pipeline.Pipeline
	aiConfig   config.AIConfig
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	ragPipeline *pipeline.Pipeline,
	aiConfig config.AIConfig,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		pipeline:   ragPipeline,
		aiConfig:   aiConfig,
	}
}

func (s *chatService) SendChat(ctx context.Context, userId uuid.UUID, isAdmin bool, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: req.ChatSessionId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("session not found")
	}
	if !canAccessSession(session, userId, isAdmin) {
		return nil, ErrAccessDenied
	}

	provider, err := s.providerForSession(session)
	if err != nil {
		return nil, err
	}

	sentChat := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		UserId:        userId,
		Role:          constant.ChatMessageRoleUser,
		Content:       req.Chat,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, sentChat); err != nil {
		return nil, err
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = s.aiConfig.DefaultStrategy
	}
	k := req.K
	if k <= 0 {
		k = s.aiConfig.DefaultTopK
	}

	answer := s.pipeline.Resolve(ctx, provider, &pipeline.Request{
		Query:         req.Chat,
		Session:       session,
		Strategy:      strategy,
		K:             k,
		InternetFirst: req.InternetFirst,
	})

	replyChat := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		UserId:        userId,
		Role:          constant.ChatMessageRoleAssistant,
		Content:       answer.Text,
		RagStrategy:   answer.Source,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, replyChat); err != nil {
		return nil, err
	}

	return &dto.SendChatResponse{
		SentChat:  toChatMessageResponse(sentChat),
		ReplyChat: toChatMessageResponse(replyChat),
	}, nil
}

func (s *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, isAdmin bool, sessionId uuid.UUID) (*dto.GetChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("session not found")
	}
	if !canAccessSession(session, userId, isAdmin) {
		return nil, ErrAccessDenied
	}

	messages, err := uow.ChatMessageRepository().FindRecentBySession(ctx, sessionId, historyLimit)
	if err != nil {
		return nil, err
	}

	chats := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, message := range messages {
		chats = append(chats, toChatMessageResponse(message))
	}
	return &dto.GetChatHistoryResponse{
		ChatSessionId: sessionId,
		Chats:         chats,
	}, nil
}

// DeleteMessage removes one message; only the author or a global admin
// may do it.
func (s *chatService) DeleteMessage(ctx context.Context, userId uuid.UUID, isAdmin bool, messageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.ChatMessageRepository().FindOne(ctx,
		specification.ByID{ID: messageId},
	)
	if err != nil {
		return err
	}
	if message == nil {
		return errors.New("message not found")
	}
	if message.UserId != userId && !isAdmin {
		return ErrAccessDenied
	}

	return uow.ChatMessageRepository().Delete(ctx, messageId)
}

// providerForSession builds the LLM client from the session's model
// config, falling back to the process-level defaults field by field.
func (s *chatService) providerForSession(session *entity.ChatSession) (llm.LLMProvider, error) {
	cfg := factory.Config{
		Provider: session.Model.Provider,
		Model:    session.Model.Name,
		ApiKey:   session.Model.ApiKey,
	}
	if cfg.Provider == "" {
		cfg.Provider = s.aiConfig.LLMProvider
	}
	if cfg.Model == "" {
		cfg.Model = s.aiConfig.LLMModel
	}
	switch cfg.Provider {
	case "ollama":
		cfg.BaseURL = s.aiConfig.OllamaBaseURL
	default:
		if cfg.ApiKey == "" {
			cfg.ApiKey = s.aiConfig.GroqApiKey
		}
	}
	return factory.NewLLMProvider(cfg)
}

func toChatMessageResponse(message *entity.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		Id:            message.Id,
		ChatSessionId: message.ChatSessionId,
		Role:          message.Role,
		Content:       message.Content,
		RagStrategy:   message.RagStrategy,
		CreatedAt:     message.CreatedAt,
	}
}
