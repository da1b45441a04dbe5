package unitofwork

import (
	"context"

	"ai-docchat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatSessionRepository() contract.ChatSessionRepository
	DocumentRepository() contract.DocumentRepository
	DocumentPageRepository() contract.DocumentPageRepository
	ChatMessageRepository() contract.ChatMessageRepository
	SessionToolRepository() contract.SessionToolRepository
	SessionEmbeddingRepository() contract.SessionEmbeddingRepository
}
