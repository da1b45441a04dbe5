package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-docchat-be/internal/config"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type fakeUow struct {
	session  *entity.ChatSession
	messages []*entity.ChatMessage

	recentLimit  int
	deletedIds   []uuid.UUID
	findAllSpecs []specification.Specification
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                 { return nil }
func (u *fakeUow) DocumentRepository() contract.DocumentRepository         { return nil }
func (u *fakeUow) DocumentPageRepository() contract.DocumentPageRepository { return nil }
func (u *fakeUow) SessionToolRepository() contract.SessionToolRepository   { return nil }
func (u *fakeUow) SessionEmbeddingRepository() contract.SessionEmbeddingRepository {
	return nil
}
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeSessionRepo{u: u}
}
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeMessageRepo{u: u}
}

func testAIConfig() config.AIConfig {
	return config.AIConfig{DefaultStrategy: "naive", DefaultTopK: 5}
}

type fakeFactory struct{ uow *fakeUow }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeSessionRepo struct{ u *fakeUow }

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error { return nil }
func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error { return nil }
func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error                { return nil }
func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	return r.u.session, nil
}
func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.u.findAllSpecs = specs
	if r.u.session == nil {
		return nil, nil
	}
	return []*entity.ChatSession{r.u.session}, nil
}
func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeMessageRepo struct{ u *fakeUow }

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.u.messages = append(r.u.messages, message)
	return nil
}
func (r *fakeMessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.u.deletedIds = append(r.u.deletedIds, id)
	return nil
}
func (r *fakeMessageRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return nil
}
func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	if len(r.u.messages) == 0 {
		return nil, nil
	}
	return r.u.messages[0], nil
}
func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return r.u.messages, nil
}
func (r *fakeMessageRepo) FindRecentBySession(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	r.u.recentLimit = limit
	if len(r.u.messages) > limit {
		return r.u.messages[len(r.u.messages)-limit:], nil
	}
	return r.u.messages, nil
}
func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.u.messages)), nil
}

func TestCanAccessSession(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name    string
		userId  uuid.UUID
		isAdmin bool
		active  bool
		want    bool
	}{
		{"owner on inactive session", owner, false, false, true},
		{"owner on active session", owner, false, true, true},
		{"admin on inactive session", stranger, true, false, true},
		{"stranger on active session", stranger, false, true, true},
		{"stranger on inactive session", stranger, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &entity.ChatSession{Id: uuid.New(), AdminId: owner, IsActive: tt.active}
			if got := canAccessSession(session, tt.userId, tt.isAdmin); got != tt.want {
				t.Errorf("canAccessSession() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetChatHistoryDeniesStrangerOnInactiveSession(t *testing.T) {
	owner := uuid.New()
	uow := &fakeUow{
		session: &entity.ChatSession{Id: uuid.New(), AdminId: owner, IsActive: false},
	}
	svc := NewChatService(&fakeFactory{uow: uow}, nil, testAIConfig())

	_, err := svc.GetChatHistory(context.Background(), uuid.New(), false, uow.session.Id)
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}
}

func TestGetChatHistoryAllowsStrangerOnActiveSession(t *testing.T) {
	owner := uuid.New()
	uow := &fakeUow{
		session: &entity.ChatSession{Id: uuid.New(), AdminId: owner, IsActive: true},
	}
	for i := 0; i < 3; i++ {
		uow.messages = append(uow.messages, &entity.ChatMessage{
			Id: uuid.New(), ChatSessionId: uow.session.Id, Role: "user", CreatedAt: time.Now(),
		})
	}
	svc := NewChatService(&fakeFactory{uow: uow}, nil, testAIConfig())

	res, err := svc.GetChatHistory(context.Background(), uuid.New(), false, uow.session.Id)
	if err != nil {
		t.Fatalf("GetChatHistory() error = %v", err)
	}
	if len(res.Chats) != 3 {
		t.Errorf("len(chats) = %d, want 3", len(res.Chats))
	}
}

func TestGetChatHistoryLimitsToRecentMessages(t *testing.T) {
	owner := uuid.New()
	uow := &fakeUow{
		session: &entity.ChatSession{Id: uuid.New(), AdminId: owner, IsActive: true},
	}
	svc := NewChatService(&fakeFactory{uow: uow}, nil, testAIConfig())

	if _, err := svc.GetChatHistory(context.Background(), owner, false, uow.session.Id); err != nil {
		t.Fatalf("GetChatHistory() error = %v", err)
	}
	if uow.recentLimit != historyLimit {
		t.Errorf("history fetched with limit %d, want %d", uow.recentLimit, historyLimit)
	}
}

func TestDeleteMessageOwnership(t *testing.T) {
	author := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name       string
		callerId   uuid.UUID
		isAdmin    bool
		wantDenied bool
	}{
		{"author may delete", author, false, false},
		{"admin may delete", stranger, true, false},
		{"stranger denied", stranger, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messageId := uuid.New()
			uow := &fakeUow{
				messages: []*entity.ChatMessage{
					{Id: messageId, UserId: author, Role: "user", Content: "hello"},
				},
			}
			svc := NewChatService(&fakeFactory{uow: uow}, nil, testAIConfig())

			err := svc.DeleteMessage(context.Background(), tt.callerId, tt.isAdmin, messageId)
			if tt.wantDenied {
				if !errors.Is(err, ErrAccessDenied) {
					t.Fatalf("err = %v, want ErrAccessDenied", err)
				}
				if len(uow.deletedIds) != 0 {
					t.Error("message deleted despite denial")
				}
				return
			}
			if err != nil {
				t.Fatalf("DeleteMessage() error = %v", err)
			}
			if len(uow.deletedIds) != 1 || uow.deletedIds[0] != messageId {
				t.Errorf("deleted ids = %v, want [%s]", uow.deletedIds, messageId)
			}
		})
	}
}

func TestDeleteMessageNotFound(t *testing.T) {
	svc := NewChatService(&fakeFactory{uow: &fakeUow{}}, nil, testAIConfig())

	err := svc.DeleteMessage(context.Background(), uuid.New(), true, uuid.New())
	if err == nil || err.Error() != "message not found" {
		t.Fatalf("err = %v, want message not found", err)
	}
}
