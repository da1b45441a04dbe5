package memory

import (
	"context"
	"sync"

	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/memory"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ConversationRepository holds per-session conversation windows in
// process memory. Windows never expire; a session delete evicts its
// window explicitly.
type ConversationRepository struct {
	cache      *cache.Cache
	mu         sync.Mutex // guards window creation
	uowFactory unitofwork.RepositoryFactory
}

func NewConversationRepository(uowFactory unitofwork.RepositoryFactory) *ConversationRepository {
	c := cache.New(cache.NoExpiration, 0)
	return &ConversationRepository{
		cache:      c,
		uowFactory: uowFactory,
	}
}

// GetOrCreate returns the window for a session, creating and seeding it
// from the most recent persisted messages on first access. The window is
// seeded at most once per process; later persisted writes do not refresh it.
func (r *ConversationRepository) GetOrCreate(ctx context.Context, sessionId uuid.UUID) *memory.Window {
	key := sessionId.String()
	if x, found := r.cache.Get(key); found {
		return x.(*memory.Window)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(key); found {
		return x.(*memory.Window)
	}

	w := memory.NewWindow(memory.DefaultMaxExchanges)

	uow := r.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindRecentBySession(ctx, sessionId, memory.DefaultMaxExchanges*2)
	if err == nil && len(messages) > 0 {
		turns := make([]memory.Turn, 0, len(messages))
		for _, m := range messages {
			turns = append(turns, memory.Turn{Role: m.Role, Content: m.Content})
		}
		w.Seed(turns)
	}

	r.cache.Set(key, w, cache.NoExpiration)
	return w
}

// Get returns the window if it already exists in memory.
func (r *ConversationRepository) Get(sessionId uuid.UUID) (*memory.Window, bool) {
	if x, found := r.cache.Get(sessionId.String()); found {
		return x.(*memory.Window), true
	}
	return nil, false
}

func (r *ConversationRepository) Delete(sessionId uuid.UUID) {
	r.cache.Delete(sessionId.String())
}
