package vectorindex

import (
	"context"
	"fmt"
	"sync"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/embedding"
	"ai-docchat-be/pkg/utils"

	"github.com/google/uuid"
)

const expectedDimension = 768

type sessionEntry struct {
	mu    sync.Mutex // serializes rebuilds for this session
	index *Index
}

// Manager owns the per-session in-memory indices and their durable
// copies in the session_embeddings table. Rebuilds happen off to the
// side; readers keep the old index until the swap.
type Manager struct {
	mu         sync.Mutex // guards the sessions map
	sessions   map[uuid.UUID]*sessionEntry
	uowFactory unitofwork.RepositoryFactory
	embedder   embedding.EmbeddingProvider
	logger     logger.ILogger
}

func NewManager(uowFactory unitofwork.RepositoryFactory, embedder embedding.EmbeddingProvider, log logger.ILogger) *Manager {
	return &Manager{
		sessions:   make(map[uuid.UUID]*sessionEntry),
		uowFactory: uowFactory,
		embedder:   embedder,
		logger:     log,
	}
}

func (m *Manager) entry(sessionId uuid.UUID) *sessionEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[sessionId]
	if !ok {
		e = &sessionEntry{}
		m.sessions[sessionId] = e
	}
	return e
}

// Ingest rebuilds a session's index from all of its accumulated document
// pages. The new index replaces the old one atomically; the durable copy
// is swapped wholesale in the same pass.
func (m *Manager) Ingest(ctx context.Context, sessionId uuid.UUID, chunkSize, chunkOverlap int) (int, error) {
	e := m.entry(sessionId)
	e.mu.Lock()
	defer e.mu.Unlock()

	uow := m.uowFactory.NewUnitOfWork(ctx)
	pages, err := uow.DocumentPageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "page_index"},
	)
	if err != nil {
		return 0, fmt.Errorf("load pages: %w", err)
	}

	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 0
	}

	var chunks []Chunk
	var rows []*entity.SessionEmbedding
	for _, page := range pages {
		if page.Content == "" {
			continue
		}
		for _, text := range utils.SplitText(page.Content, chunkSize, chunkOverlap) {
			resp, err := m.embedder.Generate(text, "retrieval_document")
			if err != nil {
				return 0, fmt.Errorf("embed chunk: %w", err)
			}
			chunks = append(chunks, Chunk{Text: text, Vector: resp.Embedding.Values})
			rows = append(rows, &entity.SessionEmbedding{
				ChatSessionId: sessionId,
				ChunkIndex:    len(rows),
				Content:       text,
				Vector:        resp.Embedding.Values,
			})
		}
	}

	if err := uow.SessionEmbeddingRepository().ReplaceForSession(ctx, sessionId, rows); err != nil {
		return 0, fmt.Errorf("persist embeddings: %w", err)
	}

	e.index = New(chunks)

	m.logger.Info("vectorindex", "Session index rebuilt", map[string]interface{}{
		"session_id": sessionId.String(),
		"chunks":     len(chunks),
	})
	return len(chunks), nil
}

// Get returns the session index, loading the durable copy on a cold
// start. A session with no stored chunks, or with unreadable ones,
// reports absent rather than an error.
func (m *Manager) Get(ctx context.Context, sessionId uuid.UUID) (*Index, error) {
	e := m.entry(sessionId)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.index != nil {
		return e.index, nil
	}

	uow := m.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.SessionEmbeddingRepository().FindAllBySession(ctx, sessionId)
	if err != nil {
		m.logger.Warn("vectorindex", "Failed to load stored index, treating as absent", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil, nil
	}
	if len(rows) == 0 {
		return nil, nil
	}

	chunks := make([]Chunk, 0, len(rows))
	for _, row := range rows {
		if len(row.Vector) != expectedDimension {
			m.logger.Warn("vectorindex", "Stored index is corrupt, treating as absent", map[string]interface{}{
				"session_id": sessionId.String(),
				"dimension":  len(row.Vector),
			})
			return nil, nil
		}
		chunks = append(chunks, Chunk{Text: row.Content, Vector: row.Vector})
	}

	e.index = New(chunks)
	return e.index, nil
}

// Discard drops the in-memory index and its durable copy. Safe to call
// for sessions that never had one.
func (m *Manager) Discard(ctx context.Context, sessionId uuid.UUID) error {
	e := m.entry(sessionId)
	e.mu.Lock()
	e.index = nil
	e.mu.Unlock()

	m.mu.Lock()
	delete(m.sessions, sessionId)
	m.mu.Unlock()

	uow := m.uowFactory.NewUnitOfWork(ctx)
	return uow.SessionEmbeddingRepository().DeleteBySessionId(ctx, sessionId)
}

// BuildEphemeral embeds a set of texts into a throwaway index that is
// never persisted or registered with any session.
func (m *Manager) BuildEphemeral(ctx context.Context, texts []string) (*Index, error) {
	chunks := make([]Chunk, 0, len(texts))
	for _, text := range texts {
		if text == "" {
			continue
		}
		resp, err := m.embedder.Generate(text, "retrieval_document")
		if err != nil {
			return nil, fmt.Errorf("embed text: %w", err)
		}
		chunks = append(chunks, Chunk{Text: text, Vector: resp.Embedding.Values})
	}
	return New(chunks), nil
}

// Query embeds the query text and searches the given index.
func (m *Manager) Query(ctx context.Context, idx *Index, query string, k int) ([]Result, error) {
	if idx == nil || idx.Len() == 0 {
		return nil, nil
	}
	resp, err := m.embedder.Generate(query, "retrieval_query")
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return idx.Search(resp.Embedding.Values, k), nil
}
