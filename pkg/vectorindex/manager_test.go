package vectorindex

import (
	"context"
	"testing"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeUow struct {
	pages      []*entity.DocumentPage
	embeddings []*entity.SessionEmbedding
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                 { return nil }
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository   { return nil }
func (u *fakeUow) DocumentRepository() contract.DocumentRepository         { return nil }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository   { return nil }
func (u *fakeUow) SessionToolRepository() contract.SessionToolRepository   { return nil }
func (u *fakeUow) DocumentPageRepository() contract.DocumentPageRepository { return &fakePageRepo{u: u} }
func (u *fakeUow) SessionEmbeddingRepository() contract.SessionEmbeddingRepository {
	return &fakeEmbeddingRepo{u: u}
}

type fakeFactory struct{ uow *fakeUow }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakePageRepo struct{ u *fakeUow }

func (r *fakePageRepo) CreateBulk(ctx context.Context, pages []*entity.DocumentPage) error {
	r.u.pages = append(r.u.pages, pages...)
	return nil
}
func (r *fakePageRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}
func (r *fakePageRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error { return nil }
func (r *fakePageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentPage, error) {
	return r.u.pages, nil
}
func (r *fakePageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.u.pages)), nil
}

type fakeEmbeddingRepo struct{ u *fakeUow }

func (r *fakeEmbeddingRepo) CreateBulk(ctx context.Context, embeddings []*entity.SessionEmbedding) error {
	r.u.embeddings = append(r.u.embeddings, embeddings...)
	return nil
}
func (r *fakeEmbeddingRepo) ReplaceForSession(ctx context.Context, sessionId uuid.UUID, embeddings []*entity.SessionEmbedding) error {
	r.u.embeddings = embeddings
	return nil
}
func (r *fakeEmbeddingRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.u.embeddings = nil
	return nil
}
func (r *fakeEmbeddingRepo) FindAllBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.SessionEmbedding, error) {
	return r.u.embeddings, nil
}
func (r *fakeEmbeddingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.u.embeddings)), nil
}

type unitEmbedder struct{}

func (unitEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	v := make([]float32, expectedDimension)
	v[0] = 1
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: v},
	}, nil
}

func TestIngestRebuildsFromAllPages(t *testing.T) {
	sessionId := uuid.New()
	uow := &fakeUow{
		pages: []*entity.DocumentPage{
			{ChatSessionId: sessionId, PageIndex: 0, Content: "document A page one"},
		},
	}
	m := NewManager(&fakeFactory{uow: uow}, unitEmbedder{}, nopLogger{})

	count, err := m.Ingest(context.Background(), sessionId, 1000, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	// A second document accumulates; the rebuild covers both.
	uow.pages = append(uow.pages, &entity.DocumentPage{
		ChatSessionId: sessionId, PageIndex: 0, Content: "document B page one",
	})

	count, err = m.Ingest(context.Background(), sessionId, 1000, 0)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	idx, err := m.Get(context.Background(), sessionId)
	assert.NoError(t, err)
	if idx == nil {
		t.Fatal("expected rebuilt index")
	}
	assert.Equal(t, 2, idx.Len())

	var texts []string
	for _, c := range idx.Chunks() {
		texts = append(texts, c.Text)
	}
	assert.Contains(t, texts, "document B page one")
}

func TestGetLoadsDurableCopyOnColdStart(t *testing.T) {
	sessionId := uuid.New()
	v := make([]float32, expectedDimension)
	v[0] = 1
	uow := &fakeUow{
		embeddings: []*entity.SessionEmbedding{
			{ChatSessionId: sessionId, ChunkIndex: 0, Content: "persisted chunk", Vector: v},
		},
	}
	m := NewManager(&fakeFactory{uow: uow}, unitEmbedder{}, nopLogger{})

	idx, err := m.Get(context.Background(), sessionId)
	assert.NoError(t, err)
	if idx == nil {
		t.Fatal("expected loaded index")
	}
	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, "persisted chunk", idx.Chunks()[0].Text)
}

func TestGetCorruptDimensionTreatedAsAbsent(t *testing.T) {
	sessionId := uuid.New()
	uow := &fakeUow{
		embeddings: []*entity.SessionEmbedding{
			{ChatSessionId: sessionId, ChunkIndex: 0, Content: "bad chunk", Vector: []float32{1, 2, 3}},
		},
	}
	m := NewManager(&fakeFactory{uow: uow}, unitEmbedder{}, nopLogger{})

	idx, err := m.Get(context.Background(), sessionId)
	assert.NoError(t, err)
	assert.Nil(t, idx, "corrupt stored index must read as absent")
}

func TestGetEmptySession(t *testing.T) {
	m := NewManager(&fakeFactory{uow: &fakeUow{}}, unitEmbedder{}, nopLogger{})

	idx, err := m.Get(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, idx)
}

func TestDiscardIsIdempotent(t *testing.T) {
	sessionId := uuid.New()
	uow := &fakeUow{
		pages: []*entity.DocumentPage{
			{ChatSessionId: sessionId, PageIndex: 0, Content: "some content"},
		},
	}
	m := NewManager(&fakeFactory{uow: uow}, unitEmbedder{}, nopLogger{})

	_, err := m.Ingest(context.Background(), sessionId, 1000, 0)
	assert.NoError(t, err)

	assert.NoError(t, m.Discard(context.Background(), sessionId))
	assert.NoError(t, m.Discard(context.Background(), sessionId))

	idx, err := m.Get(context.Background(), sessionId)
	assert.NoError(t, err)
	assert.Nil(t, idx, "discarded session still has an index")
}
