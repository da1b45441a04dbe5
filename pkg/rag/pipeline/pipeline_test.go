package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/internal/repository/memory"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/embedding"
	"ai-docchat-be/pkg/llm"
	"ai-docchat-be/pkg/rag/strategy"
	"ai-docchat-be/pkg/tools"
	"ai-docchat-be/pkg/vectorindex"
	"ai-docchat-be/pkg/websearch"

	"github.com/google/uuid"
)

const testDimension = 768

func basis(i int) []float32 {
	v := make([]float32, testDimension)
	v[i] = 1
	return v
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeUow struct {
	tools      []*entity.SessionTool
	embeddings []*entity.SessionEmbedding
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                 { return nil }
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository   { return nil }
func (u *fakeUow) DocumentRepository() contract.DocumentRepository         { return nil }
func (u *fakeUow) DocumentPageRepository() contract.DocumentPageRepository { return nil }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeMessageRepo{}
}
func (u *fakeUow) SessionToolRepository() contract.SessionToolRepository {
	return &fakeToolRepo{u: u}
}
func (u *fakeUow) SessionEmbeddingRepository() contract.SessionEmbeddingRepository {
	return &fakeEmbeddingRepo{u: u}
}

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeToolRepo struct{ u *fakeUow }

func (r *fakeToolRepo) Create(ctx context.Context, tool *entity.SessionTool) error {
	r.u.tools = append(r.u.tools, tool)
	return nil
}
func (r *fakeToolRepo) Update(ctx context.Context, tool *entity.SessionTool) error { return nil }
func (r *fakeToolRepo) Delete(ctx context.Context, id uuid.UUID) error             { return nil }
func (r *fakeToolRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return nil
}
func (r *fakeToolRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SessionTool, error) {
	if len(r.u.tools) == 0 {
		return nil, nil
	}
	return r.u.tools[0], nil
}
func (r *fakeToolRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionTool, error) {
	return r.u.tools, nil
}
func (r *fakeToolRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.u.tools)), nil
}

type fakeMessageRepo struct{}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error { return nil }
func (r *fakeMessageRepo) Delete(ctx context.Context, id uuid.UUID) error                { return nil }
func (r *fakeMessageRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return nil
}
func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	return nil, nil
}
func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return nil, nil
}
func (r *fakeMessageRepo) FindRecentBySession(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	return nil, nil
}
func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeEmbeddingRepo struct{ u *fakeUow }

func (r *fakeEmbeddingRepo) CreateBulk(ctx context.Context, embeddings []*entity.SessionEmbedding) error {
	return nil
}
func (r *fakeEmbeddingRepo) ReplaceForSession(ctx context.Context, sessionId uuid.UUID, embeddings []*entity.SessionEmbedding) error {
	return nil
}
func (r *fakeEmbeddingRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return nil
}
func (r *fakeEmbeddingRepo) FindAllBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.SessionEmbedding, error) {
	return r.u.embeddings, nil
}
func (r *fakeEmbeddingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.u.embeddings)), nil
}

type fakeEmbedder struct{}

func (fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: basis(0)},
	}, nil
}

// stubProvider routes the tool router to a fixed decision and answers
// everything else with a canned reply.
type stubProvider struct {
	routerReply  string
	composeReply string
	composeErr   error
	prompts      []string
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.composeReply, p.composeErr
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	if strings.Contains(prompt, "tool router") {
		return p.routerReply, nil
	}
	p.prompts = append(p.prompts, prompt)
	return p.composeReply, p.composeErr
}

func newTestPipeline(uow *fakeUow, search *websearch.Client) *Pipeline {
	factory := &fakeFactory{uow: uow}
	manager := vectorindex.NewManager(factory, fakeEmbedder{}, nopLogger{})
	conversations := memory.NewConversationRepository(factory)
	engine := strategy.NewEngine(manager, conversations, factory, nopLogger{})
	executor := tools.NewExecutor(nopLogger{})
	if search == nil {
		search = websearch.NewClient()
	}
	return NewPipeline(executor, search, engine, factory, nopLogger{}, nopLogger{})
}

// newSearchServer serves a fixed instant answer and an empty web page
// so tests can exercise the internet stage hermetically.
func newSearchServer(t *testing.T, answer string) *websearch.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ia", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"Heading": "AI Regulation", "Abstract": %q, "AbstractURL": "https://example.org/ai-act"}`, answer)
	})
	mux.HandleFunc("/web", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body></body></html>"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return websearch.NewClientWithEndpoints(srv.URL+"/ia", srv.URL+"/web")
}

func testSession() *entity.ChatSession {
	return &entity.ChatSession{
		Id:        uuid.New(),
		Name:      "test",
		IsActive:  true,
		ChunkSize: 1000,
	}
}

func TestResolveFallsThroughToStrategy(t *testing.T) {
	p := newTestPipeline(&fakeUow{}, nil)
	provider := &stubProvider{routerReply: `{"use_tool": false}`, composeReply: "composed"}

	answer := p.Resolve(context.Background(), provider, &Request{
		Query:    "what does the document say about pricing?",
		Session:  testSession(),
		Strategy: strategy.Naive,
		K:        3,
	})

	if answer.Source != strategy.Naive {
		t.Errorf("source = %q, want %q", answer.Source, strategy.Naive)
	}
	if answer.Text != constant.NoDocumentsReply {
		t.Errorf("text = %q, want upload prompt", answer.Text)
	}
}

func TestResolveExplicitToolWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("22 degrees and clear"))
	}))
	defer srv.Close()

	uow := &fakeUow{
		tools: []*entity.SessionTool{
			{Id: uuid.New(), Name: "weather", Type: entity.ToolTypeApi, ApiUrl: srv.URL, HttpMethod: "GET"},
		},
	}
	p := newTestPipeline(uow, nil)
	provider := &stubProvider{composeReply: "It is 22 degrees and clear outside."}

	answer := p.Resolve(context.Background(), provider, &Request{
		Query:   "run weather",
		Session: testSession(),
	})

	if answer.Source != SourceTool {
		t.Errorf("source = %q, want %q", answer.Source, SourceTool)
	}
	if answer.Text != "It is 22 degrees and clear outside." {
		t.Errorf("text = %q", answer.Text)
	}
}

func TestResolveRoutedToolWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("42"))
	}))
	defer srv.Close()

	uow := &fakeUow{
		tools: []*entity.SessionTool{
			{Id: uuid.New(), Name: "calculator", Type: entity.ToolTypeApi, ApiUrl: srv.URL, HttpMethod: "GET"},
		},
	}
	p := newTestPipeline(uow, nil)
	provider := &stubProvider{
		routerReply:  `{"use_tool": true, "tool_name": "calculator", "arguments": {}}`,
		composeReply: "The answer is 42.",
	}

	// No explicit mention, so the router decides.
	answer := p.Resolve(context.Background(), provider, &Request{
		Query:   "what is six times seven?",
		Session: testSession(),
	})

	if answer.Source != SourceTool {
		t.Errorf("source = %q, want %q", answer.Source, SourceTool)
	}
}

func TestResolveToolFailureStillAnswers(t *testing.T) {
	uow := &fakeUow{
		tools: []*entity.SessionTool{
			{Id: uuid.New(), Name: "broken", Type: entity.ToolTypeApi, ApiUrl: "http://127.0.0.1:1", HttpMethod: "GET"},
		},
	}
	p := newTestPipeline(uow, nil)
	provider := &stubProvider{composeReply: "The tool could not be reached; try again later."}

	answer := p.Resolve(context.Background(), provider, &Request{
		Query:   "run broken",
		Session: testSession(),
	})

	if answer.Source != SourceTool {
		t.Errorf("source = %q, want %q", answer.Source, SourceTool)
	}
	if answer.Text == "" {
		t.Error("tool failure must still produce text")
	}
}

func TestResolveDegradedReplyOnStrategyFailure(t *testing.T) {
	sessionId := uuid.New()
	uow := &fakeUow{
		embeddings: []*entity.SessionEmbedding{
			{ChatSessionId: sessionId, ChunkIndex: 0, Content: "a passage", Vector: basis(0)},
		},
	}
	p := newTestPipeline(uow, nil)
	provider := &stubProvider{
		routerReply: `{"use_tool": false}`,
		composeErr:  errors.New("model unavailable"),
	}

	session := testSession()
	session.Id = sessionId

	answer := p.Resolve(context.Background(), provider, &Request{
		Query:    "what does the passage say?",
		Session:  session,
		Strategy: strategy.Naive,
	})

	if answer.Text != degradedReply {
		t.Errorf("text = %q, want degraded reply", answer.Text)
	}
	if answer.Source != strategy.Naive {
		t.Errorf("source = %q, want %q", answer.Source, strategy.Naive)
	}
}

func TestInternetStageSkippedWhenDisabled(t *testing.T) {
	p := newTestPipeline(&fakeUow{}, nil)
	provider := &stubProvider{routerReply: `{"use_tool": false}`, composeReply: "composed"}

	session := testSession()
	session.InternetSearchEnabled = false

	// InternetFirst cannot override a session with search disabled.
	answer := p.Resolve(context.Background(), provider, &Request{
		Query:         "latest news about the market today",
		Session:       session,
		Strategy:      strategy.Naive,
		InternetFirst: true,
	})

	if answer.Source == SourceInternet {
		t.Errorf("internet stage ran despite being disabled")
	}
}

func TestInternetStageComposesBlendedAnswer(t *testing.T) {
	search := newSearchServer(t, "The AI Act entered into force this year.")
	p := newTestPipeline(&fakeUow{}, search)
	provider := &stubProvider{composeReply: "Regulation has tightened; the AI Act now applies."}

	session := testSession()
	session.InternetSearchEnabled = true

	answer := p.Resolve(context.Background(), provider, &Request{
		Query:    "latest news on AI regulation",
		Session:  session,
		Strategy: strategy.Naive,
	})

	if answer.Source != SourceInternet {
		t.Fatalf("source = %q, want %q", answer.Source, SourceInternet)
	}
	if answer.Text != provider.composeReply {
		t.Errorf("text = %q, want composed answer", answer.Text)
	}
	// The composition prompt carries the formatted search block.
	found := false
	for _, prompt := range provider.prompts {
		if strings.Contains(prompt, "The AI Act entered into force this year.") {
			found = true
		}
	}
	if !found {
		t.Error("no composition prompt contained the search results")
	}
}

func TestInternetCompositionFailureReturnsSearchBlock(t *testing.T) {
	search := newSearchServer(t, "The AI Act entered into force this year.")
	p := newTestPipeline(&fakeUow{}, search)
	provider := &stubProvider{composeErr: errors.New("model unavailable")}

	session := testSession()
	session.InternetSearchEnabled = true

	answer := p.Resolve(context.Background(), provider, &Request{
		Query:    "latest news on AI regulation",
		Session:  session,
		Strategy: strategy.Naive,
	})

	if answer.Source != SourceInternet {
		t.Fatalf("source = %q, want %q", answer.Source, SourceInternet)
	}
	if !strings.Contains(answer.Text, "The AI Act entered into force this year.") {
		t.Errorf("text = %q, want raw search results", answer.Text)
	}
	if !strings.Contains(answer.Text, "1. ") {
		t.Errorf("text = %q, want numbered search block", answer.Text)
	}
}

func TestInternetFirstForcesSearchAndCompose(t *testing.T) {
	search := newSearchServer(t, "The AI Act entered into force this year.")
	p := newTestPipeline(&fakeUow{}, search)
	provider := &stubProvider{composeReply: "Based on current coverage, the rules are in force."}

	session := testSession()
	session.InternetSearchEnabled = true

	// The query would never pass the search heuristic on its own.
	answer := p.Resolve(context.Background(), provider, &Request{
		Query:         "summarize the regulation section of my document",
		Session:       session,
		Strategy:      strategy.Naive,
		InternetFirst: true,
	})

	if answer.Source != SourceInternet {
		t.Fatalf("source = %q, want %q", answer.Source, SourceInternet)
	}
	found := false
	for _, prompt := range provider.prompts {
		if strings.Contains(prompt, "Answer primarily from the internet search results") {
			found = true
		}
	}
	if !found {
		t.Error("internet-first request did not use the internet-first composition prompt")
	}
}
