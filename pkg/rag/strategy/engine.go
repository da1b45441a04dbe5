package strategy

import (
	"context"
	"fmt"
	"strings"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/memory"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/llm"
	pkgmemory "ai-docchat-be/pkg/memory"
	"ai-docchat-be/pkg/utils"
	"ai-docchat-be/pkg/vectorindex"

	"github.com/google/uuid"
)

const (
	Naive      = "naive"
	Chunking   = "chunking"
	Contextual = "contextual"
	MultiQuery = "multi_query"

	// contextual uses the most recent turns only, not the full window
	contextualHistoryTurns = 6

	paraphraseCount = 3
)

// Request carries one retrieval invocation. K defaults to 5; chunk
// parameters only matter for the chunking strategy.
type Request struct {
	Query        string
	SessionId    uuid.UUID
	Strategy     string
	K            int
	ChunkSize    int
	ChunkOverlap int
}

// Engine selects and runs one of the retrieval strategies against a
// session's vector index.
type Engine struct {
	indexes       *vectorindex.Manager
	conversations *memory.ConversationRepository
	uowFactory    unitofwork.RepositoryFactory
	logger        logger.ILogger
}

func NewEngine(indexes *vectorindex.Manager, conversations *memory.ConversationRepository, uowFactory unitofwork.RepositoryFactory, log logger.ILogger) *Engine {
	return &Engine{
		indexes:       indexes,
		conversations: conversations,
		uowFactory:    uowFactory,
		logger:        log,
	}
}

// Answer runs the named strategy. Unknown names fall back to contextual.
// A session without an index answers with the upload prompt, not an error.
func (e *Engine) Answer(ctx context.Context, provider llm.LLMProvider, req Request) (string, error) {
	if req.K <= 0 {
		req.K = 5
	}

	switch req.Strategy {
	case Naive:
		return e.naive(ctx, provider, req)
	case Chunking:
		return e.chunking(ctx, provider, req)
	case MultiQuery:
		return e.multiQuery(ctx, provider, req)
	case Contextual:
		return e.contextual(ctx, provider, req)
	default:
		e.logger.Debug("strategy", "Unknown strategy, using contextual", map[string]interface{}{
			"strategy": req.Strategy,
		})
		return e.contextual(ctx, provider, req)
	}
}

func (e *Engine) naive(ctx context.Context, provider llm.LLMProvider, req Request) (string, error) {
	idx, err := e.indexes.Get(ctx, req.SessionId)
	if err != nil {
		return "", err
	}
	if idx == nil || idx.Len() == 0 {
		return constant.NoDocumentsReply, nil
	}

	results, err := e.indexes.Query(ctx, idx, req.Query, req.K)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(constant.ComposeAnswerPrompt, joinResults(results), req.Query)
	return provider.Generate(ctx, prompt)
}

// chunking re-splits the session's raw pages with the requested
// parameters and retrieves from a throwaway index, ignoring whatever
// chunking produced the persisted one.
func (e *Engine) chunking(ctx context.Context, provider llm.LLMProvider, req Request) (string, error) {
	uow := e.uowFactory.NewUnitOfWork(ctx)
	pages, err := uow.DocumentPageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: req.SessionId},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "page_index"},
	)
	if err != nil {
		return "", err
	}
	if len(pages) == 0 {
		return constant.NoDocumentsReply, nil
	}

	chunkSize := req.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	overlap := req.ChunkOverlap
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}

	var texts []string
	for _, page := range pages {
		if page.Content == "" {
			continue
		}
		texts = append(texts, utils.SplitText(page.Content, chunkSize, overlap)...)
	}
	if len(texts) == 0 {
		return constant.NoDocumentsReply, nil
	}

	idx, err := e.indexes.BuildEphemeral(ctx, texts)
	if err != nil {
		return "", err
	}

	results, err := e.indexes.Query(ctx, idx, req.Query, req.K)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(constant.ComposeAnswerPrompt, joinResults(results), req.Query)
	return provider.Generate(ctx, prompt)
}

// contextual blends retrieved passages with recent conversation turns,
// and records the new exchange on success.
func (e *Engine) contextual(ctx context.Context, provider llm.LLMProvider, req Request) (string, error) {
	idx, err := e.indexes.Get(ctx, req.SessionId)
	if err != nil {
		return "", err
	}
	if idx == nil || idx.Len() == 0 {
		return constant.NoDocumentsReply, nil
	}

	results, err := e.indexes.Query(ctx, idx, req.Query, req.K)
	if err != nil {
		return "", err
	}

	window := e.conversations.GetOrCreate(ctx, req.SessionId)
	history := formatTurns(window.LastTurns(contextualHistoryTurns))

	prompt := fmt.Sprintf(constant.ComposeContextualPrompt, history, joinResults(results), req.Query)
	answer, err := provider.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	window.RecordExchange(req.Query, answer)
	return answer, nil
}

// multiQuery fans the query out into paraphrases, retrieves a slice per
// variant, and deduplicates by exact passage text.
func (e *Engine) multiQuery(ctx context.Context, provider llm.LLMProvider, req Request) (string, error) {
	idx, err := e.indexes.Get(ctx, req.SessionId)
	if err != nil {
		return "", err
	}
	if idx == nil || idx.Len() == 0 {
		return constant.NoDocumentsReply, nil
	}

	queries := []string{req.Query}
	queries = append(queries, e.paraphrase(ctx, provider, req.Query)...)

	perQuery := req.K/(paraphraseCount+1) + 1

	seen := make(map[string]struct{})
	var unique []string
	for _, q := range queries {
		results, err := e.indexes.Query(ctx, idx, q, perQuery)
		if err != nil {
			continue
		}
		for _, r := range results {
			if _, ok := seen[r.Text]; ok {
				continue
			}
			seen[r.Text] = struct{}{}
			unique = append(unique, r.Text)
		}
	}

	if len(unique) > req.K {
		unique = unique[:req.K]
	}

	prompt := fmt.Sprintf(constant.ComposeAnswerPrompt, strings.Join(unique, "\n\n"), req.Query)
	return provider.Generate(ctx, prompt)
}

func (e *Engine) paraphrase(ctx context.Context, provider llm.LLMProvider, query string) []string {
	prompt := fmt.Sprintf(constant.ParaphrasePrompt, paraphraseCount, query)
	reply, err := provider.Generate(ctx, prompt)
	if err != nil {
		e.logger.Debug("strategy", "Paraphrase generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	var out []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == paraphraseCount {
			break
		}
	}
	return out
}

func joinResults(results []vectorindex.Result) string {
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	return strings.Join(texts, "\n\n")
}

func formatTurns(turns []pkgmemory.Turn) string {
	if len(turns) == 0 {
		return "(no prior conversation)"
	}
	var b strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Content)
	}
	return b.String()
}
