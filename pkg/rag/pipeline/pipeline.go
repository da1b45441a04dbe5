package pipeline

import (
	"context"
	"fmt"
	"time"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/llm"
	"ai-docchat-be/pkg/rag/strategy"
	"ai-docchat-be/pkg/tools"
	"ai-docchat-be/pkg/websearch"
)

const (
	// llmTimeout bounds every composition call; a timed-out stage falls
	// through to the next one instead of failing the request.
	llmTimeout    = 30 * time.Second
	searchTimeout = 15 * time.Second

	maxSearchResults = 5

	degradedReply = "I'm sorry, I couldn't process your request right now. Please try again."
)

// Answer labels for the persisted message's strategy column.
const (
	SourceTool     = "tool"
	SourceInternet = "internet"
)

// Request is one incoming chat message plus its session configuration.
type Request struct {
	Query         string
	Session       *entity.ChatSession
	Strategy      string
	K             int
	InternetFirst bool
}

// Answer is the pipeline's result: the reply text and a label for what
// produced it.
type Answer struct {
	Text   string
	Source string
}

// stage inspects the request and either produces an answer or declines.
type stage func(ctx context.Context, provider llm.LLMProvider, req *Request) *Answer

// Pipeline resolves a query through an ordered chain of stages:
// explicit tool, routed tool, internet search, retrieval strategy.
// The first stage to produce an answer wins; the final stage always
// produces one.
type Pipeline struct {
	executor   *tools.Executor
	search     *websearch.Client
	strategies *strategy.Engine
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	trace      logger.ILogger
}

func NewPipeline(
	executor *tools.Executor,
	search *websearch.Client,
	strategies *strategy.Engine,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
	trace logger.ILogger,
) *Pipeline {
	return &Pipeline{
		executor:   executor,
		search:     search,
		strategies: strategies,
		uowFactory: uowFactory,
		logger:     log,
		trace:      trace,
	}
}

// Resolve runs the stage chain. It always returns a non-empty answer;
// failures inside a stage degrade to the next one.
func (p *Pipeline) Resolve(ctx context.Context, provider llm.LLMProvider, req *Request) Answer {
	p.trace.Info("pipeline", "Resolving query", map[string]interface{}{
		"session_id":     req.Session.Id.String(),
		"strategy":       req.Strategy,
		"internet_first": req.InternetFirst,
	})

	stages := []struct {
		name string
		run  stage
	}{
		{"explicit_tool", p.explicitToolStage},
		{"routed_tool", p.routedToolStage},
		{"internet_search", p.internetStage},
	}

	for _, s := range stages {
		if answer := s.run(ctx, provider, req); answer != nil {
			p.trace.Info("pipeline", "Stage produced answer", map[string]interface{}{
				"session_id": req.Session.Id.String(),
				"stage":      s.name,
			})
			return *answer
		}
	}

	return p.strategyFallback(ctx, provider, req)
}

func (p *Pipeline) listTools(ctx context.Context, req *Request) []*entity.SessionTool {
	uow := p.uowFactory.NewUnitOfWork(ctx)
	catalog, err := uow.SessionToolRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: req.Session.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		p.logger.Warn("pipeline", "Failed to list session tools", map[string]interface{}{
			"session_id": req.Session.Id.String(),
			"error":      err.Error(),
		})
		return nil
	}
	return catalog
}

func (p *Pipeline) explicitToolStage(ctx context.Context, provider llm.LLMProvider, req *Request) *Answer {
	catalog := p.listTools(ctx, req)
	if len(catalog) == 0 {
		return nil
	}

	inv := tools.ResolveExplicit(req.Query, catalog)
	if inv == nil {
		return nil
	}
	return p.runTool(ctx, provider, req, inv)
}

func (p *Pipeline) routedToolStage(ctx context.Context, provider llm.LLMProvider, req *Request) *Answer {
	catalog := p.listTools(ctx, req)
	if len(catalog) == 0 {
		return nil
	}

	routeCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	inv := tools.Route(routeCtx, provider, req.Query, catalog)
	if inv == nil {
		return nil
	}
	return p.runTool(ctx, provider, req, inv)
}

func (p *Pipeline) runTool(ctx context.Context, provider llm.LLMProvider, req *Request, inv *tools.Invocation) *Answer {
	output := p.executor.Execute(ctx, inv)

	sumCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	text := tools.Summarize(sumCtx, provider, inv.Tool.Name, req.Query, output)
	return &Answer{Text: text, Source: SourceTool}
}

func (p *Pipeline) internetStage(ctx context.Context, provider llm.LLMProvider, req *Request) *Answer {
	if !req.Session.InternetSearchEnabled {
		return nil
	}
	if !req.InternetFirst && !websearch.ShouldSearch(req.Query) {
		return nil
	}

	searchCtx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	results := p.search.Search(searchCtx, req.Query, maxSearchResults)
	if len(results) == 0 {
		p.trace.Info("pipeline", "Internet search returned nothing, falling through", map[string]interface{}{
			"session_id": req.Session.Id.String(),
		})
		return nil
	}

	searchBlock := websearch.FormatForLLM(results)

	// Retrieval context is computed alongside; its failure does not
	// abandon the internet answer.
	retrievalAnswer := ""
	if text, err := p.strategies.Answer(ctx, provider, p.strategyRequest(req)); err == nil {
		retrievalAnswer = text
	} else {
		p.logger.Warn("pipeline", "Retrieval failed during internet blend", map[string]interface{}{
			"session_id": req.Session.Id.String(),
			"error":      err.Error(),
		})
	}

	promptTemplate := constant.ComposeBlendedPrompt
	if req.InternetFirst {
		promptTemplate = constant.ComposeInternetFirstPrompt
	}
	prompt := fmt.Sprintf(promptTemplate, searchBlock, retrievalAnswer, req.Query)

	composeCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	text, err := provider.Generate(composeCtx, prompt)
	if err != nil || text == "" {
		// Composition failed; the raw search block still answers.
		p.logger.Warn("pipeline", "Internet composition failed, returning search results", map[string]interface{}{
			"session_id": req.Session.Id.String(),
		})
		return &Answer{Text: searchBlock, Source: SourceInternet}
	}
	return &Answer{Text: text, Source: SourceInternet}
}

func (p *Pipeline) strategyFallback(ctx context.Context, provider llm.LLMProvider, req *Request) Answer {
	strategyCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	text, err := p.strategies.Answer(strategyCtx, provider, p.strategyRequest(req))
	if err != nil {
		p.logger.Error("pipeline", "Retrieval strategy failed", map[string]interface{}{
			"session_id": req.Session.Id.String(),
			"strategy":   req.Strategy,
			"error":      err.Error(),
		})
		return Answer{Text: degradedReply, Source: req.Strategy}
	}
	return Answer{Text: text, Source: req.Strategy}
}

func (p *Pipeline) strategyRequest(req *Request) strategy.Request {
	return strategy.Request{
		Query:        req.Query,
		SessionId:    req.Session.Id,
		Strategy:     req.Strategy,
		K:            req.K,
		ChunkSize:    req.Session.ChunkSize,
		ChunkOverlap: req.Session.ChunkOverlap,
	}
}
