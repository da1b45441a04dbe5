package bootstrap

import (
	"log"

	"ai-docchat-be/internal/config"
	"ai-docchat-be/internal/controller"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/memory"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/internal/service"
	"ai-docchat-be/pkg/embedding"
	"ai-docchat-be/pkg/rag/pipeline"
	"ai-docchat-be/pkg/rag/strategy"
	"ai-docchat-be/pkg/tools"
	"ai-docchat-be/pkg/vectorindex"
	"ai-docchat-be/pkg/websearch"

	pktNats "ai-docchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	SessionController  controller.ISessionController
	DocumentController controller.IDocumentController
	ToolController     controller.IToolController
	ChatController     controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	ragTrace := logger.NewIsolatedLogger(cfg.App.RagLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. AI Infrastructure
	embeddingProvider := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	log.Printf("[INFO] Default LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	conversationRepo := memory.NewConversationRepository(uowFactory)
	indexManager := vectorindex.NewManager(uowFactory, embeddingProvider, sysLogger)
	strategyEngine := strategy.NewEngine(indexManager, conversationRepo, uowFactory, ragTrace)
	searchClient := websearch.NewClient()
	toolExecutor := tools.NewExecutor(sysLogger)
	ragPipeline := pipeline.NewPipeline(toolExecutor, searchClient, strategyEngine, uowFactory, sysLogger, ragTrace)

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.IngestTopic)
	consumerService := service.NewConsumerService(pubSub, cfg.App.IngestTopic, uowFactory, indexManager)

	authService := service.NewAuthService(uowFactory, cfg.Auth)
	sessionService := service.NewSessionService(uowFactory, indexManager, conversationRepo, natsPub, sysLogger)
	documentService := service.NewDocumentService(uowFactory, publisherService, natsPub, sysLogger)
	toolService := service.NewToolService(uowFactory)
	chatService := service.NewChatService(uowFactory, ragPipeline, cfg.Ai)

	// 5. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		SessionController:  controller.NewSessionController(sessionService),
		DocumentController: controller.NewDocumentController(documentService),
		ToolController:     controller.NewToolController(toolService),
		ChatController:     controller.NewChatController(chatService),
		ConsumerService:    consumerService,
	}
}
