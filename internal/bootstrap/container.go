package bootstrap

import (
	"log"

	"documind-be/internal/config"
	"documind-be/internal/controller"
	"documind-be/internal/pkg/logger"
	"documind-be/internal/repository/memory"
	"documind-be/internal/repository/unitofwork"
	"documind-be/internal/service"
	"documind-be/pkg/answer"
	"documind-be/pkg/embedding"
	"documind-be/pkg/embedding/jina"
	"documind-be/pkg/events"
	"documind-be/pkg/llm"
	"documind-be/pkg/llm/factory"
	"documind-be/pkg/pdf"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatbotController     controller.IChatbotController
	SessionController     controller.ISessionController
	NoteController        controller.INoteController
	WorkspaceController   controller.IWorkspaceController
	DiagnosticsController controller.IDiagnosticsController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// PubSub handle so main.go can close it on shutdown
	PubSub *gochannel.GoChannel

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "jina":
		embeddingProvider = jina.NewJinaProvider(cfg.Ai.JinaAPIKey)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	case "gemini":
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: GEMINI (%s)", cfg.Ai.EmbeddingModel)
	default:
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	}

	// llmFor builds a generation provider per session; an empty name means
	// the configured default.
	llmFor := service.LLMFactoryFunc(func(provider string) (llm.LLMProvider, error) {
		if provider == "" {
			provider = cfg.Ai.LLMProvider
		}
		return factory.NewLLMProvider(
			provider,
			cfg.Ai.LLMModel,
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.GeminiAPIKey,
			cfg.Ai.HuggingFaceAPIKey,
		)
	})
	if _, err := llmFor(""); err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	defaultVariant, err := answer.ParseVariant(cfg.Ai.PromptVariant)
	if err != nil {
		log.Fatalf("[FATAL] Invalid PROMPT_VARIANT: %v", err)
	}

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, events.Topic)
	sessionService := service.NewSessionService(uowFactory, publisherService, sysLogger)

	sessionCache := memory.NewActiveSessionCache(service.NewSessionRehydrator(
		sessionService,
		embeddingProvider,
		llmFor,
		cfg.Ai.RetrievalTopK,
	))

	chatbotService := service.NewChatbotService(
		service.ChatbotOptions{
			IndexDir:        cfg.Storage.IndexDir,
			AllowedExts:     cfg.Storage.AllowedExtensions,
			ChunkSize:       cfg.Ai.ChunkSize,
			ChunkOverlap:    cfg.Ai.ChunkOverlap,
			RetrievalTopK:   cfg.Ai.RetrievalTopK,
			DefaultProvider: cfg.Ai.LLMProvider,
			DefaultVariant:  defaultVariant,
		},
		sessionService,
		sessionCache,
		pdf.New(),
		embeddingProvider,
		llmFor,
		publisherService,
		sysLogger,
	)

	noteService := service.NewNoteService(uowFactory)
	workspaceService := service.NewWorkspaceService(uowFactory)

	// 5. Activity Feed
	activityLogger := logger.NewIsolatedLogger(cfg.App.ActivityLogPath)
	consumerService := service.NewConsumerService(pubSub, events.Topic, activityLogger, sysLogger)

	// 6. Controllers
	return &Container{
		ChatbotController:     controller.NewChatbotController(chatbotService),
		SessionController:     controller.NewSessionController(sessionService, chatbotService),
		NoteController:        controller.NewNoteController(noteService),
		WorkspaceController:   controller.NewWorkspaceController(workspaceService),
		DiagnosticsController: controller.NewDiagnosticsController(activityLogger),

		ConsumerService: consumerService,
		PubSub:          pubSub,
		Logger:          sysLogger,
	}
}
