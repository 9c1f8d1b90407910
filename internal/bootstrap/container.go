package bootstrap

import (
	"context"
	"log"

	"campus-assistant-be/internal/config"
	"campus-assistant-be/internal/pkg/logger"
	"campus-assistant-be/internal/repository/implementation"
	"campus-assistant-be/internal/repository/memory"
	"campus-assistant-be/internal/service"
	"campus-assistant-be/pkg/embedding"
	"campus-assistant-be/pkg/generation/factory"
	"campus-assistant-be/pkg/ratelimit"

	pktNats "campus-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	ChatService      service.IChatService
	KnowledgeService service.IKnowledgeService

	// Background Services (Exposed for main.go to run)
	AlertService service.IAlertService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS (optional, escalations still reach the audit log without it)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis (only needed when the rate limiter runs on the redis backend)
	var counterStore ratelimit.CounterStore
	if cfg.RateLimit.Backend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-memory counters", err)
			counterStore = ratelimit.NewMemoryStore()
		} else {
			counterStore = ratelimit.NewRedisStore(rdb)
		}
	} else {
		counterStore = ratelimit.NewMemoryStore()
	}

	limiter := ratelimit.NewLimiter(counterStore, ratelimit.Config{
		Window:       cfg.RateLimit.Window,
		IPLimit:      cfg.RateLimit.IPLimit,
		SessionLimit: cfg.RateLimit.SessionLimit,
	})

	// 3. Collaborators
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.EmbeddingModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)

	generator, err := factory.NewProvider(cfg.Ai.Provider, cfg.Ai.OllamaModel, cfg.Ai.OllamaBaseURL, cfg.Ai.GenerationTimeout)
	if err != nil {
		log.Printf("[WARN] %v. Running without generation, responses use fallbacks", err)
		generator = nil
	} else {
		log.Printf("[INFO] Using Generation Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.OllamaModel)
	}

	// 4. Repositories
	itemRepo := implementation.NewKnowledgeItemRepository(db)
	embeddingRepo := implementation.NewKnowledgeEmbeddingRepository(db)
	departmentRepo := implementation.NewDepartmentRepository(db)
	contextCache := memory.NewContextCache(cfg.Pipeline.ContextCacheTTL)

	// 5. Services
	knowledgeService := service.NewKnowledgeService(
		itemRepo,
		embeddingRepo,
		embeddingProvider,
		sysLogger,
	)

	chatService := service.NewChatService(
		cfg,
		limiter,
		knowledgeService,
		departmentRepo,
		contextCache,
		generator,
		pubSub,
		sysLogger,
	)

	escalationLogger := logger.NewIsolatedLogger("logs/escalations.log")
	alertService := service.NewAlertService(pubSub, sysLogger, escalationLogger, natsPub)

	return &Container{
		ChatService:      chatService,
		KnowledgeService: knowledgeService,
		AlertService:     alertService,
		Logger:           sysLogger,
	}
}
