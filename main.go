package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/config"
	"github.com/smartcrm/engine/pkg/database"
	"github.com/smartcrm/engine/pkg/handlers"
	"github.com/smartcrm/engine/pkg/llm"
	"github.com/smartcrm/engine/pkg/logging"
	"github.com/smartcrm/engine/pkg/middleware"
	"github.com/smartcrm/engine/pkg/repositories"
	"github.com/smartcrm/engine/pkg/retry"
	"github.com/smartcrm/engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("openai_model", cfg.OpenAI.Model),
		zap.String("gemini_model", cfg.Gemini.Model),
		zap.String("anthropic_model", cfg.Anthropic.Model))

	ctx := context.Background()

	// The database may still be coming up when we start; retry the initial
	// connection before giving up.
	db, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (*database.DB, error) {
		return database.NewConnection(ctx, &database.Config{
			URL:            cfg.Database.ConnectionString(),
			MaxConnections: cfg.Database.MaxConnections,
		})
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if redisClient == nil {
		logger.Info("Redis not configured; enrichment cache disabled")
	}

	rules, err := services.LoadRules(cfg.Agents.RulesPath)
	if err != nil {
		logger.Fatal("Failed to load automation rules",
			zap.String("path", cfg.Agents.RulesPath),
			zap.Error(err))
	}
	logger.Info("Automation rules loaded",
		zap.String("path", cfg.Agents.RulesPath),
		zap.Int("rules", len(rules.Rules)))

	// Repositories
	contactRepo := repositories.NewContactRepository(db)
	dealRepo := repositories.NewDealRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	agentLogRepo := repositories.NewAgentLogRepository(db)
	actionRepo := repositories.NewActionRepository(db)
	videoJobRepo := repositories.NewVideoJobRepository(db)
	triggerRepo := repositories.NewTriggerRepository(db)

	// Services
	llmFactory := llm.NewFactory(cfg, logger)
	agentService := services.NewAgentService(contactRepo, dealRepo, activityRepo, agentLogRepo, videoJobRepo, llmFactory, logger)
	engagementService := services.NewEngagementService(contactRepo, actionRepo, logger)
	dispatchService := services.NewDispatchService(agentService, contactRepo,
		time.Duration(cfg.Agents.DispatchTimeoutSeconds)*time.Second, logger)
	triggerService := services.NewTriggerService(triggerRepo, logger)
	enrichmentService := services.NewEnrichmentService(contactRepo, agentLogRepo, llmFactory, redisClient,
		time.Duration(cfg.Agents.EnrichmentCacheTTLMinutes)*time.Minute, logger)
	automationService := services.NewAutomationService(rules, contactRepo, dealRepo, actionRepo, agentService, logger)

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewAgentsHandler(agentService, enrichmentService, logger).RegisterRoutes(mux)
	handlers.NewEngagementHandler(engagementService, logger).RegisterRoutes(mux)
	handlers.NewWebhookHandler(dispatchService, logger).RegisterRoutes(mux)
	handlers.NewTriggersHandler(triggerService, logger).RegisterRoutes(mux)
	handlers.NewAutomationHandler(automationService, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(middleware.CORS(cfg.AllowedOrigin)(mux))

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting smartcrm-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
