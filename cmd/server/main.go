package main

import (
	"context"
	"log"

	"verdic-backend/config"
	"verdic-backend/handlers"
	"verdic-backend/llm"
	"verdic-backend/logger"
	"verdic-backend/middleware"
	"verdic-backend/repository"
	"verdic-backend/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	db, err := initPostgres(cfg)
	if err != nil {
		zapLogger.Fatal("Failed to initialize Postgres: " + err.Error())
	}
	defer db.Close()
	zapLogger.Info("Postgres connection established")

	// Initialize repositories
	caseRepo := repository.NewCaseRepository(db)
	precedentRepo := repository.NewPrecedentRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// Initialize AI gateway client
	aiClient := llm.NewClient(llm.Config{
		BaseURL: cfg.AIGatewayURL,
		APIKey:  cfg.AIGatewayKey,
		Model:   cfg.AIModel,
		Timeout: cfg.AIRequestTimeout,
	}, zapLogger)

	// Initialize services
	precedentService := service.NewPrecedentService(
		service.PrecedentWithCaseStore(caseRepo),
		service.PrecedentWithCompleter(aiClient),
		service.PrecedentWithLogger(zapLogger),
	)
	researchService := service.NewResearchService(
		service.ResearchWithCompleter(aiClient),
		service.ResearchWithLogger(zapLogger),
	)
	assistantService := service.NewAssistantService(
		service.AssistantWithCompleter(aiClient),
		service.AssistantWithLogger(zapLogger),
	)
	caseService := service.NewCaseService(
		service.CaseWithStore(caseRepo),
		service.CaseWithLogger(zapLogger),
	)

	// Assemble router
	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:      middleware.NewAuthMiddleware(cfg.JWTSecret, zapLogger),
		Precedent: handlers.NewPrecedentHandler(precedentService, zapLogger),
		Research:  handlers.NewResearchHandler(researchService, precedentRepo, zapLogger),
		Assistant: handlers.NewAssistantHandler(assistantService, zapLogger),
		Cases:     handlers.NewCaseHandler(caseService, zapLogger),
		Profile:   handlers.NewProfileHandler(profileRepo, zapLogger),
	})

	zapLogger.Info("Server starting on port " + cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		zapLogger.Fatal("Failed to start server: " + err.Error())
	}
}

func initPostgres(cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return pool, nil
}
