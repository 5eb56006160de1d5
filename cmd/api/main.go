package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-screening-backend/config"
	_ "go-screening-backend/docs" // Important for Swagger
	v1 "go-screening-backend/internal/delivery/http/v1"
	"go-screening-backend/internal/domain"
	"go-screening-backend/internal/repository/file"
	"go-screening-backend/internal/repository/memory"
	"go-screening-backend/internal/repository/postgres"
	"go-screening-backend/internal/usecase"
	"go-screening-backend/pkg/auth"
	"go-screening-backend/pkg/database"
	"go-screening-backend/pkg/email"
	"go-screening-backend/pkg/geo"
	"go-screening-backend/pkg/llm"
	"go-screening-backend/pkg/logger"
	"go-screening-backend/pkg/redis"
	"go-screening-backend/pkg/validation"
)

// @title           TalentScout Screening API
// @version         1.0
// @description     Conversational hiring-assistant backend for initial candidate screening.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting screening backend", "port", cfg.Port, "storage", cfg.StorageDriver, "provider", cfg.LLMProvider)

	// 3. Setup Redis (optional; rate limiting falls back to in-memory)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting uses in-memory fallback", "error", err)
		}
	}

	// 4. Setup Stores
	var (
		dbPool        *pgxpool.Pool
		candidateRepo domain.CandidateRepository
		profileRepo   domain.ProfileRepository
	)
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dbPool, err = database.NewPostgresConnection(cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		candidateRepo = postgres.NewCandidateRepository(dbPool)
		profileRepo = postgres.NewProfileRepository(dbPool)
	default:
		candidateRepo, err = file.NewCandidateStore(cfg.DataDir)
		if err != nil {
			logger.Log.Error("Failed to open candidate store", "dir", cfg.DataDir, "error", err)
			os.Exit(1)
		}
		profileRepo, err = file.NewProfileStore(cfg.DataDir)
		if err != nil {
			logger.Log.Error("Failed to open profile store", "dir", cfg.DataDir, "error", err)
			os.Exit(1)
		}
	}

	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	sessionRepo := memory.NewSessionStore(sessionTTL)
	tokens := auth.NewTokenManager(cfg.SessionSecret, sessionTTL)

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - completion emails disabled")
	}

	// 6. Setup LLM Client (nil client means fallback questions only)
	var chatClient llm.ChatClient
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		if cfg.GeminiAPIKey != "" {
			gemini, gerr := llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTemperature)
			if gerr != nil {
				logger.Log.Warn("Gemini client init failed, assessment uses fallback questions", "error", gerr)
			} else {
				chatClient = gemini
			}
		}
	case config.ProviderOpenRouter:
		if cfg.OpenRouterAPIKey != "" {
			openRouter, oerr := llm.NewOpenRouterClient(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.LLMTemperature)
			if oerr != nil {
				logger.Log.Warn("OpenRouter client init failed, assessment uses fallback questions", "error", oerr)
			} else {
				chatClient = openRouter
			}
		}
	}

	// 7. Setup UseCases
	geoValidator := geo.NewValidator(geo.NewNominatimClient(cfg.NominatimBaseURL, time.Duration(cfg.GeocodeTimeoutSeconds)*time.Second))
	interviewService := usecase.NewInterviewService(chatClient, cfg.EvalAnswers)
	conversationUC := usecase.NewConversationUsecase(sessionRepo, candidateRepo, profileRepo, interviewService, geoValidator, emailService, net.DefaultResolver, cfg)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo)
	healthUC := usecase.NewHealthUsecase(dbPool, cfg.LLMProvider, cfg.StorageDriver)

	// 8. Register custom binding tags
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ConversationUC: conversationUC,
		CandidateUC:    candidateUC,
		HealthUC:       healthUC,
		Tokens:         tokens,
		Config:         cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	if err := redis.Close(); err != nil {
		logger.Log.Warn("Redis close failed", "error", err)
	}

	logger.Log.Info("Server exiting")
}
