package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campuskit/frontdesk/internal/api"
	"github.com/campuskit/frontdesk/internal/backend"
	"github.com/campuskit/frontdesk/internal/config"
	"github.com/campuskit/frontdesk/internal/configs/env"
	"github.com/campuskit/frontdesk/internal/grading"
	mongoInfra "github.com/campuskit/frontdesk/internal/infra/mongo"
	redisInfra "github.com/campuskit/frontdesk/internal/infra/redis"
	"github.com/campuskit/frontdesk/internal/logger"
	"github.com/campuskit/frontdesk/internal/report"
	"github.com/campuskit/frontdesk/internal/repository"
	"github.com/campuskit/frontdesk/internal/session"
	"github.com/campuskit/frontdesk/internal/submission"
	"github.com/campuskit/frontdesk/internal/workspace"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := env.LoadEnv(); err != nil {
		log.Warn().Err(err).Msg("Failed to load .env file, continuing with system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid configuration: %v", err))
	}

	logger.Init(cfg.LogLevel)
	log.Info().Msg("Starting LMS front desk gateway")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect Redis (session continuity store)
	redisClient, err := redisInfra.NewClient(ctx, cfg.RedisHost, cfg.RedisPassword, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Redis client")
	}
	defer redisClient.Close()

	// Connect MongoDB (comparison history cache)
	mongoClient, err := mongoInfra.NewClient(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create MongoDB client")
	}
	defer mongoClient.Close(ctx)

	mongoRepo := repository.NewMongoRepository(mongoClient)
	historyRepo := repository.NewHistoryRepository(mongoRepo)

	// LMS backend client
	backendClient := backend.NewClient(cfg.BackendBaseURL)
	log.Info().Str("backend", cfg.BackendBaseURL).Msg("LMS backend client initialized")

	// Session store
	store := session.NewRedisStore(redisClient, cfg.SessionTTL)

	// Bounded pool for batch web-similarity checks
	pool := workspace.NewPool(ctx, cfg.MaxConcurrentChecks)
	defer pool.Close()

	// Services
	submissionSvc := submission.NewService(backendClient, store)
	gradingSvc := grading.NewService(backendClient)
	workspaceSvc := workspace.NewService(backendClient, historyRepo, pool)
	resolver := report.NewResolver(backendClient, cfg.MatchThreshold)
	exporter := report.NewExporter(cfg.ExportDir, cfg.ReportPageLines)

	handler := api.NewHandler(cfg, submissionSvc, gradingSvc, workspaceSvc, resolver, exporter, backendClient)
	router := api.SetupRoutes(cfg, handler)

	srv := api.StartServer(router, cfg.ServerPort)

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down gracefully...")

	if err := api.ShutdownServer(srv, 30*time.Second); err != nil {
		log.Error().Err(err).Msg("Error shutting down HTTP server")
	}

	log.Info().Msg("Shutdown complete")
}
