package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/ashugangtok/dietiq/internal/config"
	"github.com/ashugangtok/dietiq/internal/repository/mongodb"
	"github.com/ashugangtok/dietiq/internal/repository/sheets"
	"github.com/ashugangtok/dietiq/internal/scheduler"
	"github.com/ashugangtok/dietiq/internal/server/handlers"
	"github.com/ashugangtok/dietiq/internal/server/router"
	reportingsvc "github.com/ashugangtok/dietiq/internal/service/reporting"
	"github.com/ashugangtok/dietiq/internal/session"
	"github.com/ashugangtok/dietiq/pkg/clients/anthropic"
	"github.com/ashugangtok/dietiq/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	} else {
		baseLogger.Warn("sheet credentials missing, sheet sync disabled")
	}

	var archive mongodb.Repository
	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archive = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, snapshot archiving disabled")
	}

	store := session.NewStore()
	reportingSvc := reportingsvc.NewService(baseLogger.Named("svc.reporting"))

	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, generative features disabled")
	}

	recordsHandler := handlers.NewRecordsHandler(store, sheetsRepo, baseLogger.Named("handlers.records"))
	reportsHandler := handlers.NewReportsHandler(store, reportingSvc, baseLogger.Named("handlers.reports"))
	aiHandler := handlers.NewAIHandler(aiClient, reportingSvc, store, baseLogger.Named("handlers.ai"))
	engine := router.New(recordsHandler, reportsHandler, aiHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, store, archive, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
