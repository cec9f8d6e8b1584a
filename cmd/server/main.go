package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/chessprofile/internal/analysis"
	"github.com/vytor/chessprofile/internal/api"
	"github.com/vytor/chessprofile/internal/chesscom"
	"github.com/vytor/chessprofile/internal/config"
	"github.com/vytor/chessprofile/internal/db"
	"github.com/vytor/chessprofile/internal/engine"
	"github.com/vytor/chessprofile/internal/logger"
	"github.com/vytor/chessprofile/internal/repository/sqlite"
	"github.com/vytor/chessprofile/internal/services"
	"github.com/vytor/chessprofile/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("ChessProfile Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("stockfish_path=%s", cfg.StockfishPath)
	log.Debug("stockfish_depth=%d", cfg.StockfishDepth)
	log.Debug("engine_pool_size=%d", cfg.EnginePoolSize)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("game_analysis_limit=%d", cfg.GameAnalysisLimit)
	log.Debug("archive_limit=%d", cfg.ArchiveLimit)
	log.Debug("max_concurrent_archive=%d", cfg.MaxConcurrentArchive)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	enginePool, err := engine.NewPool(cfg.StockfishPath, cfg.EnginePoolSize)
	if err != nil {
		log.Error("failed to start engine pool: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing engine pool")
		enginePool.Close()
	}()

	savePool := worker.NewPool(cfg.SaveWorkerCount, cfg.SaveQueueSize)

	reportRepo := sqlite.NewReportRepository(database.DB)
	gameService := services.NewGameService(chesscom.New(), cfg.ArchiveLimit, cfg.MaxConcurrentArchive)
	analyzer := analysis.NewAnalyzer(cfg.StockfishDepth)
	analyzeService := services.NewAnalyzeService(gameService, services.NewEnginePool(enginePool), analyzer, savePool, reportRepo, cfg.GameAnalysisLimit)
	playstyleService := services.NewPlaystyleService(gameService)
	reportService := services.NewReportService(reportRepo)

	srv := api.NewServer(analyzeService, playstyleService, reportService)

	ctx, cancel := context.WithCancel(context.Background())
	savePool.Start(ctx)

	httpServer := &http.Server{
		Addr:        cfg.Addr,
		Handler:     srv.Routes(),
		ReadTimeout: 15 * time.Second,
		// Engine analysis of a full batch can take a while.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Drain queued report saves before cancelling the worker context.
	log.Debug("stopping worker pool")
	savePool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("ChessProfile Server Stopped")
	log.Info("===========================================")
}
