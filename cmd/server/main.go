package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sysrootix/sitemedusa-sub000/internal/api"
	"github.com/sysrootix/sitemedusa-sub000/internal/config"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository/memory"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository/postgres"
	"github.com/sysrootix/sitemedusa-sub000/internal/service"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting catalog API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	ctx := context.Background()

	var repos *repository.Repositories
	usingDB := false
	db, err := postgres.NewConnection(ctx, cfg.Database)
	switch {
	case err == nil:
		defer db.Close()
		if cfg.Database.AutoMigrate {
			applied, err := postgres.RunMigrations(ctx, db, cfg.Database.MigrationsDir, logger)
			if err != nil {
				logger.Fatal("Failed to run migrations", zap.Error(err))
			}
			logger.Info("Migrations checked", zap.Int("applied", applied))
		}
		repos = postgres.NewRepositories(db, logger)
		usingDB = true
	case cfg.MemoryFallback:
		logger.Warn("Database unavailable, serving from in-memory repositories", zap.Error(err))
		repos = memory.NewRepositories(memory.NewStore())
	default:
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	router := api.NewRouter(cfg, repos, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// rows synced while the server was down may still lack slugs
	if usingDB && service.TriggerSlugBackfill(repos, logger) {
		logger.Info("Startup slug backfill started")
	}

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
