package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"tagboard/internal/adapters/eventbroker/nats"
	"tagboard/internal/adapters/handlers/http/chi"
	"tagboard/internal/adapters/handlers/http/chi/v1/tag"
	"tagboard/internal/adapters/repository/postgres"
	"tagboard/internal/adapters/storage/minio"
	"tagboard/internal/config"
	"tagboard/internal/core/port"
	"tagboard/internal/core/service/cleanup"
	tagservice "tagboard/internal/core/service/tag"
	"time"

	_ "github.com/lib/pq"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Env.IsProd() {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}(db)
	logger.Info("db connection established")

	//storage
	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}

	//events, optional
	var publisher port.EventPublisher
	if cfg.NATS.Enabled() {
		natsPublisher, err := nats.NewNATSPublisher(ctx, cfg.NATS, logger)
		if err != nil {
			logger.Error("failed to init nats publisher", "error", err)
			os.Exit(1)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	} else {
		logger.Warn("NATS_URL not set, tag events disabled")
	}

	//repositories
	tagRepo := postgres.NewSqlTagRepository(db)

	tagService := tagservice.NewTagService(tagRepo, publisher, minioAdapter, logger)
	cleanupService := cleanup.NewCleanupService(minioAdapter, cfg.Minio.DownloadURLExpiry, logger)

	//http
	tagHandler := tag.NewTagHandlerV1(tagService, logger)

	router := chi.NewRouter(logger, tagHandler, cfg.Env.Env)
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		initCleanupTask(ctx, cleanupService, cfg.Minio.CleanupEvery, logger)
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}

// initCleanupTask sweeps expired exports until ctx is done
func initCleanupTask(ctx context.Context, service port.CleanupService, every time.Duration, logger *slog.Logger) {
	if every <= 0 {
		logger.Info("export cleanup disabled")
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("export cleanup task initialized", "interval", every)

	for {
		select {
		case <-ticker.C:
			if _, err := service.CleanupExpiredExports(ctx, time.Now()); err != nil {
				logger.Error("failed to cleanup expired exports", "error", err)
			}
		case <-ctx.Done():
			logger.Info("export cleanup task stopped")
			return
		}
	}
}
