package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scopeworks_backend/internal/adapters/storage"
	"scopeworks_backend/internal/estimation"
	apphttp "scopeworks_backend/internal/http"
	"scopeworks_backend/internal/http/router"
	"scopeworks_backend/internal/intake"
	"scopeworks_backend/internal/intake/agent"
	intakesvc "scopeworks_backend/internal/intake/service"
	"scopeworks_backend/internal/jobs"
	jobssvc "scopeworks_backend/internal/jobs/service"
	"scopeworks_backend/internal/scheduler"
	"scopeworks_backend/migrations"
	"scopeworks_backend/platform/config"
	"scopeworks_backend/platform/db"
	"scopeworks_backend/platform/events"
	"scopeworks_backend/platform/logger"
	"scopeworks_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.StorageService, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Classification oracle: Gemini when configured, keyword fallback otherwise
	oracle := initOracle(ctx, cfg, log)

	// Photo uploads are optional; sessions work without object storage
	photos := initPhotoStore(ctx, cfg, log)

	// Score queue is optional; without Redis jobs are scored inline
	scoreClient, closeScoreClient := initScoreClient(cfg, log)
	if closeScoreClient != nil {
		defer closeScoreClient()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	intakeModule := intake.NewModule(pool, val, log, eventBus, oracle, photos)

	estimationModule := estimation.NewModule(pool, intakeModule.Repository(), cfg, log)
	estimationModule.RegisterHandlers(eventBus)

	var enqueuer jobssvc.ScoreEnqueuer
	if scoreClient != nil {
		enqueuer = scoreClient
	}
	jobsModule := jobs.NewModule(pool, intakeModule.Repository(), enqueuer, val, eventBus, log)
	jobsModule.RegisterHandlers(eventBus)

	var worker *scheduler.Worker
	if scoreClient != nil {
		worker, err = scheduler.NewWorker(cfg, jobsModule.Service(), log)
		if err != nil {
			log.Error("failed to initialize scoring worker", "error", err)
			panic("failed to initialize scoring worker: " + err.Error())
		}
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			intakeModule,
			estimationModule,
			jobsModule,
		},
	}

	engine := router.New(app)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		return engine.Run(cfg.HTTPAddr)
	})
	if worker != nil {
		g.Go(func() error {
			log.Info("scoring worker started", "queue", cfg.GetAsynqQueueName())
			worker.Run(gctx)
			return nil
		})
	}

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- g.Wait()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initOracle(ctx context.Context, cfg *config.Config, log *logger.Logger) agent.Oracle {
	if !cfg.IsOracleEnabled() {
		log.Warn("GEMINI_API_KEY not configured; using keyword classification")
		return agent.NewKeywordOracle()
	}

	gemini, err := agent.NewGeminiOracle(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize gemini oracle; using keyword classification", "error", err)
		return agent.NewKeywordOracle()
	}
	log.Info("gemini oracle initialized", "model", cfg.GetGeminiModel())
	return gemini
}

func initPhotoStore(ctx context.Context, cfg *config.Config, log *logger.Logger) intakesvc.PhotoStore {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MinIO not configured; photo uploads disabled")
		return nil
	}

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	ensureBucket(ctx, log, storageSvc, "request-photos", cfg.GetMinioBucketRequestPhotos())
	log.Info("storage service initialized", "requestPhotosBucket", cfg.GetMinioBucketRequestPhotos())

	return storage.NewRequestPhotoStore(storageSvc, cfg.GetMinioBucketRequestPhotos())
}

func initScoreClient(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; jobs are scored inline")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize score queue client; jobs are scored inline", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			log.Warn(name+" failed, retrying", "attempt", attempt, "delay", delay.String(), "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
