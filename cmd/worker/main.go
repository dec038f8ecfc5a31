package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agency-content/backend/internal/config"
	"github.com/agency-content/backend/internal/db"
	"github.com/agency-content/backend/internal/repositories"
	"github.com/agency-content/backend/internal/services"
	"go.uber.org/zap"
)

// Maintenance worker: sweeps generation drafts whose background job
// died without writing back, and removes content orphaned by client
// deletions that bypassed the cascade rule.
func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	contentRepo := repositories.NewContentRepo(pool)

	log.Info("worker started")

	staleTicker := time.NewTicker(5 * time.Minute)
	orphanTicker := time.NewTicker(1 * time.Hour)
	defer staleTicker.Stop()
	defer orphanTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-staleTicker.C:
			runStaleDraftSweep(ctx, contentRepo, cfg, log)
		case <-orphanTicker.C:
			runOrphanSweep(ctx, contentRepo, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

func runStaleDraftSweep(ctx context.Context, contentRepo *repositories.ContentRepo, cfg *config.Config, log *zap.Logger) {
	n, err := contentRepo.MarkStaleDraftsFailed(ctx, cfg.StaleDraftCutoff, services.PlaceholderBody)
	if err != nil {
		log.Error("stale draft sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		log.Warn("marked stale generation drafts as failed", zap.Int64("count", n))
	}
}

func runOrphanSweep(ctx context.Context, contentRepo *repositories.ContentRepo, log *zap.Logger) {
	n, err := contentRepo.DeleteOrphans(ctx)
	if err != nil {
		log.Error("orphan sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		log.Warn("removed orphaned content records", zap.Int64("count", n))
	}
}
