package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agency-content/backend/internal/config"
	"github.com/agency-content/backend/internal/db"
	"github.com/agency-content/backend/internal/events"
	"github.com/agency-content/backend/internal/generation"
	apphttp "github.com/agency-content/backend/internal/http"
	"github.com/agency-content/backend/internal/http/handlers"
	"github.com/agency-content/backend/internal/repositories"
	"github.com/agency-content/backend/internal/scrape"
	"github.com/agency-content/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	clientRepo := repositories.NewClientRepo(pool)
	contentRepo := repositories.NewContentRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Generation capability
	llm, err := generation.NewOpenAIClient(generation.OpenAISettings{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if err != nil {
		log.Fatal("failed to create generation client", zap.Error(err))
	}
	scraper := scrape.NewScraper(cfg.ScrapeTimeoutMS, cfg.ScrapeMaxRetries, cfg.ScrapeMaxBytes, log)
	generator := generation.NewGenerator(llm, scraper, log)

	// Services
	clientService := services.NewClientService(clientRepo, log)
	contentService := services.NewContentService(contentRepo, clientRepo, log)
	generationService := services.NewGenerationService(contentRepo, clientRepo, generator, publisher, log)

	// Handlers
	clientHandler := handlers.NewClientHandler(clientService, log)
	contentHandler := handlers.NewContentHandler(contentService, generationService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, clientHandler, contentHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
