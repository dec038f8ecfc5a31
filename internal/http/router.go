package http

import (
	"time"

	"github.com/agency-content/backend/internal/config"
	"github.com/agency-content/backend/internal/http/handlers"
	"github.com/agency-content/backend/internal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	clientHandler *handlers.ClientHandler,
	contentHandler *handlers.ContentHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Everything below requires a bearer token from the external
	// identity provider.
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Clients
	protected.Post("/clients", clientHandler.CreateClient)
	protected.Get("/clients", clientHandler.ListClients)
	protected.Get("/clients/:id", clientHandler.GetClient)
	protected.Put("/clients/:id", clientHandler.UpdateClient)
	protected.Delete("/clients/:id", clientHandler.DeleteClient)

	// Content generation
	protected.Post("/content/generate", contentHandler.GenerateContent)
	protected.Post("/content/generate-test", contentHandler.GenerateContentTest)
	protected.Get("/content/suggestions/:clientId", contentHandler.GetSuggestions)

	// Content CRUD. Static segments registered before /content/:id so
	// they aren't swallowed by the parameter route.
	protected.Get("/content", contentHandler.ListContent)
	protected.Get("/content/client/:clientId", contentHandler.ListClientContent)
	protected.Get("/content/client/:clientId/stats", contentHandler.GetClientContentStats)
	protected.Get("/content/:id", contentHandler.GetContent)
	protected.Put("/content/:id", contentHandler.UpdateContent)
	protected.Delete("/content/:id", contentHandler.DeleteContent)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
