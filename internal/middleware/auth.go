package middleware

import (
	"errors"
	"strings"

	"github.com/agency-content/backend/internal/auth"
	"github.com/agency-content/backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const CtxOwnerID = "owner_id"

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.VerifyToken(cfg.AuthJWTSecret, tokenStr)
		if err != nil {
			if errors.Is(err, auth.ErrNoSecret) {
				log.Error("auth secret missing")
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server configuration error"})
			}
			log.Debug("token verification failed", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxOwnerID, claims.Subject)
		return c.Next()
	}
}

// GetOwnerID returns the authenticated owner's identifier, the
// subject claim of the verified token.
func GetOwnerID(c *fiber.Ctx) string {
	id, _ := c.Locals(CtxOwnerID).(string)
	return id
}
