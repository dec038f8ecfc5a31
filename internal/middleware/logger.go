package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LoggerMiddleware logs one line per request. The owner id is present
// only on authenticated routes; unauthenticated and health traffic
// logs without it.
func LoggerMiddleware(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		reqID, _ := c.Locals(CtxRequestID).(string)
		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if ownerID, ok := c.Locals(CtxOwnerID).(string); ok && ownerID != "" {
			fields = append(fields, zap.String("owner_user_id", ownerID))
		}
		log.Info("request", fields...)

		return err
	}
}
