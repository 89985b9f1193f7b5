package routes

import (
	"log/slog"

	"github.com/bdbl/loan-verification-api/api/handlers"
	"github.com/bdbl/loan-verification-api/api/middleware"
	"github.com/bdbl/loan-verification-api/pkg/circuitbreaker"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func StatusRouter(app fiber.Router, rdb *redis.Client, logger *slog.Logger) {
	withBreaker := middleware.WithCircuitBreaker(func(name string) *circuitbreaker.RedisBreaker {
		return circuitbreaker.NewRedisBreaker(rdb, name, circuitbreaker.DefaultOptions(), logger)
	})

	app.Get("/status", withBreaker(handlers.GetRDBStatus(rdb)))
}
