package routes

import (
	"log/slog"

	"github.com/bdbl/loan-verification-api/api/handlers"
	"github.com/bdbl/loan-verification-api/api/middleware"
	"github.com/bdbl/loan-verification-api/pkg/circuitbreaker"
	"github.com/bdbl/loan-verification-api/pkg/customer"
	"github.com/bdbl/loan-verification-api/pkg/handoff"
	"github.com/bdbl/loan-verification-api/pkg/ndi"
	"github.com/bdbl/loan-verification-api/pkg/otp"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Deps bundles the services behind the API. Nil members are tolerated:
// their routes still register and answer 500 until configured, which
// keeps local runs working with a partial environment.
type Deps struct {
	NDI       ndi.NDIService
	Watcher   *ndi.Watcher
	Sessions  ndi.SessionStore
	Customers customer.CustomerService
	OTP       otp.OTPService
	Handoff   handoff.Store
}

func RegisterRoutes(app fiber.Router, rdb *redis.Client, deps Deps, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	withCB := middleware.WithCircuitBreaker(func(name string) *circuitbreaker.RedisBreaker {
		return circuitbreaker.NewRedisBreaker(
			rdb,
			name,
			circuitbreaker.DefaultOptions(),
			logger,
		)
	})

	api := app.Group("/api")

	ndiGroup := api.Group("/ndi")
	ndiGroup.Post("/proof-requests", withCB(handlers.CreateProofRequest(deps.NDI, deps.Watcher, logger)))
	ndiGroup.Get("/proof-requests/:threadId", handlers.GetProofRequestStatus(deps.Sessions, logger))
	ndiGroup.Delete("/proof-requests/:threadId", handlers.CancelProofRequest(deps.Watcher, logger))

	api.Post("/customers/lookup", withCB(handlers.CustomerLookup(deps.Customers, deps.Handoff, logger)))

	api.Post("/otp/dispatch", withCB(handlers.DispatchOTP(deps.OTP, logger)))

	api.Get("/handoff/:sessionId/:source", handlers.GetHandoff(deps.Handoff, logger))
	api.Delete("/handoff/:sessionId/:source", handlers.ClearHandoff(deps.Handoff, logger))
}
