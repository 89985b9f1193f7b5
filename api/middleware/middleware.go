package middleware

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/bdbl/loan-verification-api/pkg/circuitbreaker"
	"github.com/bdbl/loan-verification-api/pkg/core"
	"github.com/gofiber/fiber/v2"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// GatewayVerifier checks the access token the API gateway attaches to
// every request against the gateway's published JWKS.
type GatewayVerifier struct {
	issuer  string
	jwksURL string
	cache   *jwk.Cache
	client  *http.Client
	cfg     core.GatewayConfig
}

func NewGatewayVerifier(cfg core.GatewayConfig) (*GatewayVerifier, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("Issuer is required")
	}

	if cfg.JWKSURL == "" {
		return nil, errors.New("JWKSURL is required")
	}

	if cfg.ClientID == "" {
		return nil, errors.New("ClientID is required")
	}

	cache := jwk.NewCache(context.Background())
	// register the JWKS URL with a refresh window
	cache.Register(cfg.JWKSURL)

	return &GatewayVerifier{
		issuer:  cfg.Issuer,
		jwksURL: cfg.JWKSURL,
		cache:   cache,
		client:  &http.Client{Timeout: 5 * time.Second},
		cfg:     cfg,
	}, nil
}

func (v *GatewayVerifier) FiberMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("x-gateway-access-token")
		if raw == "" {
			return fiber.ErrUnauthorized
		}

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		keyset, err := v.cache.Get(ctx, v.jwksURL)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "unable to load jwks")
		}

		tok, err := jwt.Parse(
			[]byte(raw),
			jwt.WithKeySet(keyset),
			jwt.WithValidate(true),

			jwt.WithIssuer(v.issuer),

			jwt.WithClaimValue("token_use", "access"),
		)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		// access tokens commonly carry client id in "client_id"
		if cid, ok := tok.Get("client_id"); !ok || cid != v.cfg.ClientID {
			return fiber.ErrUnauthorized
		}

		// put useful info on context
		// c.Locals values are only visible to routes matching the request
		// and go away when the request is handled
		if sub, ok := tok.Get("sub"); ok {
			c.Locals("sub", sub)
		}
		if username, ok := tok.Get("username"); ok {
			c.Locals("username", username)
		}
		if scope, ok := tok.Get("scope"); ok {
			c.Locals("scope", scope)
		}

		return c.Next()
	}
}

func WithCircuitBreaker(newBreaker func(name string) *circuitbreaker.RedisBreaker) func(fiber.Handler) fiber.Handler {
	var mu sync.RWMutex
	breakers := make(map[string]*circuitbreaker.RedisBreaker)

	getBreaker := func(name string) *circuitbreaker.RedisBreaker {
		mu.RLock()
		b := breakers[name]
		mu.RUnlock()
		if b != nil {
			return b
		}

		mu.Lock()
		defer mu.Unlock()
		if b = breakers[name]; b != nil {
			return b
		}

		b = newBreaker(name)
		breakers[name] = b
		return b
	}

	return func(next fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			name := breakerName(c)
			breaker := getBreaker(name)

			err := breaker.Allow(c.Context())
			if err != nil {
				if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
					return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
						"error": "service temporarily unavailable",
						"code":  "CIRCUIT_OPEN",
					})
				}

				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "service temporarily unavailable",
					"code":  "BREAKER_ERROR",
				})
			}

			return next(c)
		}
	}
}

func breakerName(c *fiber.Ctx) string {
	var path string
	r := c.Route()
	if r != nil && r.Path != "" {
		path = r.Path
	} else {
		path = c.Path()
	}

	return c.Method() + " " + path
}
