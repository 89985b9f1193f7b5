// Package otp dispatches one-time passwords through the institution's
// messaging gateway. Code validation and expiry belong to the gateway;
// this service only requests delivery and relays the code back to the
// caller for local entry checking.
package otp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bdbl/loan-verification-api/pkg/core"
)

const tokenReuseSkew = 30 * time.Second

type OTPService interface {
	Dispatch(ctx context.Context, req DispatchRequest) (DispatchResult, error)
}

type HTTPTransport interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	// Override for testing the HTTP client
	HTTPClient HTTPTransport
	// Structured logger using slog package
	Logger *slog.Logger
	// Context timeout
	Timeout time.Duration
}

type service struct {
	cfg     *core.OTPConfig
	client  HTTPTransport
	logger  *slog.Logger
	timeout time.Duration
	tokens  *CachedFetcher
}

func New(cfg *core.OTPConfig, opts Options) (OTPService, error) {
	if cfg == nil {
		return nil, errors.New("cfg is required")
	}
	if cfg.DispatchURL == "" {
		return nil, errors.New("cfg.DispatchURL is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "otp"),
		slog.String("vendor", "msg-gateway"),
	)

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	svc := &service{
		cfg:     cfg,
		client:  client,
		logger:  logger,
		timeout: timeout,
	}

	if cfg.TokenURL != "" {
		svc.tokens = NewCachedFetcher(&gatewayTokenFetcher{
			tokenURL:     cfg.TokenURL,
			clientID:     cfg.ClientID,
			clientSecret: cfg.ClientSecret,
			client:       client,
		}, tokenReuseSkew)
	}

	return svc, nil
}
