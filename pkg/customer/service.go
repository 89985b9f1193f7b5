// Package customer talks to the core banking system's customer
// onboarding API for the existing-customer verification path, and maps
// matched records into canonical form data.
package customer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bdbl/loan-verification-api/pkg/core"
)

type CustomerService interface {
	Lookup(ctx context.Context, req LookupRequest) (LookupResult, error)
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
	cfg     *core.CBSConfig
	client  HTTPTransport
	logger  *slog.Logger
	timeout time.Duration
}

func New(cfg *core.CBSConfig, opts Options) (CustomerService, error) {
	if cfg == nil {
		return nil, errors.New("cfg is required")
	}
	if cfg.LookupURL == "" {
		return nil, errors.New("cfg.LookupURL is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "customer"),
		slog.String("vendor", "cbs"),
	)

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &service{
		cfg:     cfg,
		client:  client,
		logger:  logger,
		timeout: timeout,
	}, nil
}
