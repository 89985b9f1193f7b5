// Package ndi talks to the national digital-identity verifier: creating
// proof requests for wallet holders, polling their status, and mapping
// the revealed credential into canonical form data.
package ndi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/bdbl/loan-verification-api/pkg/core"
)

type NDIService interface {
	CreateProofRequest(ctx context.Context) (ProofRequest, error)
	CheckStatus(ctx context.Context, threadID string) (StatusResult, error)
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
	cfg     *core.NDIConfig
	client  HTTPTransport
	logger  *slog.Logger
	timeout time.Duration
}

func New(cfg *core.NDIConfig, opts Options) (NDIService, error) {
	if cfg == nil {
		return nil, errors.New("cfg is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("cfg.BaseURL is required")
	}
	if cfg.SchemaName == "" {
		return nil, errors.New("cfg.SchemaName is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "ndi"),
		slog.String("vendor", "ndi"),
	)

	client := opts.HTTPClient
	if client == nil {
		client = ndiHTTPClient(context.Background(), cfg)
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

// ndiHTTPClient authenticates to the verifier with OAuth2 client
// credentials; token refresh and reuse are handled by the token source.
func ndiHTTPClient(ctx context.Context, cfg *core.NDIConfig) *http.Client {
	if cfg.TokenURL == "" {
		return http.DefaultClient
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	return oauth2.NewClient(ctx, cc.TokenSource(ctx))
}
