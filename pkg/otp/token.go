package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type TokenFetcher interface {
	Fetch(ctx context.Context) (*Token, error)
}

// CachedFetcher reuses a gateway token until shortly before expiry.
type CachedFetcher struct {
	fetcher   TokenFetcher
	skew      time.Duration
	mu        sync.Mutex
	token     *Token
	expiresAt time.Time
}

func NewCachedFetcher(f TokenFetcher, skew time.Duration) *CachedFetcher {
	return &CachedFetcher{fetcher: f, skew: skew}
}

func (c *CachedFetcher) Token(ctx context.Context) (*Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != nil && time.Now().UTC().Before(c.expiresAt.Add(-c.skew)) {
		return c.token, nil
	}

	tok, err := c.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.token = tok
	c.expiresAt = time.Now().UTC().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return tok, nil
}

// gatewayTokenFetcher exchanges client credentials for a messaging
// gateway access token.
type gatewayTokenFetcher struct {
	tokenURL     string
	clientID     string
	clientSecret string
	client       HTTPTransport
}

func (f *gatewayTokenFetcher) Fetch(ctx context.Context) (*Token, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {f.clientID},
		"client_secret": {f.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway token request failed: status=%s", resp.Status)
	}

	var tok Token
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("gateway token response missing access_token")
	}

	return &tok, nil
}
