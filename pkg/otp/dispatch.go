package otp

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxErrBodyLogBytes = 800

func (s *service) Dispatch(ctx context.Context, reqBody DispatchRequest) (DispatchResult, error) {
	if err := reqBody.Validate(); err != nil {
		return DispatchResult{}, err
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline && s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := s.logger.With(
		slog.String("otp_dispatch_url", s.cfg.DispatchURL),
		slog.String("channel", string(reqBody.Channel)),
	)

	payload := dispatchRequestBody{
		Channel:     reqBody.Channel,
		Destination: reqBody.Destination,
	}

	// email codes are generated here; for SMS the gateway generates
	// one and echoes it back
	if reqBody.Channel == ChannelEmail {
		code, err := generateCode()
		if err != nil {
			return DispatchResult{}, fmt.Errorf("generate otp code: %w", err)
		}
		payload.Code = code
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return DispatchResult{}, fmt.Errorf("marshal dispatch body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.DispatchURL, bytes.NewReader(body))
	if err != nil {
		return DispatchResult{}, fmt.Errorf("create dispatch request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if s.tokens != nil {
		tok, err := s.tokens.Token(ctx)
		if err != nil {
			return DispatchResult{}, fmt.Errorf("gateway token: %w", err)
		}
		tokenType := strings.TrimSpace(tok.TokenType)
		if tokenType == "" {
			tokenType = "Bearer"
		}
		req.Header.Set("Authorization", tokenType+" "+tok.AccessToken)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	latency := time.Since(start)

	if err != nil {
		log.Error("otp dispatch request failed",
			slog.Any("error", err),
			slog.Duration("latency", latency),
		)
		return DispatchResult{}, fmt.Errorf("dispatch request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(respBytes))
		if len(snippet) > maxErrBodyLogBytes {
			cut := maxErrBodyLogBytes
			for cut > 0 && !utf8.RuneStart(snippet[cut]) {
				cut--
			}
			snippet = snippet[:cut] + "..."
		}

		log.Error("otp dispatch non-2xx",
			slog.Int("status", resp.StatusCode),
			slog.String("body_snippet", snippet),
		)

		return DispatchResult{}, fmt.Errorf("otp dispatch failed: status=%d", resp.StatusCode)
	}

	var decoded dispatchResponseBody
	if err := json.Unmarshal(respBytes, &decoded); err != nil {
		return DispatchResult{}, fmt.Errorf("decode dispatch response: %w", err)
	}
	if !decoded.Success {
		return DispatchResult{}, fmt.Errorf("otp dispatch rejected: %s", decoded.Message)
	}

	code := payload.Code
	if reqBody.Channel == ChannelPhone {
		code = decoded.Code
	}
	if code == "" {
		return DispatchResult{}, fmt.Errorf("otp dispatch response missing code")
	}

	log.Info("otp dispatched",
		slog.Duration("latency", latency),
	)

	return DispatchResult{
		ReferenceID: uuid.NewString(),
		Code:        code,
	}, nil
}

// generateCode returns a uniformly random 6-digit code, zero-padded.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
