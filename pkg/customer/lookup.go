package customer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

const maxErrBodyLogBytes = 800

func (s *service) Lookup(ctx context.Context, reqBody LookupRequest) (LookupResult, error) {
	if err := reqBody.Validate(); err != nil {
		return LookupResult{}, err
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline && s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := s.logger.With(
		slog.String("cbs_lookup_url", s.cfg.LookupURL),
		slog.String("identification_type", reqBody.IdentificationType),
	)

	body, err := json.Marshal(reqBody)
	if err != nil {
		return LookupResult{}, fmt.Errorf("marshal lookup body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.LookupURL, bytes.NewReader(body))
	if err != nil {
		return LookupResult{}, fmt.Errorf("create lookup request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", s.cfg.APIKey)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	latency := time.Since(start)

	if err != nil {
		log.Error("cbs lookup request failed",
			slog.Any("error", err),
			slog.Duration("latency", latency),
		)
		return LookupResult{}, fmt.Errorf("lookup request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, _ := io.ReadAll(resp.Body)

	log.Info("cbs lookup response received",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", latency),
	)

	if resp.StatusCode == http.StatusNotFound {
		return LookupResult{Found: false}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(respBytes))
		if len(snippet) > maxErrBodyLogBytes {
			cut := maxErrBodyLogBytes
			for cut > 0 && !utf8.RuneStart(snippet[cut]) {
				cut--
			}
			snippet = snippet[:cut] + "..."
		}

		log.Error("cbs lookup non-2xx",
			slog.Int("status", resp.StatusCode),
			slog.String("body_snippet", snippet),
		)

		return LookupResult{}, fmt.Errorf("cbs lookup failed: status=%d", resp.StatusCode)
	}

	var decoded lookupResponseBody
	if err := json.Unmarshal(respBytes, &decoded); err != nil {
		return LookupResult{}, fmt.Errorf("decode cbs response: %w", err)
	}

	if !decoded.Found || decoded.Customer == nil {
		return LookupResult{Found: false}, nil
	}

	return LookupResult{
		Found:  true,
		Record: decoded.Customer,
	}, nil
}
