package ndi

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

const (
	applicationJSON    = "application/json"
	maxErrBodyLogBytes = 800
)

func (s *service) CreateProofRequest(ctx context.Context) (ProofRequest, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := s.logger.With(slog.String("ndi_base_url", s.cfg.BaseURL))

	spec := ProofRequestSpec{
		ProofName: "Loan Application Verification",
		RequestedAttributes: []RequestedAttribute{
			{
				Names:      RequestedAttributeNames,
				SchemaName: s.cfg.SchemaName,
			},
		},
		WebhookURL: s.cfg.WebhookURL,
	}

	body, err := json.Marshal(spec)
	if err != nil {
		return ProofRequest{}, fmt.Errorf("marshal proof request spec: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.cfg.BaseURL+"/proof-requests",
		bytes.NewReader(body),
	)
	if err != nil {
		return ProofRequest{}, fmt.Errorf("create proof request: %w", err)
	}

	req.Header.Set("Content-Type", applicationJSON)
	req.Header.Set("Accept", applicationJSON)

	start := time.Now()
	resp, err := s.client.Do(req)
	latency := time.Since(start)

	if err != nil {
		log.Error("ndi proof request failed",
			slog.Any("error", err),
			slog.Duration("latency", latency),
		)
		return ProofRequest{}, fmt.Errorf("proof request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ProofRequest{}, fmt.Errorf(
			"ndi proof request failed: status=%s body=%s",
			resp.Status,
			snippet(respBytes),
		)
	}

	var decoded createResponseBody
	if err := json.Unmarshal(respBytes, &decoded); err != nil {
		return ProofRequest{}, fmt.Errorf("decode proof request response: %w", err)
	}
	if decoded.Data.ProofRequestThreadID == "" {
		return ProofRequest{}, fmt.Errorf("ndi proof request response missing thread id")
	}

	expiresAt, parseErr := time.Parse(time.RFC3339, decoded.Data.ExpiresAt)
	if parseErr != nil {
		log.Warn("ndi proof request expiry missing or unparsable",
			slog.String("expires_at", decoded.Data.ExpiresAt),
			slog.String("thread_id", decoded.Data.ProofRequestThreadID),
		)
	}

	log.Info("ndi proof request created",
		slog.String("thread_id", decoded.Data.ProofRequestThreadID),
		slog.Duration("latency", latency),
	)

	return ProofRequest{
		ThreadID:    decoded.Data.ProofRequestThreadID,
		InviteURL:   decoded.Data.InviteURL,
		DeepLinkURL: decoded.Data.DeepLinkURL,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *service) CheckStatus(ctx context.Context, threadID string) (StatusResult, error) {
	if threadID == "" {
		return StatusResult{}, fmt.Errorf("threadID is required")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline && s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		s.cfg.BaseURL+"/proof-requests/"+threadID,
		http.NoBody,
	)
	if err != nil {
		return StatusResult{}, fmt.Errorf("create status request: %w", err)
	}
	req.Header.Set("Accept", applicationJSON)

	resp, err := s.client.Do(req)
	if err != nil {
		return StatusResult{}, fmt.Errorf("status request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, _ := io.ReadAll(resp.Body)

	// some deployments answer 202 while the holder has not yet
	// presented; that is a pending outcome, not an error
	if resp.StatusCode == http.StatusAccepted {
		return StatusResult{Status: StatusPending}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return StatusResult{}, fmt.Errorf(
			"ndi status check failed: status=%s body=%s",
			resp.Status,
			snippet(respBytes),
		)
	}

	var decoded statusResponseBody
	if err := json.Unmarshal(respBytes, &decoded); err != nil {
		return StatusResult{}, fmt.Errorf("decode status response: %w", err)
	}

	rawStatus := decoded.Status
	if rawStatus == "" {
		rawStatus = decoded.VerificationResult
	}

	result := StatusResult{Status: ParseStatus(rawStatus)}
	if result.Status == StatusVerified {
		result.Raw = decoded.revealedAttributes()
	}

	return result, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxErrBodyLogBytes {
		return s
	}
	// back off to a rune boundary so the cut never splits a character
	cut := maxErrBodyLogBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
