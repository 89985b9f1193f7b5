package ndi

import "strings"

// Status is the single internal verification-status vocabulary. Provider
// responses use several overlapping spellings for the same outcome;
// ParseStatus folds them at the boundary so nothing downstream ever
// compares against a provider string literal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
	// StatusFailed marks a transport or decode failure during polling,
	// distinct from the provider's business rejection.
	StatusFailed Status = "failed"
)

var statusSpellings = map[string]Status{
	"pending":               StatusPending,
	"in-progress":           StatusPending,
	"in_progress":           StatusPending,
	"processing":            StatusPending,
	"requested":             StatusPending,
	"request-sent":          StatusPending,
	"verified":              StatusVerified,
	"completed":             StatusVerified,
	"done":                  StatusVerified,
	"proof_validated":       StatusVerified,
	"proofvalidated":        StatusVerified,
	"presentation_verified": StatusVerified,
	"rejected":              StatusRejected,
	"declined":              StatusRejected,
	"abandoned":             StatusRejected,
	"presentation_declined": StatusRejected,
	"proof_invalid":         StatusRejected,
	"expired":               StatusExpired,
	"timeout":               StatusExpired,
	"timed_out":             StatusExpired,
}

// ParseStatus normalizes a provider status string. Unknown spellings
// count as pending so the poll loop keeps going until the request's own
// expiry ends it.
func ParseStatus(raw string) Status {
	if s, ok := statusSpellings[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusPending
}

// Terminal reports whether polling should stop at this status.
func (s Status) Terminal() bool {
	return s == StatusVerified || s == StatusRejected || s == StatusExpired || s == StatusFailed
}
