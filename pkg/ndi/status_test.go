package ndi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected Status
	}{
		{"pending", StatusPending},
		{"In-Progress", StatusPending},
		{"processing", StatusPending},
		{"verified", StatusVerified},
		{"COMPLETED", StatusVerified},
		{"proof_validated", StatusVerified},
		{"presentation_verified", StatusVerified},
		{"rejected", StatusRejected},
		{"Declined", StatusRejected},
		{"presentation_declined", StatusRejected},
		{"expired", StatusExpired},
		{"timeout", StatusExpired},
		{" timed_out ", StatusExpired},
		// unknown spellings keep the poll loop alive
		{"some-new-state", StatusPending},
		{"", StatusPending},
	}

	for _, tt := range tests {
		result := ParseStatus(tt.raw)
		assert.Equalf(t, tt.expected, result, "ParseStatus(%q) = %q; expected %q", tt.raw, result, tt.expected)
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusVerified.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusExpired.Terminal())
	assert.True(t, StatusFailed.Terminal())
}
