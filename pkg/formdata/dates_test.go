package formdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"1990-04-21", "1990-04-21"},
		{"1990-04-21T00:00:00Z", "1990-04-21"},
		{"1990-04-21 10:04:00", "1990-04-21"},
		{" 1990-04-21 ", "1990-04-21"},
		{"21/04/1990", ""},
		{"1990-13-01", ""},
		{"1990-04-2", ""},
		{"not a date", ""},
		{"", ""},
		// valid prefix but garbage separator
		{"1990-04-21x00:00", ""},
	}

	for _, tt := range tests {
		result := FormatDate(tt.raw)
		assert.Equalf(t, tt.expected, result, "FormatDate(%q) = %q; expected %q", tt.raw, result, tt.expected)
	}
}

func TestFormatFlexibleDate(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"1990-04-21", "1990-04-21"},
		{"21/04/1990", "1990-04-21"},
		{"1990-04-21T00:00:00Z", "1990-04-21"},
		{"04/21/1990", ""},
		{"21-04-1990", ""},
		{"", ""},
	}

	for _, tt := range tests {
		result := FormatFlexibleDate(tt.raw)
		assert.Equalf(t, tt.expected, result, "FormatFlexibleDate(%q) = %q; expected %q", tt.raw, result, tt.expected)
	}
}
