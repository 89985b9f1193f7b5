package formdata

import (
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// FormatDate reduces an ISO date, optionally carrying a time suffix
// ("2024-03-15T00:00:00Z", "2024-03-15 10:04:00"), to its date-only
// portion. Anything that does not start with a valid ISO date yields "".
func FormatDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < len(isoDate) {
		return ""
	}

	datePart := trimmed[:len(isoDate)]
	if _, err := time.Parse(isoDate, datePart); err != nil {
		return ""
	}

	if len(trimmed) > len(isoDate) {
		sep := trimmed[len(isoDate)]
		if sep != 'T' && sep != ' ' {
			return ""
		}
	}

	return datePart
}

// FormatFlexibleDate additionally accepts DD/MM/YYYY, the format the
// national-ID credential carries, converting it to ISO. Unrecognized
// input yields "".
func FormatFlexibleDate(raw string) string {
	if iso := FormatDate(raw); iso != "" {
		return iso
	}

	trimmed := strings.TrimSpace(raw)
	t, err := time.Parse("02/01/2006", trimmed)
	if err != nil {
		return ""
	}
	return t.Format(isoDate)
}
