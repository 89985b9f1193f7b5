package ndi

import (
	"time"

	"github.com/bdbl/loan-verification-api/pkg/formdata"
)

// ProofRequest is the created verification request handed back to the
// frontend: the invite URL is rendered as a QR code, the deep link opens
// the wallet app directly on mobile.
type ProofRequest struct {
	ThreadID    string    `json:"threadId"`
	InviteURL   string    `json:"inviteUrl"`
	DeepLinkURL string    `json:"deepLinkUrl,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// StatusResult is one normalized poll outcome. Raw carries the revealed
// credential attributes only when Status is verified.
type StatusResult struct {
	Status Status
	Raw    formdata.Record
}

type createResponseBody struct {
	StatusCode int `json:"statusCode"`
	Data       struct {
		ProofRequestThreadID string `json:"proofRequestThreadId"`
		InviteURL            string `json:"inviteURL"`
		DeepLinkURL          string `json:"deepLinkURL"`
		ExpiresAt            string `json:"expiresAt"`
	} `json:"data"`
}

type statusResponseBody struct {
	Status                string         `json:"status"`
	VerificationResult    string         `json:"verification_result"`
	Presentation          map[string]any `json:"presentation"`
	RequestedPresentation map[string]any `json:"requested_presentation"`
}

// revealedAttributes flattens the provider's presentation shapes into a
// flat Record. Attribute values arrive either as plain scalars, as
// {"value": ...} objects, or as one-element arrays of those objects
// depending on provider version; all three are accepted.
func (b statusResponseBody) revealedAttributes() formdata.Record {
	source := b.Presentation
	if len(source) == 0 {
		source = b.RequestedPresentation
	}
	if len(source) == 0 {
		return formdata.Record{}
	}

	if nested, ok := source["revealed_attrs"].(map[string]any); ok {
		source = nested
	}

	out := make(formdata.Record, len(source))
	for name, value := range source {
		out[name] = unwrapAttribute(value)
	}
	return out
}

func unwrapAttribute(v any) any {
	switch value := v.(type) {
	case []any:
		if len(value) == 0 {
			return nil
		}
		return unwrapAttribute(value[0])
	case map[string]any:
		if inner, ok := value["value"]; ok {
			return inner
		}
		if inner, ok := value["raw"]; ok {
			return inner
		}
		return nil
	default:
		return v
	}
}
