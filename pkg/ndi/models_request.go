package ndi

// RequestedAttributeNames is the fixed attribute list requested from the
// foundational-ID credential for a loan application.
var RequestedAttributeNames = []string{
	"Full Name",
	"ID Number",
	"Date of Birth",
	"Gender",
	"Nationality",
	"Dzongkhag",
	"Gewog",
	"Village",
	"Mobile Number",
}

type RequestedAttribute struct {
	Names      []string `json:"names"`
	SchemaName string   `json:"schemaName"`
}

type ProofRequestSpec struct {
	ProofName           string               `json:"proofName"`
	RequestedAttributes []RequestedAttribute `json:"proofAttributes"`
	WebhookURL          string               `json:"webhookURL,omitempty"`
}
