package customer

import "github.com/bdbl/loan-verification-api/pkg/formdata"

// LookupResult distinguishes "no such customer" from a transport
// failure: not-found is a business outcome the applicant continues
// from, never an error.
type LookupResult struct {
	Found  bool
	Record formdata.Record
}

type lookupResponseBody struct {
	Found    bool           `json:"found"`
	Customer map[string]any `json:"customer"`
}
