package customer

import "errors"

// LookupRequest identifies an applicant against the core banking
// system: identification document plus exactly one contact channel,
// which doubles as the OTP destination.
type LookupRequest struct {
	IdentificationType   string `json:"identificationType"`
	IdentificationNumber string `json:"identificationNumber"`
	MobileNumber         string `json:"mobileNumber,omitempty"`
	Email                string `json:"email,omitempty"`
}

func (r LookupRequest) Validate() error {
	if r.IdentificationType == "" {
		return errors.New("identificationType is required")
	}
	if r.IdentificationNumber == "" {
		return errors.New("identificationNumber is required")
	}
	if r.MobileNumber == "" && r.Email == "" {
		return errors.New("one of mobileNumber or email is required")
	}
	return nil
}
