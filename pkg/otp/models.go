package otp

import "errors"

type Channel string

const (
	ChannelPhone Channel = "phone"
	ChannelEmail Channel = "email"
)

// DispatchRequest asks the messaging gateway to deliver a one-time
// password to the applicant's chosen contact channel.
type DispatchRequest struct {
	Channel     Channel `json:"channel"`
	Destination string  `json:"destination"`
}

func (r DispatchRequest) Validate() error {
	if r.Channel != ChannelPhone && r.Channel != ChannelEmail {
		return errors.New("channel must be phone or email")
	}
	if r.Destination == "" {
		return errors.New("destination is required")
	}
	return nil
}

// DispatchResult echoes the delivered code so the caller can validate
// the applicant's entry locally. Code expiry and retry limits live with
// the gateway.
type DispatchResult struct {
	ReferenceID string `json:"referenceId"`
	Code        string `json:"code"`
}

type dispatchRequestBody struct {
	Channel     Channel `json:"channel"`
	Destination string  `json:"destination"`
	Code        string  `json:"code,omitempty"`
}

type dispatchResponseBody struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
