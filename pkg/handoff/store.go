// Package handoff is the key-value boundary between a verification flow
// and the wizard's first data-entry step. Mapped, verified form data is
// written here under a source-scoped key; the wizard reads it back when
// the applicant lands on the personal-details step.
package handoff

import (
	"context"
	"errors"

	"github.com/bdbl/loan-verification-api/pkg/formdata"
)

// ErrNotFound means no verification result exists under the key. For
// consumers this is "no prior verification", not a failure.
var ErrNotFound = errors.New("handoff: no data for key")

// Source identifies which verification path produced the data. The two
// paths use independent keys that must never be conflated.
type Source string

const (
	SourceCustomer Source = "customer"
	SourceNDI      Source = "ndi"
)

func (s Source) Valid() bool {
	return s == SourceCustomer || s == SourceNDI
}

// Other returns the opposite verification source.
func (s Source) Other() Source {
	if s == SourceCustomer {
		return SourceNDI
	}
	return SourceCustomer
}

// Key addresses one verification result for one applicant session.
type Key struct {
	SessionID string
	Source    Source
}

func (k Key) Other() Key {
	return Key{SessionID: k.SessionID, Source: k.Source.Other()}
}

func (k Key) String() string {
	return "handoff:" + k.SessionID + ":" + string(k.Source)
}

// Store is the injected hand-off port. Put replaces any previous result
// under the key and clears the opposite source's key for the same
// session, so the wizard can never read data from an abandoned path.
type Store interface {
	Put(ctx context.Context, key Key, data formdata.CanonicalFormData) error
	Get(ctx context.Context, key Key) (formdata.CanonicalFormData, error)
	Clear(ctx context.Context, key Key) error
}
