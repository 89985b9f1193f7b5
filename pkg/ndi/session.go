package ndi

import (
	"time"

	"github.com/bdbl/loan-verification-api/pkg/formdata"
)

// Session is one verification attempt, keyed by the provider-assigned
// proof-request thread id. It is created pending, driven to a terminal
// status by the watcher, and read back by the wizard's status polls.
type Session struct {
	ThreadID  string                      `json:"threadId"`
	SessionID string                      `json:"sessionId"`
	Status    Status                      `json:"status"`
	FormData  *formdata.CanonicalFormData `json:"formData,omitempty"`
	Reason    string                      `json:"reason,omitempty"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}

func NewSession(threadID, sessionID string) Session {
	now := time.Now().UTC()
	return Session{
		ThreadID:  threadID,
		SessionID: sessionID,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
