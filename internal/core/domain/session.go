package domain

import (
	"github.com/google/uuid"
	"go.trai.ch/zerr"
)

// SessionID identifies one scan invocation and scopes its progress and report.
type SessionID string

// NewSessionID returns a fresh random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// ParseSessionID validates an externally supplied session identifier.
func ParseSessionID(s string) (SessionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", zerr.With(zerr.Wrap(ErrInvalidSession, err.Error()), "session", s)
	}
	return SessionID(id.String()), nil
}

func (s SessionID) String() string {
	return string(s)
}
