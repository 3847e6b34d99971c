package domain

import (
	"github.com/google/uuid"
)

// SessionID identifies one connected client for the lifetime of its
// websocket. Assigned by the transport at upgrade time, opaque to peers.
type SessionID string

func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

func (id SessionID) String() string {
	return string(id)
}
