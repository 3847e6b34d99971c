package port

import "github.com/and734/p2p-chat/internal/core/domain"

// Client is one connected session as seen from the gateway side.
type Client interface {
	ID() domain.SessionID
	SendEvent(ev domain.Event) error
	Close() error
}
