package port

import (
	"context"

	"github.com/and734/p2p-chat/internal/core/domain"
)

// RealTimeGateway delivers events to connected sessions. Delivery is
// fire-and-forget from the caller's perspective; Send returns
// domain.ErrUnknownRecipient when the id does not belong to a live
// connection.
type RealTimeGateway interface {
	Send(ctx context.Context, to domain.SessionID, ev domain.Event) error
	Connected(id domain.SessionID) bool
}
