package domain

import "encoding/json"

// Event is anything the relay pushes to a connected session. Name is the
// wire-level event discriminator.
type Event interface {
	Name() string
}

// Joined confirms a session's own room membership, with the member count
// after the add.
type Joined struct {
	SID          SessionID
	Room         string
	Participants int
}

func (Joined) Name() string { return "joined" }

// NewPeer tells the first member of a room that a second one arrived.
type NewPeer struct {
	SID SessionID
}

func (NewPeer) Name() string { return "new_user" }

// Signal is a relayed offer, answer or ICE candidate: the sender's id plus
// the untouched payload bytes.
type Signal struct {
	Kind    SignalKind
	Sender  SessionID
	Payload json.RawMessage
}

func (s Signal) Name() string { return string(s.Kind) }

// MediaError is echoed back to the session that reported it.
type MediaError struct {
	Message string
}

func (MediaError) Name() string { return "media_error" }

// PeerDisconnected tells the remaining room member who left.
type PeerDisconnected struct {
	SID SessionID
}

func (PeerDisconnected) Name() string { return "user_disconnected" }

// DeliveryFailure tells a sender that its signal had no reachable
// recipient instead of dropping it silently.
type DeliveryFailure struct {
	Kind      SignalKind
	Recipient SessionID
}

func (DeliveryFailure) Name() string { return "delivery_failure" }

// ErrorEvent surfaces a rejected request (full room, double membership,
// bad input) on the session's own channel.
type ErrorEvent struct {
	Message string
}

func (ErrorEvent) Name() string { return "error" }
