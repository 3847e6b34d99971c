package http

import (
	"encoding/json"

	"github.com/and734/p2p-chat/internal/core/domain"
)

// inboundFrame is the envelope for every client-to-server websocket message.
// Which fields are set depends on the event.
type inboundFrame struct {
	Event        string          `json:"event"`
	RoomName     string          `json:"roomName,omitempty"`
	RecipientSID string          `json:"recipientSid,omitempty"`
	Offer        json.RawMessage `json:"offer,omitempty"`
	Answer       json.RawMessage `json:"answer,omitempty"`
	Candidate    json.RawMessage `json:"candidate,omitempty"`
	Message      string          `json:"message,omitempty"`
}

type joinedDTO struct {
	Event           string `json:"event"`
	SID             string `json:"sid"`
	Room            string `json:"room"`
	NumParticipants int    `json:"num_participants"`
}

type sidDTO struct {
	Event string `json:"event"`
	SID   string `json:"sid"`
}

type messageDTO struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

type deliveryFailureDTO struct {
	Event        string `json:"event"`
	Kind         string `json:"kind"`
	RecipientSID string `json:"recipientSid"`
}

// encodeEvent maps a domain event onto its wire shape. Relayed signals keep
// their payload under the key the original protocol uses for that kind
// (offer, answer, candidate).
func encodeEvent(ev domain.Event) any {
	switch e := ev.(type) {
	case domain.Joined:
		return joinedDTO{Event: e.Name(), SID: e.SID.String(), Room: e.Room, NumParticipants: e.Participants}
	case domain.NewPeer:
		return sidDTO{Event: e.Name(), SID: e.SID.String()}
	case domain.PeerDisconnected:
		return sidDTO{Event: e.Name(), SID: e.SID.String()}
	case domain.Signal:
		return map[string]any{
			"event":             e.Name(),
			"senderSid":         e.Sender.String(),
			e.Kind.PayloadKey(): e.Payload,
		}
	case domain.MediaError:
		return messageDTO{Event: e.Name(), Message: e.Message}
	case domain.DeliveryFailure:
		return deliveryFailureDTO{Event: e.Name(), Kind: string(e.Kind), RecipientSID: e.Recipient.String()}
	case domain.ErrorEvent:
		return messageDTO{Event: e.Name(), Message: e.Message}
	default:
		return map[string]any{"event": ev.Name()}
	}
}
