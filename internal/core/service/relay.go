package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/and734/p2p-chat/internal/core/domain"
	"github.com/and734/p2p-chat/internal/core/port"
)

// RelayService is the transparent pipe between paired sessions: it forwards
// negotiation payloads untouched, tagging each with the sender's id. It
// never looks inside a payload.
type RelayService struct {
	gateway port.RealTimeGateway
}

func NewRelayService(gateway port.RealTimeGateway) *RelayService {
	return &RelayService{gateway: gateway}
}

// Forward delivers an offer, answer or ICE candidate to the addressed
// session. When the recipient is gone the sender gets a delivery_failure
// event instead of the message vanishing silently.
func (s *RelayService) Forward(ctx context.Context, sender domain.SessionID, kind domain.SignalKind, recipient domain.SessionID, payload json.RawMessage) error {
	err := s.gateway.Send(ctx, recipient, domain.Signal{
		Kind:    kind,
		Sender:  sender,
		Payload: payload,
	})
	if errors.Is(err, domain.ErrUnknownRecipient) {
		log.Debug().Str("kind", string(kind)).Str("recipient", recipient.String()).Msg("Relay recipient not connected")
		return s.gateway.Send(ctx, sender, domain.DeliveryFailure{Kind: kind, Recipient: recipient})
	}
	return err
}

// MediaError echoes a client-reported media failure back on the reporter's
// own channel, never to a peer.
func (s *RelayService) MediaError(ctx context.Context, sender domain.SessionID, message string) error {
	if message == "" {
		message = domain.DefaultMediaErrorMessage
	}
	return s.gateway.Send(ctx, sender, domain.MediaError{Message: message})
}
