package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/and734/p2p-chat/internal/core/domain"
)

// WSClient wraps one websocket connection. All writes go through the send
// channel and a single write pump; the serving goroutine owns all reads.
type WSClient struct {
	id   domain.SessionID
	conn *websocket.Conn
	send chan domain.Event
	done chan struct{}
	once sync.Once
	log  zerolog.Logger

	writeTimeout time.Duration
	pingPeriod   time.Duration
}

func (c *WSClient) ID() domain.SessionID {
	return c.id
}

// SendEvent queues an event for the write pump. Delivery is fire-and-forget:
// a full buffer or a closed connection drops the event rather than blocking
// room bookkeeping.
func (c *WSClient) SendEvent(ev domain.Event) error {
	select {
	case <-c.done:
		return nil
	case c.send <- ev:
		return nil
	default:
		c.log.Warn().Str("event", ev.Name()).Msg("Send buffer full, dropping event")
		return nil
	}
}

func (c *WSClient) Close() error {
	c.once.Do(func() {
		close(c.done)
	})
	return c.conn.Close()
}

func (c *WSClient) writePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case ev := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.conn.WriteJSON(encodeEvent(ev)); err != nil {
				c.log.Error().Err(err).Msg("Error writing event")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWS upgrades the connection, assigns the session id, and pumps inbound
// frames into the room and relay services until the channel closes.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	client := &WSClient{
		id:           domain.NewSessionID(),
		conn:         conn,
		send:         make(chan domain.Event, h.cfg.SendBufferSize),
		done:         make(chan struct{}),
		writeTimeout: h.cfg.WriteTimeout,
		pingPeriod:   h.cfg.PingPeriod(),
	}
	client.log = log.With().Str("session_id", client.id.String()).Logger()

	client.log.Info().Msg("New session connected")
	h.hub.Register(client)
	go client.writePump()

	defer func() {
		client.log.Info().Msg("Session disconnected")
		h.hub.Unregister(client.id)
		h.rooms.Disconnect(context.Background(), client.id)
	}()

	conn.SetReadLimit(h.cfg.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	})

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				client.log.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}
		h.dispatch(r.Context(), client, frame)
	}
}

func (h *Handler) dispatch(ctx context.Context, client *WSClient, frame inboundFrame) {
	switch frame.Event {
	case "join":
		err := h.rooms.Join(ctx, client.id, frame.RoomName)
		switch {
		case errors.Is(err, domain.ErrRoomFull):
			client.SendEvent(domain.ErrorEvent{Message: "Room is full."})
		case errors.Is(err, domain.ErrAlreadyInRoom):
			client.SendEvent(domain.ErrorEvent{Message: "Already joined another room."})
		case errors.Is(err, domain.ErrRoomNameEmpty):
			client.SendEvent(domain.ErrorEvent{Message: "Please enter a valid room name."})
		case err != nil:
			client.log.Error().Err(err).Msg("Failed to join room")
		}

	case "offer":
		h.forward(ctx, client, domain.KindOffer, frame.RecipientSID, frame.Offer)

	case "answer":
		h.forward(ctx, client, domain.KindAnswer, frame.RecipientSID, frame.Answer)

	case "ice_candidate":
		h.forward(ctx, client, domain.KindCandidate, frame.RecipientSID, frame.Candidate)

	case "error_media":
		if err := h.relay.MediaError(ctx, client.id, frame.Message); err != nil {
			client.log.Error().Err(err).Msg("Failed to echo media error")
		}

	default:
		client.log.Warn().Str("event", frame.Event).Msg("Unknown event")
	}
}

func (h *Handler) forward(ctx context.Context, client *WSClient, kind domain.SignalKind, recipient string, payload []byte) {
	err := h.relay.Forward(ctx, client.id, kind, domain.SessionID(recipient), payload)
	if err != nil {
		client.log.Error().Err(err).Str("kind", string(kind)).Msg("Failed to relay signal")
	}
}
