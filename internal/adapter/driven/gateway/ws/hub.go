package ws

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/and734/p2p-chat/internal/core/domain"
	"github.com/and734/p2p-chat/internal/core/port"
)

// Hub is the session registry: every live connection, keyed by session id.
// It implements port.RealTimeGateway.
type Hub struct {
	mu      sync.RWMutex
	clients map[domain.SessionID]port.Client
	closed  bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[domain.SessionID]port.Client),
	}
}

func (h *Hub) Register(c port.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		c.Close()
		return
	}
	h.clients[c.ID()] = c
	log.Info().Str("session_id", c.ID().String()).Msg("Session registered")
}

func (h *Hub) Unregister(id domain.SessionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		c.Close()
		log.Info().Str("session_id", id.String()).Msg("Session unregistered")
	}
}

// Send pushes an event to one session. Unknown ids report
// domain.ErrUnknownRecipient so callers can decide whether that is worth
// telling anyone about.
func (h *Hub) Send(ctx context.Context, to domain.SessionID, ev domain.Event) error {
	h.mu.RLock()
	c, ok := h.clients[to]
	h.mu.RUnlock()

	if !ok {
		return domain.ErrUnknownRecipient
	}
	return c.SendEvent(ev)
}

func (h *Hub) Connected(id domain.SessionID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[id]
	return ok
}

// Stop closes every connection and refuses new registrations. Used on
// shutdown.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, c := range h.clients {
		c.Close()
		delete(h.clients, id)
	}
}
