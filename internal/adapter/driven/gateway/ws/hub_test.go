package ws

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/and734/p2p-chat/internal/core/domain"
)

type fakeClient struct {
	id     domain.SessionID
	mu     sync.Mutex
	events []domain.Event
	closed bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{id: domain.NewSessionID()}
}

func (c *fakeClient) ID() domain.SessionID { return c.id }

func (c *fakeClient) SendEvent(ev domain.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func TestHub_SendReachesRegisteredClient(t *testing.T) {
	hub := NewHub()
	a, b := newFakeClient(), newFakeClient()
	hub.Register(a)
	hub.Register(b)

	ev := domain.NewPeer{SID: b.id}
	require.NoError(t, hub.Send(context.Background(), a.id, ev))

	require.Equal(t, []domain.Event{ev}, a.events)
	require.Empty(t, b.events)
	require.True(t, hub.Connected(a.id))
}

func TestHub_SendToUnknownSession(t *testing.T) {
	hub := NewHub()

	err := hub.Send(context.Background(), domain.NewSessionID(), domain.NewPeer{})
	require.ErrorIs(t, err, domain.ErrUnknownRecipient)
}

func TestHub_UnregisterClosesAndForgets(t *testing.T) {
	hub := NewHub()
	c := newFakeClient()
	hub.Register(c)

	hub.Unregister(c.id)

	require.True(t, c.closed)
	require.False(t, hub.Connected(c.id))
	require.ErrorIs(t, hub.Send(context.Background(), c.id, domain.NewPeer{}), domain.ErrUnknownRecipient)

	// Unregistering twice is harmless.
	hub.Unregister(c.id)
}

func TestHub_StopClosesEveryoneAndRefusesNewcomers(t *testing.T) {
	hub := NewHub()
	a, b := newFakeClient(), newFakeClient()
	hub.Register(a)
	hub.Register(b)

	hub.Stop()

	require.True(t, a.closed)
	require.True(t, b.closed)

	late := newFakeClient()
	hub.Register(late)
	require.True(t, late.closed)
	require.False(t, hub.Connected(late.id))
}
