package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/and734/p2p-chat/internal/adapter/driven/gateway/ws"
	"github.com/and734/p2p-chat/internal/config"
	"github.com/and734/p2p-chat/internal/core/domain"
	"github.com/and734/p2p-chat/internal/core/service"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Addr:            ":0",
		StaticDir:       t.TempDir(),
		LogLevel:        "info",
		SendBufferSize:  16,
		MaxMessageSize:  64 * 1024,
		WriteTimeout:    time.Second,
		PongTimeout:     30 * time.Second,
		ShutdownTimeout: time.Second,
	}
}

func newTestHandler(t *testing.T) (*Handler, *service.RoomService) {
	t.Helper()
	hub := ws.NewHub()
	rooms := service.NewRoomService(hub)
	relay := service.NewRelayService(hub)
	return NewHandler(rooms, relay, hub, testConfig(t)), rooms
}

func postRoom(t *testing.T, h http.Handler, name string) (int, roomResponse) {
	t.Helper()
	form := "roomName=" + name
	req := httptest.NewRequest(http.MethodPost, "/room", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp roomResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestRoomDecision_BlankNameRejected(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.NewRouter()

	// "+++" is form encoding for "   ": whitespace-only fails like empty.
	for _, name := range []string{"", "+++"} {
		code, resp := postRoom(t, router, name)
		require.Equal(t, http.StatusBadRequest, code)
		require.Equal(t, "error", resp.Status)
		require.Equal(t, "Please enter a valid room name.", resp.Message)
	}
}

func TestRoomDecision_CreateJoinFull(t *testing.T) {
	h, rooms := newTestHandler(t)
	router := h.NewRouter()

	code, resp := postRoom(t, router, "lobby")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "create", resp.Status)
	require.Equal(t, "lobby", resp.RoomName)

	require.NoError(t, rooms.Join(context.Background(), domain.NewSessionID(), "lobby"))
	code, resp = postRoom(t, router, "lobby")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "join", resp.Status)
	require.Equal(t, "lobby", resp.RoomName)

	require.NoError(t, rooms.Join(context.Background(), domain.NewSessionID(), "lobby"))
	code, resp = postRoom(t, router, "lobby")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "full", resp.Status)
	require.Equal(t, "Room is full.", resp.Message)
}

func TestRoomDecision_TrimsName(t *testing.T) {
	h, rooms := newTestHandler(t)
	router := h.NewRouter()

	require.NoError(t, rooms.Join(context.Background(), domain.NewSessionID(), "lobby"))

	code, resp := postRoom(t, router, "++lobby++")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "join", resp.Status)
	require.Equal(t, "lobby", resp.RoomName)
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "healthy")
}
