package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/and734/p2p-chat/internal/adapter/driven/gateway/ws"
	"github.com/and734/p2p-chat/internal/config"
	"github.com/and734/p2p-chat/internal/core/service"
)

type Handler struct {
	rooms    *service.RoomService
	relay    *service.RelayService
	hub      *ws.Hub
	cfg      config.Config
	validate *validator.Validate
	upgrader websocket.Upgrader
}

func NewHandler(rooms *service.RoomService, relay *service.RelayService, hub *ws.Hub, cfg config.Config) *Handler {
	h := &Handler{
		rooms:    rooms,
		relay:    relay,
		hub:      hub,
		cfg:      cfg,
		validate: validator.New(),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if cfg.AllowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == cfg.AllowedOrigin
		},
	}
	return h
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/room", h.RoomDecision)
	r.Get("/ws", h.ServeWS)
	r.Get("/healthz", h.Health)

	fs := http.FileServer(http.Dir(h.cfg.StaticDir))
	r.Handle("/*", fs)

	return r
}

type roomRequest struct {
	RoomName string `validate:"required"`
}

type roomResponse struct {
	Status   string `json:"status"`
	RoomName string `json:"roomName,omitempty"`
	Message  string `json:"message,omitempty"`
}

// RoomDecision answers whether a room name would be created, joined, or is
// already full. Advisory only; the join itself re-checks capacity.
func (h *Handler) RoomDecision(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("roomName"))

	if err := h.validate.Struct(roomRequest{RoomName: name}); err != nil {
		writeJSON(w, http.StatusBadRequest, roomResponse{
			Status:  "error",
			Message: "Please enter a valid room name.",
		})
		return
	}

	switch h.rooms.Decide(name) {
	case service.DecisionFull:
		writeJSON(w, http.StatusOK, roomResponse{Status: string(service.DecisionFull), Message: "Room is full."})
	case service.DecisionJoin:
		writeJSON(w, http.StatusOK, roomResponse{Status: string(service.DecisionJoin), RoomName: name})
	default:
		writeJSON(w, http.StatusOK, roomResponse{Status: string(service.DecisionCreate), RoomName: name})
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Signaling server is healthy."))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
