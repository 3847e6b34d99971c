package service

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/and734/p2p-chat/internal/core/domain"
	"github.com/and734/p2p-chat/internal/core/port"
)

// maxOccupancy is the pairing cap: a room holds the two ends of one
// peer-to-peer negotiation, never more.
const maxOccupancy = 2

// Decision is the advisory answer to a room request. The authoritative
// capacity check happens again inside Join, which closes the race between
// asking and actually joining.
type Decision string

const (
	DecisionCreate Decision = "create"
	DecisionJoin   Decision = "join"
	DecisionFull   Decision = "full"
)

// room is one named pairing slot. members keeps join order; gone marks a
// room that has been deleted from the registry so a racing Join can retry
// instead of resurrecting it.
type room struct {
	name    string
	mu      sync.Mutex
	members []domain.SessionID
	gone    bool
}

// RoomService owns the room registry: the room map and the session→room
// index. Join and Disconnect are its only mutation surface. Locking is
// room-grained: s.mu guards the two maps, each room serializes its own
// membership changes and notifications. Lock order is room.mu before s.mu,
// never the reverse while a room lock is held.
type RoomService struct {
	gateway port.RealTimeGateway

	mu       sync.RWMutex
	rooms    map[string]*room
	memberOf map[domain.SessionID]string
}

func NewRoomService(gateway port.RealTimeGateway) *RoomService {
	return &RoomService{
		gateway:  gateway,
		rooms:    make(map[string]*room),
		memberOf: make(map[domain.SessionID]string),
	}
}

// Decide reports whether a room name would be created, joined, or refused.
// Read-only; callers reject blank names before getting here.
func (s *RoomService) Decide(name string) Decision {
	s.mu.RLock()
	r := s.rooms[strings.TrimSpace(name)]
	s.mu.RUnlock()

	if r == nil {
		return DecisionCreate
	}

	r.mu.Lock()
	n := len(r.members)
	gone := r.gone
	r.mu.Unlock()

	switch {
	case gone || n == 0:
		return DecisionCreate
	case n < maxOccupancy:
		return DecisionJoin
	default:
		return DecisionFull
	}
}

// Join adds sid to the named room, creating it if needed. Adding is
// idempotent: a member re-joining its own room only re-emits the joined
// confirmation. A third distinct session gets domain.ErrRoomFull, a session
// already paired elsewhere gets domain.ErrAlreadyInRoom; neither mutates
// anything.
//
// Notifications are emitted inside the room's critical section so that, per
// room, the joiner's confirmation always precedes the peer announcement.
func (s *RoomService) Join(ctx context.Context, sid domain.SessionID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrRoomNameEmpty
	}

	for {
		r := s.getOrCreate(name)

		r.mu.Lock()
		if r.gone {
			// Lost the race against a concurrent delete; the map no
			// longer holds this instance.
			r.mu.Unlock()
			continue
		}

		if lo.Contains(r.members, sid) {
			s.emit(ctx, sid, domain.Joined{SID: sid, Room: name, Participants: len(r.members)})
			r.mu.Unlock()
			return nil
		}

		if len(r.members) >= maxOccupancy {
			r.mu.Unlock()
			return domain.ErrRoomFull
		}

		s.mu.Lock()
		if current, ok := s.memberOf[sid]; ok && current != name {
			s.mu.Unlock()
			s.dropIfEmpty(r)
			r.mu.Unlock()
			return domain.ErrAlreadyInRoom
		}
		s.memberOf[sid] = name
		s.mu.Unlock()

		r.members = append(r.members, sid)
		count := len(r.members)

		log.Info().Str("room", name).Str("session_id", sid.String()).Int("count", count).Msg("Session joined room")

		s.emit(ctx, sid, domain.Joined{SID: sid, Room: name, Participants: count})
		if count == maxOccupancy {
			s.emit(ctx, r.members[0], domain.NewPeer{SID: sid})
		}

		r.mu.Unlock()
		return nil
	}
}

// Disconnect removes sid from its room, deleting the room when it empties
// and telling a remaining member who left. A session with no room is a
// no-op, which makes duplicate disconnect notifications harmless.
func (s *RoomService) Disconnect(ctx context.Context, sid domain.SessionID) {
	s.mu.RLock()
	name, ok := s.memberOf[sid]
	var r *room
	if ok {
		r = s.rooms[name]
	}
	s.mu.RUnlock()

	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := lo.IndexOf(r.members, sid)
	if idx < 0 {
		return
	}
	r.members = append(r.members[:idx], r.members[idx+1:]...)

	s.mu.Lock()
	delete(s.memberOf, sid)
	if len(r.members) == 0 {
		r.gone = true
		delete(s.rooms, r.name)
	}
	s.mu.Unlock()

	if len(r.members) == 0 {
		log.Info().Str("room", r.name).Msg("Room deleted")
		return
	}

	log.Info().Str("room", r.name).Str("session_id", sid.String()).Msg("Session left room")
	s.emit(ctx, r.members[0], domain.PeerDisconnected{SID: sid})
}

func (s *RoomService) getOrCreate(name string) *room {
	s.mu.RLock()
	r := s.rooms[name]
	s.mu.RUnlock()
	if r != nil {
		return r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r = s.rooms[name]; r == nil {
		r = &room{name: name}
		s.rooms[name] = r
	}
	return r
}

// dropIfEmpty deletes a room that a failed join left without members.
// Caller holds r.mu.
func (s *RoomService) dropIfEmpty(r *room) {
	if len(r.members) != 0 {
		return
	}
	r.gone = true
	s.mu.Lock()
	delete(s.rooms, r.name)
	s.mu.Unlock()
}

func (s *RoomService) emit(ctx context.Context, to domain.SessionID, ev domain.Event) {
	if err := s.gateway.Send(ctx, to, ev); err != nil {
		log.Warn().Err(err).Str("session_id", to.String()).Str("event", ev.Name()).Msg("Failed to deliver room event")
	}
}

// members returns a copy of a room's membership, for tests and introspection.
func (s *RoomService) members(name string) []domain.SessionID {
	s.mu.RLock()
	r := s.rooms[name]
	s.mu.RUnlock()
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.SessionID, len(r.members))
	copy(out, r.members)
	return out
}

// roomCount reports how many rooms currently exist.
func (s *RoomService) roomCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
