package realtime

import (
	"log/slog"
	"sync"
)

// RoomKey identifies a logical delivery channel: "cohort:{id}", "team:{id}"
// or "user:{id}". Rooms exist only as live membership; nothing is persisted.
type RoomKey string

func CohortRoom(id string) RoomKey { return RoomKey("cohort:" + id) }
func TeamRoom(id string) RoomKey   { return RoomKey("team:" + id) }
func UserRoom(id string) RoomKey   { return RoomKey("user:" + id) }

// Session is one connected realtime client. Send must be safe to call
// concurrently and after the underlying connection is gone (return an error,
// never block or panic).
type Session interface {
	ID() string
	Send(event string, payload any) error
}

// Registry is the room membership index: a forward map from room to sessions
// and a reverse map from session to its rooms so disconnect cleanup is O(1)
// per membership. It is the only in-process shared mutable state of the
// service; one mutex makes membership changes and fan-out snapshots
// linearizable per room.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[RoomKey]map[string]Session
	sessions map[string]map[RoomKey]struct{}
	logger   *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		rooms:    make(map[RoomKey]map[string]Session),
		sessions: make(map[string]map[RoomKey]struct{}),
		logger:   logger,
	}
}

// Join adds a session to a room. Idempotent: joining the same room twice
// has no additional effect, so a member never receives duplicate deliveries.
func (r *Registry) Join(s Session, room RoomKey) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		members = make(map[string]Session)
		r.rooms[room] = members
	}
	members[s.ID()] = s

	keys, ok := r.sessions[s.ID()]
	if !ok {
		keys = make(map[RoomKey]struct{})
		r.sessions[s.ID()] = keys
	}
	keys[room] = struct{}{}
}

// Identify joins the session to its personal room. Direct messages and
// notifications cannot reach a connection before this is called.
func (r *Registry) Identify(s Session, userID string) {
	r.Join(s, UserRoom(userID))
}

// LeaveRoom removes a single membership. No-op if absent.
func (r *Registry) LeaveRoom(s Session, room RoomKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeMembership(s.ID(), room)
}

// Leave removes every membership of the session, typically on disconnect.
// No error if it had none.
func (r *Registry) Leave(s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for room := range r.sessions[s.ID()] {
		r.removeMembership(s.ID(), room)
	}
	delete(r.sessions, s.ID())
}

func (r *Registry) removeMembership(sessionID string, room RoomKey) {
	if members, ok := r.rooms[room]; ok {
		delete(members, sessionID)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
	if keys, ok := r.sessions[sessionID]; ok {
		delete(keys, room)
	}
}

// MembersOf snapshots the current members of a room. Empty slice when the
// room has no live members; delivery to disconnected users happens later via
// their history fetch, not here.
func (r *Registry) MembersOf(room RoomKey) []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]Session, 0, len(r.rooms[room]))
	for _, s := range r.rooms[room] {
		members = append(members, s)
	}
	return members
}

// Broadcast delivers an event to every current member of a room,
// best-effort. Send failures (stale connections mid-teardown) are logged and
// swallowed; the durable store is the source of truth. Returns the number of
// sessions that accepted the event.
func (r *Registry) Broadcast(room RoomKey, event string, payload any) int {
	delivered := 0
	for _, s := range r.MembersOf(room) {
		if err := s.Send(event, payload); err != nil {
			r.logger.Warn("realtime delivery failed",
				"room", string(room),
				"session_id", s.ID(),
				"error", err)
			continue
		}
		delivered++
	}
	return delivered
}
