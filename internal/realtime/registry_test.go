package realtime

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
)

// fakeSession collects sent events in memory.
type fakeSession struct {
	id     string
	mu     sync.Mutex
	events []string
	fail   bool
}

func newFakeSession(id string) *fakeSession {
	return &fakeSession{id: id}
}

func (s *fakeSession) ID() string { return s.id }

func (s *fakeSession) Send(event string, payload any) error {
	if s.fail {
		return fmt.Errorf("connection gone")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *fakeSession) received() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func testRegistry() *Registry {
	return NewRegistry(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func TestJoinIdempotent(t *testing.T) {
	reg := testRegistry()
	conn := newFakeSession("s1")
	room := CohortRoom("c1")

	reg.Join(conn, room)
	reg.Join(conn, room)

	members := reg.MembersOf(room)
	if len(members) != 1 {
		t.Fatalf("MembersOf = %d sessions, want 1", len(members))
	}

	// Double join must not produce duplicate delivery.
	if got := reg.Broadcast(room, "x", nil); got != 1 {
		t.Fatalf("Broadcast delivered %d, want 1", got)
	}
	if conn.received() != 1 {
		t.Fatalf("session received %d events, want 1", conn.received())
	}
}

func TestLeaveRemovesAllMemberships(t *testing.T) {
	reg := testRegistry()
	conn := newFakeSession("s1")
	rooms := []RoomKey{CohortRoom("c1"), TeamRoom("t1"), UserRoom("u1")}

	for _, room := range rooms {
		reg.Join(conn, room)
	}
	reg.Leave(conn)

	for _, room := range rooms {
		if members := reg.MembersOf(room); len(members) != 0 {
			t.Errorf("room %s still has %d members after Leave", room, len(members))
		}
	}

	// Leaving again is a no-op, not an error.
	reg.Leave(conn)
}

func TestIdentifyJoinsPersonalRoom(t *testing.T) {
	reg := testRegistry()
	conn := newFakeSession("s1")

	reg.Identify(conn, "u42")

	members := reg.MembersOf(UserRoom("u42"))
	if len(members) != 1 || members[0].ID() != "s1" {
		t.Fatalf("personal room members = %v", members)
	}
}

func TestMembersOfEmptyRoom(t *testing.T) {
	reg := testRegistry()
	if members := reg.MembersOf(CohortRoom("nobody")); len(members) != 0 {
		t.Fatalf("empty room returned %d members", len(members))
	}
}

func TestLeaveRoomSingleMembership(t *testing.T) {
	reg := testRegistry()
	conn := newFakeSession("s1")

	reg.Join(conn, CohortRoom("c1"))
	reg.Join(conn, TeamRoom("t1"))
	reg.LeaveRoom(conn, CohortRoom("c1"))

	if len(reg.MembersOf(CohortRoom("c1"))) != 0 {
		t.Error("left room still lists the session")
	}
	if len(reg.MembersOf(TeamRoom("t1"))) != 1 {
		t.Error("unrelated membership was dropped")
	}
}

func TestBroadcastSkipsFailedSends(t *testing.T) {
	reg := testRegistry()
	healthy := newFakeSession("s1")
	broken := newFakeSession("s2")
	broken.fail = true
	room := TeamRoom("t1")

	reg.Join(healthy, room)
	reg.Join(broken, room)

	if got := reg.Broadcast(room, "teamMessage", nil); got != 1 {
		t.Fatalf("Broadcast delivered %d, want 1", got)
	}
	if healthy.received() != 1 {
		t.Errorf("healthy session received %d events", healthy.received())
	}
}

func TestConcurrentJoinLeave(t *testing.T) {
	reg := testRegistry()
	room := CohortRoom("c1")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		conn := newFakeSession(fmt.Sprintf("s%d", i))
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Join(conn, room)
			reg.Join(conn, room)
			reg.Broadcast(room, "x", nil)
			reg.Leave(conn)
		}()
	}
	wg.Wait()

	if members := reg.MembersOf(room); len(members) != 0 {
		t.Fatalf("%d members remain after everyone left", len(members))
	}
}
