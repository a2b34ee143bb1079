package realtime

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

// Frame is the wire shape of every server-to-client event.
type Frame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSSession wraps one websocket connection as a Session. Writes are
// serialized with a mutex so fan-out from concurrent rooms never interleaves
// frames on the wire.
type WSSession struct {
	id     string
	userID string
	conn   *websocket.Conn
	mu     sync.Mutex
}

func NewWSSession(conn *websocket.Conn, userID string) *WSSession {
	return &WSSession{
		id:     uuid.New().String(),
		userID: userID,
		conn:   conn,
	}
}

func (s *WSSession) ID() string     { return s.id }
func (s *WSSession) UserID() string { return s.userID }

// Send writes one event frame. Payloads already serialized (json.RawMessage)
// pass through untouched; anything else is marshalled here.
func (s *WSSession) Send(event string, payload any) error {
	frame := Frame{Event: event}
	switch p := payload.(type) {
	case json.RawMessage:
		frame.Payload = p
	case nil:
	default:
		raw, err := json.Marshal(p)
		if err != nil {
			return err
		}
		frame.Payload = raw
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return websocket.JSON.Send(s.conn, frame)
}
