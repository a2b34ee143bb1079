package events

import (
	"context"
	"encoding/json"
	"fmt"
)

// TopicRealtime carries every realtime delivery event. A single topic keeps
// fan-out order aligned with publish order, which is what gives each room
// persistence-order delivery.
const TopicRealtime = "collab.realtime.events"

// Event names as seen by connected clients.
const (
	EventCohortMessage = "cohortMessage"
	EventTeamMessage   = "teamMessage"
	EventDirectMessage = "directMessage"
	EventNotification  = "notification"
)

// Envelope is the unit published for every realtime event: which room it
// goes to, the client-visible event name, and the serialized payload.
type Envelope struct {
	Event   string          `json:"event"`
	Room    string          `json:"room"`
	Payload json.RawMessage `json:"payload"`
}

// NewEnvelope serializes payload into an envelope for the given room.
func NewEnvelope(event, room string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return Envelope{Event: event, Room: room, Payload: raw}, nil
}

// Publisher emits realtime envelopes. Delivery is best-effort: callers
// publish after persistence has committed and never roll back on publish
// failure.
type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
	Close() error
}
