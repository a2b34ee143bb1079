package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/SAP-F-2025/collaboration-service/internal/events"
)

// Bridge consumes realtime envelopes from the event bus and fans them out to
// room members. Running exactly one bridge per process keeps delivery order
// within a room equal to publish (and therefore persistence) order.
type Bridge struct {
	subscriber message.Subscriber
	registry   *Registry
	logger     *slog.Logger
}

func NewBridge(subscriber message.Subscriber, registry *Registry, logger *slog.Logger) *Bridge {
	return &Bridge{
		subscriber: subscriber,
		registry:   registry,
		logger:     logger,
	}
}

// Run blocks consuming the realtime topic until ctx is cancelled or the
// subscriber closes.
func (b *Bridge) Run(ctx context.Context) error {
	messages, err := b.subscriber.Subscribe(ctx, events.TopicRealtime)
	if err != nil {
		return err
	}

	for msg := range messages {
		var env events.Envelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			b.logger.Error("dropping malformed realtime envelope",
				"message_id", msg.UUID,
				"error", err)
			msg.Ack()
			continue
		}

		delivered := b.registry.Broadcast(RoomKey(env.Room), env.Event, env.Payload)
		b.logger.Debug("realtime fan-out",
			"event", env.Event,
			"room", env.Room,
			"delivered", delivered)
		msg.Ack()
	}
	return nil
}
