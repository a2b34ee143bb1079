package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// NewBus creates the in-process gochannel Pub/Sub backing realtime delivery.
// gochannel delivers to a subscriber in publish order, which upholds the
// per-room ordering guarantee as long as one bridge consumes the topic.
func NewBus(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewSlogLogger(logger),
	)
}

// watermillPublisher adapts a watermill publisher to the Publisher interface.
type watermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewBusPublisher publishes envelopes onto the in-process bus.
func NewBusPublisher(bus *gochannel.GoChannel) Publisher {
	return &watermillPublisher{publisher: bus, topic: TopicRealtime}
}

// NewKafkaPublisher mirrors envelopes to Kafka so sibling processes can run
// their own realtime bridges. Configured only when brokers are set.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (Publisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}
	return &watermillPublisher{publisher: publisher, topic: TopicRealtime}, nil
}

func (p *watermillPublisher) Publish(ctx context.Context, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.publisher.Publish(p.topic, msg)
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}

// MultiPublisher fans one envelope out to several publishers (bus + Kafka
// mirror). The first error is returned after every publisher was attempted.
type MultiPublisher struct {
	publishers []Publisher
}

func NewMultiPublisher(publishers ...Publisher) *MultiPublisher {
	return &MultiPublisher{publishers: publishers}
}

func (m *MultiPublisher) Publish(ctx context.Context, env Envelope) error {
	var firstErr error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, env); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *MultiPublisher) Close() error {
	var firstErr error
	for _, p := range m.publishers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
