package events

import (
	"context"
	"log/slog"
	"sync"
)

// MockEventPublisher records envelopes in memory for tests.
type MockEventPublisher struct {
	mu        sync.Mutex
	published []Envelope
	logger    *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) Publish(ctx context.Context, env Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, env)
	m.logger.Debug("mock publish", "event", env.Event, "room", env.Room)
	return nil
}

func (m *MockEventPublisher) Close() error { return nil }

// GetPublishedEvents returns a copy of everything published so far.
func (m *MockEventPublisher) GetPublishedEvents() []Envelope {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Envelope, len(m.published))
	copy(out, m.published)
	return out
}

// Reset clears the recorded envelopes.
func (m *MockEventPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = nil
}
