package events

import (
	"context"
	"log/slog"
	"sync"
)

// MockEventPublisher records events in memory. Used in tests and as the
// fallback when no broker is configured.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

// Publish records the event.
func (m *MockEventPublisher) Publish(_ context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)
	m.logger.Debug("event recorded", "event_type", event.Type, "event_id", event.ID)

	return nil
}

// Close is a no-op.
func (m *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns a copy of everything published so far.
func (m *MockEventPublisher) GetPublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// ClearEvents resets the recorded events.
func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = nil
}
