package testutil

import (
	"context"
	"sync"
)

// PublishedEvent is one event recorded by the mock publisher
type PublishedEvent struct {
	RoutingKey string
	Data       interface{}
}

// MockPublisher records events in memory instead of talking to RabbitMQ
type MockPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

// NewMockPublisher creates a new mock publisher
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, eventData interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, PublishedEvent{RoutingKey: routingKey, Data: eventData})
	return nil
}

func (m *MockPublisher) Close() error { return nil }

// Events returns a copy of the recorded events
func (m *MockPublisher) Events() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishedEvent(nil), m.events...)
}

// RoutingKeys returns the routing keys of all recorded events in order
func (m *MockPublisher) RoutingKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.events))
	for _, e := range m.events {
		keys = append(keys, e.RoutingKey)
	}
	return keys
}
