package mocks

import (
	"context"
	"sync"

	"github.com/itomysh95/task-manager-project/internal/events"
)

// MockEventEmitter implements events.EventEmitter for testing
type MockEventEmitter struct {
	// EmitEventFn allows test cases to mock the EmitEvent behavior
	EmitEventFn func(ctx context.Context, event *events.AccountEvent) error

	// EmitErr is returned by the default EmitEvent implementation
	EmitErr error

	mu      sync.Mutex
	emitted []*events.AccountEvent
}

// EmitEvent implements the events.EventEmitter interface
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.AccountEvent) error {
	if m.EmitEventFn != nil {
		return m.EmitEventFn(ctx, event)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.emitted = append(m.emitted, event)
	return m.EmitErr
}

// Emitted returns a copy of every event recorded so far.
func (m *MockEventEmitter) Emitted() []*events.AccountEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.AccountEvent, len(m.emitted))
	copy(out, m.emitted)
	return out
}
