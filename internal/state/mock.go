package state

import (
	"context"
	"database/sql"
	"sync"
)

// Mock is an in-memory test double for Manager.
type Mock struct {
	mu         sync.Mutex
	session    *Session
	volume     *float64
	navState   *NavigationState
	queueState *QueueState
	closed     bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) Session(_ context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil //nolint:nilnil // signed out
	}
	s := *m.session
	return &s, nil
}

func (m *Mock) SaveSession(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
	return nil
}

func (m *Mock) ClearSession(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *Mock) Volume(_ context.Context, def float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.volume == nil {
		return def, nil
	}
	return *m.volume, nil
}

func (m *Mock) SaveVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = &level
}

func (m *Mock) GetNavigation(_ context.Context) (*NavigationState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.navState, nil
}

func (m *Mock) SaveNavigation(state NavigationState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.navState = &state
}

func (m *Mock) SaveQueue(_ context.Context, state QueueState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueState = &state
	return nil
}

func (m *Mock) GetQueue(_ context.Context) (*QueueState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queueState == nil {
		return &QueueState{CurrentIndex: -1}, nil
	}
	return m.queueState, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
