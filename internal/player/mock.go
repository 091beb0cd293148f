package player

import (
	"context"
	"sync"
	"time"
)

// MockSource is the Source returned by Mock.Open.
type MockSource struct {
	location string
	duration time.Duration
	mu       sync.Mutex
	closed   bool
}

func (s *MockSource) Location() string        { return s.location }
func (s *MockSource) Duration() time.Duration { return s.duration }
func (s *MockSource) Info() *TrackInfo {
	return &TrackInfo{Location: s.location, Title: baseName(s.location), Duration: s.duration}
}

func (s *MockSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *MockSource) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Mock is a test double for Player. It is safe for concurrent use.
type Mock struct {
	mu        sync.Mutex
	state     State
	current   *MockSource
	position  time.Duration
	volume    float64
	durations map[string]time.Duration
	openErrs  map[string]error
	startErr  error
	gates     map[string]chan struct{}
	openCalls []string
	seekCalls []time.Duration
	sources   []*MockSource
	stopCalls int
	opening   chan string
	events    chan Event
	closed    bool
}

// DefaultMockDuration is the duration of sources without an explicit one.
const DefaultMockDuration = 3 * time.Minute

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		state:     Stopped,
		volume:    1,
		durations: make(map[string]time.Duration),
		openErrs:  make(map[string]error),
		gates:     make(map[string]chan struct{}),
		opening:   make(chan string, 64),
		events:    make(chan Event, 64),
	}
}

func (m *Mock) Open(ctx context.Context, location string) (Source, error) {
	m.mu.Lock()
	m.openCalls = append(m.openCalls, location)
	gate := m.gates[location]
	err := m.openErrs[location]
	d, ok := m.durations[location]
	if !ok {
		d = DefaultMockDuration
	}
	m.mu.Unlock()

	select {
	case m.opening <- location:
	default:
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}

	src := &MockSource{location: location, duration: d}
	m.mu.Lock()
	m.sources = append(m.sources, src)
	m.mu.Unlock()
	return src, nil
}

func (m *Mock) Start(src Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.startErr != nil {
		return m.startErr
	}
	s, ok := src.(*MockSource)
	if !ok {
		return ErrForeignSource
	}
	if m.current != nil && m.current != s {
		_ = m.current.Close()
	}
	m.current = s
	m.position = 0
	m.state = Playing
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return ErrNoSource
	}
	if m.state == Paused {
		m.state = Playing
	}
	return nil
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
	if m.current != nil {
		_ = m.current.Close()
		m.current = nil
	}
	m.position = 0
	m.state = Stopped
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return 0
	}
	return m.current.duration
}

func (m *Mock) SetPosition(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
	if m.current == nil {
		return ErrNoSource
	}
	m.position = pos
	return nil
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = ClampVolume(level)
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) Events() <-chan Event {
	return m.events
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.state = Stopped
	return nil
}

// Test helpers

// SetDuration sets the duration of sources opened for location.
func (m *Mock) SetDuration(location string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[location] = d
}

// SetOpenError makes Open fail for location. A nil err clears it.
func (m *Mock) SetOpenError(location string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.openErrs, location)
		return
	}
	m.openErrs[location] = err
}

// SetStartError makes Start fail. A nil err clears it.
func (m *Mock) SetStartError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startErr = err
}

// BlockOpen makes Open for location wait until the returned release
// function is called.
func (m *Mock) BlockOpen(location string) (release func()) {
	gate := make(chan struct{})
	m.mu.Lock()
	m.gates[location] = gate
	m.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.gates, location)
			m.mu.Unlock()
			close(gate)
		})
	}
}

// Opening receives the location of every Open call as it begins.
func (m *Mock) Opening() <-chan string { return m.opening }

// OpenCalls returns the locations passed to Open.
func (m *Mock) OpenCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.openCalls...)
}

// SeekCalls returns the positions passed to SetPosition.
func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

// Sources returns every source Open has produced.
func (m *Mock) Sources() []*MockSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MockSource(nil), m.sources...)
}

// Current returns the started source, or nil.
func (m *Mock) Current() *MockSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// StopCalls returns how many times Stop was called.
func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// SetState forces the media state.
func (m *Mock) SetState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

// Emit delivers ev on the events channel.
func (m *Mock) Emit(ev Event) {
	m.events <- ev
}

// SimulateEnded stops the current source and emits EventEnded for it.
func (m *Mock) SimulateEnded() {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return
	}
	ev := Event{Kind: EventEnded, Location: m.current.location, Position: m.current.duration, Duration: m.current.duration}
	m.current = nil
	m.state = Stopped
	m.mu.Unlock()
	m.Emit(ev)
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
