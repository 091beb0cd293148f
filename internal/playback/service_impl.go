package playback

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/player"
	"github.com/llehouerou/tunedeck/internal/playlist"
)

// DefaultVolume is the level a new session starts at.
const DefaultVolume = 0.75

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.RWMutex

	player  player.Interface
	queue   *playlist.Queue
	history *playlist.History

	state      State
	current    *playlist.Track
	position   time.Duration
	duration   time.Duration
	mediaReady bool   // the player holds a started source for current
	token      uint64 // incremented by every load
	ent        Entitlement
	repeat     RepeatMode

	sleepTimer    *time.Timer
	sleepDeadline time.Time
	sleepID       uint64

	logger *zap.Logger
	now    func() time.Time
	volume float64

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// Option configures the service.
type Option func(*serviceImpl)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *serviceImpl) { s.logger = l }
}

// WithClock sets the time source used for history timestamps and the sleep
// timer deadline.
func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) { s.now = now }
}

// WithQueue sets the queue. Useful to inject a seeded shuffle.
func WithQueue(q *playlist.Queue) Option {
	return func(s *serviceImpl) { s.queue = q }
}

// WithHistorySize overrides playlist.DefaultHistorySize.
func WithHistorySize(n int) Option {
	return func(s *serviceImpl) { s.history = playlist.NewHistory(n) }
}

// WithVolume sets the initial output level instead of DefaultVolume.
func WithVolume(level float64) Option {
	return func(s *serviceImpl) { s.volume = level }
}

// New creates an idle playback service driving p.
func New(p player.Interface, opts ...Option) Service {
	s := &serviceImpl{
		player:  p,
		queue:   playlist.NewQueue(),
		history: playlist.NewHistory(playlist.DefaultHistorySize),
		state:   StateIdle,
		logger:  zap.NewNop(),
		now:     time.Now,
		volume:  DefaultVolume,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	p.SetVolume(player.ClampVolume(s.volume))
	return s
}

// State returns the current session state.
func (s *serviceImpl) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsPlaying returns true if the session is playing.
func (s *serviceImpl) IsPlaying() bool {
	return s.State() == StatePlaying
}

// Position returns the last known playback position.
func (s *serviceImpl) Position() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.position
}

// Duration returns the duration of the current track, 0 until known.
func (s *serviceImpl) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.duration
}

// CurrentTrack returns a copy of the current track, or nil if none.
func (s *serviceImpl) CurrentTrack() *playlist.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentCopyLocked()
}

func (s *serviceImpl) currentCopyLocked() *playlist.Track {
	if s.current == nil {
		return nil
	}
	t := *s.current
	return &t
}

// Queue returns a copy of all tracks in the queue.
func (s *serviceImpl) Queue() []playlist.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Tracks()
}

// QueueIndex returns the queue position of the current track (-1 if none).
func (s *serviceImpl) QueueIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentIndexLocked()
}

func (s *serviceImpl) currentIndexLocked() int {
	if s.current == nil {
		return -1
	}
	return s.queue.IndexOf(s.current.ID)
}

// History returns the recently played tracks, oldest first.
func (s *serviceImpl) History() []playlist.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Entries()
}

// SetQueue replaces the queue. The current track and state are untouched.
func (s *serviceImpl) SetQueue(tracks []playlist.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Set(tracks)
	s.emitQueueLocked()
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close stops playback and signals subscribers. Safe to call twice.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.token++
	s.stopSleepTimerLocked()
	s.player.Stop()
	s.mediaReady = false
	close(s.done)
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

func (s *serviceImpl) setStateLocked(next State) {
	if s.state == next {
		return
	}
	prev := s.state
	s.state = next
	s.logger.Debug("playback state", zap.Stringer("from", prev), zap.Stringer("to", next))
	s.broadcast(func(sub *Subscription) {
		sub.sendState(StateChange{Previous: prev, Current: next})
	})
}

func (s *serviceImpl) emitQueueLocked() {
	e := QueueChange{Tracks: s.queue.Tracks(), Index: s.currentIndexLocked()}
	s.broadcast(func(sub *Subscription) { sub.sendQueue(e) })
}

func (s *serviceImpl) emitModeLocked() {
	e := ModeChange{RepeatMode: s.repeat, Shuffle: s.queue.IsShuffled()}
	s.broadcast(func(sub *Subscription) { sub.sendMode(e) })
}

func (s *serviceImpl) emitPositionLocked() {
	e := PositionChange{Position: s.position, Duration: s.duration}
	s.broadcast(func(sub *Subscription) { sub.sendPosition(e) })
}

func (s *serviceImpl) emitError(op string, t *playlist.Track, err error) {
	s.broadcast(func(sub *Subscription) {
		sub.sendError(ErrorEvent{Operation: op, Track: t, Err: err})
	})
}

func (s *serviceImpl) broadcast(fn func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		fn(sub)
	}
}
