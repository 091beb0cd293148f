package player

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

// DefaultTimeUpdateInterval is how often EventTimeUpdate is sent while playing.
const DefaultTimeUpdateInterval = 250 * time.Millisecond

var (
	// ErrNoSource is returned by operations that need an active source.
	ErrNoSource = errors.New("no active source")
	// ErrForeignSource is returned when Start is given a Source this player did not open.
	ErrForeignSource = errors.New("source was not opened by this player")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("player closed")
)

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// TrackInfo holds what could be read from a source's embedded tags.
type TrackInfo struct {
	Location   string
	Title      string
	Artist     string
	Album      string
	Year       int
	Track      int
	Genre      string
	Duration   time.Duration
	Format     string
	SampleRate int
	BitDepth   int
}

// Player plays remote or local media through the beep speaker.
type Player struct {
	mu          sync.Mutex
	state       State
	current     *stream
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	volumeLevel float64
	muted       bool
	generation  uint64
	stopTicker  chan struct{}

	client   *http.Client
	logger   *zap.Logger
	interval time.Duration
	events   chan Event
	closed   chan struct{}
	once     sync.Once
}

// Option configures a Player.
type Option func(*Player)

// WithHTTPClient sets the client used to fetch remote media.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Player) { p.client = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Player) { p.logger = l }
}

// WithTimeUpdateInterval sets how often position updates are emitted.
func WithTimeUpdateInterval(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.interval = d
		}
	}
}

// New creates a stopped player.
func New(opts ...Option) *Player {
	p := &Player{
		state:       Stopped,
		volumeLevel: 1,
		client:      http.DefaultClient,
		logger:      zap.NewNop(),
		interval:    DefaultTimeUpdateInterval,
		events:      make(chan Event, 64),
		closed:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start stops any active source and begins playing src.
func (p *Player) Start(src Source) error {
	s, ok := src.(*stream)
	if !ok {
		return ErrForeignSource
	}
	select {
	case <-p.closed:
		return ErrClosed
	default:
	}

	if err := initSpeaker(s.format.SampleRate); err != nil {
		return err
	}

	p.mu.Lock()
	p.stopLocked()

	var out beep.Streamer = s.streamer
	if s.format.SampleRate != speakerSampleRate {
		out = beep.Resample(4, s.format.SampleRate, speakerSampleRate, s.streamer)
	}
	p.generation++
	gen := p.generation
	p.current = s
	p.ctrl = &beep.Ctrl{Streamer: out}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.muted,
	}
	p.state = Playing
	p.stopTicker = make(chan struct{})
	stop := p.stopTicker
	vol := p.volume
	p.mu.Unlock()

	speaker.Play(beep.Seq(vol, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker locked.
		go p.finished(gen)
	})))
	go p.tick(gen, stop)

	p.logger.Debug("media started",
		zap.String("location", s.location),
		zap.Duration("duration", s.duration))
	p.emit(Event{Kind: EventMetadataLoaded, Location: s.location, Duration: s.duration})
	return nil
}

// Stop stops playback and releases the active source.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.state == Stopped {
		return
	}
	speaker.Clear()
	if p.stopTicker != nil {
		close(p.stopTicker)
		p.stopTicker = nil
	}
	if p.current != nil {
		_ = p.current.Close()
		p.current = nil
	}
	p.ctrl = nil
	p.volume = nil
	p.state = Stopped
	p.generation++
}

// finished is called once the stream of generation gen has drained.
func (p *Player) finished(gen uint64) {
	p.mu.Lock()
	if gen != p.generation || p.current == nil {
		p.mu.Unlock()
		return
	}
	s := p.current
	err := s.streamer.Err()
	pos := s.format.SampleRate.D(s.streamer.Position())
	p.stopLocked()
	p.mu.Unlock()

	if err != nil {
		p.logger.Warn("media stream failed", zap.String("location", s.location), zap.Error(err))
		p.emit(Event{Kind: EventError, Location: s.location, Position: pos, Err: err})
		return
	}
	p.emit(Event{Kind: EventEnded, Location: s.location, Position: pos, Duration: s.duration})
}

func (p *Player) tick(gen uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.mu.Lock()
			if gen != p.generation || p.state != Playing {
				p.mu.Unlock()
				continue
			}
			loc := p.current.location
			dur := p.current.duration
			p.mu.Unlock()
			p.emitLatest(Event{Kind: EventTimeUpdate, Location: loc, Position: p.Position(), Duration: dur})
		case <-stop:
			return
		case <-p.closed:
			return
		}
	}
}

// emit delivers ev unless the player is closed.
func (p *Player) emit(ev Event) {
	select {
	case p.events <- ev:
	case <-p.closed:
	}
}

// emitLatest delivers ev without blocking; time updates are dropped when
// the receiver lags.
func (p *Player) emitLatest(ev Event) {
	select {
	case p.events <- ev:
	default:
	}
}

// Events returns the media notification channel.
func (p *Player) Events() <-chan Event {
	return p.events
}

// State returns the current state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Duration returns the duration of the active source.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return 0
	}
	return p.current.duration
}

// Close stops playback. The player cannot be used afterwards.
func (p *Player) Close() error {
	p.once.Do(func() {
		p.Stop()
		close(p.closed)
	})
	return nil
}

func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	speakerSampleRate = rate
	speakerInitialized = true
	return nil
}
