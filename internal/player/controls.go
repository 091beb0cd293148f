package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Pause pauses playback.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Resume resumes paused playback. Returns ErrNoSource when nothing is loaded.
func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return ErrNoSource
	}
	if p.state != Paused {
		return nil
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
	return nil
}

// Position returns the playback position of the active source.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	s := p.current
	p.mu.Unlock()
	if s == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return s.format.SampleRate.D(s.streamer.Position())
}

// SetPosition moves playback to pos, clamped to the source bounds.
func (p *Player) SetPosition(pos time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return ErrNoSource
	}
	s := p.current
	sample := s.format.SampleRate.N(pos)
	sample = max(0, min(sample, s.streamer.Len()))

	speaker.Lock()
	defer speaker.Unlock()
	return s.streamer.Seek(sample)
}
