package player

import (
	"math"

	"github.com/gopxl/beep/v2/speaker"
)

// SetVolume sets the volume level, clamped to 0.0-1.0. The level survives
// source changes. If muted, only stores the level.
func (p *Player) SetVolume(level float64) {
	level = ClampVolume(level)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.volumeLevel = level
	if !p.muted && p.volume != nil {
		speaker.Lock()
		p.volume.Volume = levelToVolume(level)
		speaker.Unlock()
	}
}

// Volume returns the current volume level (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volumeLevel
}

// SetMuted silences output without forgetting the level.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	if p.volume != nil {
		speaker.Lock()
		p.volume.Silent = muted
		speaker.Unlock()
	}
}

// Muted returns true if audio is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// ClampVolume limits level to 0.0-1.0.
func ClampVolume(level float64) float64 {
	if math.IsNaN(level) || level < 0 {
		return 0
	}
	return min(level, 1)
}

// levelToVolume converts a 0.0-1.0 level to beep's base-2 Volume.
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (essentially silent)
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
