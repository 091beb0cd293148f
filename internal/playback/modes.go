package playback

import "github.com/llehouerou/tunedeck/internal/player"

// RepeatMode returns the current repeat mode.
func (s *serviceImpl) RepeatMode() RepeatMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repeat
}

// SetRepeatMode sets the repeat mode.
func (s *serviceImpl) SetRepeatMode(mode RepeatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repeat == mode {
		return
	}
	s.repeat = mode
	s.emitModeLocked()
}

// CycleRepeatMode advances Off → All → One → Off and returns the new mode.
func (s *serviceImpl) CycleRepeatMode() RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repeat = s.repeat.Next()
	s.emitModeLocked()
	return s.repeat
}

// Shuffle returns whether the queue is shuffled.
func (s *serviceImpl) Shuffle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.IsShuffled()
}

// SetShuffle shuffles the queue, or restores its original order.
func (s *serviceImpl) SetShuffle(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setShuffleLocked(enabled)
}

// ToggleShuffle flips shuffle and returns the new setting.
func (s *serviceImpl) ToggleShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	enabled := !s.queue.IsShuffled()
	s.setShuffleLocked(enabled)
	return enabled
}

func (s *serviceImpl) setShuffleLocked(enabled bool) {
	if s.queue.IsShuffled() == enabled {
		return
	}
	if enabled {
		s.queue.Shuffle()
	} else {
		s.queue.Unshuffle()
	}
	s.emitModeLocked()
	s.emitQueueLocked()
}

// Volume returns the output level (0.0 to 1.0).
func (s *serviceImpl) Volume() float64 {
	return s.player.Volume()
}

// SetVolume sets the output level, clamped to 0.0-1.0.
func (s *serviceImpl) SetVolume(level float64) {
	s.player.SetVolume(player.ClampVolume(level))
}
