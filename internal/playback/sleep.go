package playback

import (
	"time"

	"go.uber.org/zap"
)

// Sleep timer bounds.
const (
	SleepTimerStep = 5 * time.Minute
	SleepTimerMin  = 5 * time.Minute
	SleepTimerMax  = 120 * time.Minute
)

// SleepTimerOptions returns the selectable durations, shortest first.
func SleepTimerOptions() []time.Duration {
	opts := make([]time.Duration, 0, int(SleepTimerMax/SleepTimerStep))
	for d := SleepTimerMin; d <= SleepTimerMax; d += SleepTimerStep {
		opts = append(opts, d)
	}
	return opts
}

// StartSleepTimer pauses playback once d has elapsed. d must be a multiple
// of SleepTimerStep between SleepTimerMin and SleepTimerMax. Starting a
// timer replaces any running one.
func (s *serviceImpl) StartSleepTimer(d time.Duration) error {
	if d < SleepTimerMin || d > SleepTimerMax || d%SleepTimerStep != 0 {
		return ErrInvalidSleepDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.stopSleepTimerLocked()

	s.sleepID++
	id := s.sleepID
	s.sleepDeadline = s.now().Add(d)
	s.sleepTimer = time.AfterFunc(d, func() { s.sleepExpired(id) })

	s.logger.Info("sleep timer started", zap.Duration("after", d))
	e := SleepTimerChange{Active: true, Ends: s.sleepDeadline}
	s.broadcast(func(sub *Subscription) { sub.sendSleep(e) })
	return nil
}

// CancelSleepTimer stops a running timer. Returns false if none was set.
func (s *serviceImpl) CancelSleepTimer() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sleepTimer == nil {
		return false
	}
	s.stopSleepTimerLocked()
	s.broadcast(func(sub *Subscription) { sub.sendSleep(SleepTimerChange{}) })
	return true
}

// SleepTimerRemaining returns the time left on the timer and whether one is
// running.
func (s *serviceImpl) SleepTimerRemaining() (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sleepTimer == nil {
		return 0, false
	}
	return max(0, s.sleepDeadline.Sub(s.now())), true
}

func (s *serviceImpl) stopSleepTimerLocked() {
	if s.sleepTimer != nil {
		s.sleepTimer.Stop()
		s.sleepTimer = nil
	}
	s.sleepDeadline = time.Time{}
}

func (s *serviceImpl) sleepExpired(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || id != s.sleepID || s.sleepTimer == nil {
		return
	}
	s.sleepTimer = nil
	s.sleepDeadline = time.Time{}

	switch s.state {
	case StatePlaying:
		s.player.Pause()
		s.position = min(s.player.Position(), s.durationOrMax())
		s.setStateLocked(StatePaused)
	case StateLoading:
		// The pending load is dropped; toggling later reloads the track.
		s.token++
		s.setStateLocked(StatePaused)
	}
	s.logger.Info("sleep timer expired")
	s.broadcast(func(sub *Subscription) { sub.sendSleep(SleepTimerChange{Expired: true}) })
}
