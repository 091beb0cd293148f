package playback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/playlist"
)

// loadRequest is a pending media load. Only the request holding the latest
// token may complete.
type loadRequest struct {
	token uint64
	track playlist.Track
}

// PlayTrack plays t, or toggles play/pause if t is already current.
// The entitlement check comes first, so a premium track that is current
// cannot be paused through PlayTrack under a free entitlement either; use
// TogglePlayPause, which only checks when resuming.
func (s *serviceImpl) PlayTrack(ctx context.Context, t playlist.Track, ent Entitlement) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if !ent.Allows(t) {
		s.mu.Unlock()
		return s.reject("play", t)
	}
	s.ent = ent

	var (
		req *loadRequest
		err error
	)
	if s.current != nil && s.current.Same(t) {
		req, err = s.toggleLocked(ent)
	} else {
		req = s.beginLoadLocked(t)
	}
	s.mu.Unlock()

	if req == nil {
		return err
	}
	return s.completeLoad(ctx, req)
}

// TogglePlayPause pauses if playing, resumes if paused. Without a current
// track it does nothing.
func (s *serviceImpl) TogglePlayPause(ctx context.Context, ent Entitlement) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.ent = ent
	if s.current == nil {
		s.mu.Unlock()
		return nil
	}
	req, err := s.toggleLocked(ent)
	s.mu.Unlock()

	if req == nil {
		return err
	}
	return s.completeLoad(ctx, req)
}

// toggleLocked flips Playing and Paused for the current track. A paused
// track without started media (after a failure or once it ended) is
// reloaded; the returned request must then be completed outside the lock.
func (s *serviceImpl) toggleLocked(ent Entitlement) (*loadRequest, error) {
	switch s.state {
	case StatePlaying:
		s.player.Pause()
		s.position = min(s.player.Position(), s.durationOrMax())
		s.setStateLocked(StatePaused)
		return nil, nil
	case StatePaused:
		t := *s.current
		if !ent.Allows(t) {
			return nil, s.reject("resume", t)
		}
		if s.mediaReady {
			if err := s.player.Resume(); err == nil {
				s.setStateLocked(StatePlaying)
				return nil, nil
			}
			s.mediaReady = false
		}
		return s.beginLoadLocked(t), nil
	default:
		// Loading: the pending load decides the outcome.
		return nil, nil
	}
}

// PlayNext plays the next track after the current one that ent allows,
// wrapping around the queue.
func (s *serviceImpl) PlayNext(ctx context.Context, ent Entitlement) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.ent = ent
	req, err := s.nextLocked(ent)
	s.mu.Unlock()

	if req == nil {
		return err
	}
	return s.completeLoad(ctx, req)
}

func (s *serviceImpl) nextLocked(ent Entitlement) (*loadRequest, error) {
	if s.queue.IsEmpty() {
		return nil, nil
	}
	i := s.queue.NextEligible(s.currentIndexLocked(), ent.Premium)
	if i < 0 {
		s.emitError("next", s.currentCopyLocked(), ErrNoEligibleTrack)
		return nil, ErrNoEligibleTrack
	}
	return s.beginLoadLocked(*s.queue.At(i)), nil
}

// PlayPrevious steps back exactly one position, wrapping, and plays that
// track. Premium tracks are not skipped: a track ent does not allow is
// rejected with an *EntitlementError.
func (s *serviceImpl) PlayPrevious(ctx context.Context, ent Entitlement) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.queue.IsEmpty() {
		s.mu.Unlock()
		return nil
	}
	t := *s.queue.At(s.queue.PreviousIndex(s.currentIndexLocked()))
	if !ent.Allows(t) {
		s.mu.Unlock()
		return s.reject("previous", t)
	}
	s.ent = ent
	req := s.beginLoadLocked(t)
	s.mu.Unlock()

	return s.completeLoad(ctx, req)
}

// PlayFirstEligible replaces the queue with tracks and plays the first one
// ent allows.
func (s *serviceImpl) PlayFirstEligible(ctx context.Context, tracks []playlist.Track, ent Entitlement) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.ent = ent
	s.queue.Set(tracks)
	s.emitQueueLocked()
	i := s.queue.FirstEligible(ent.Premium)
	if i < 0 {
		s.mu.Unlock()
		if len(tracks) > 0 {
			s.emitError("play", nil, ErrNoEligibleTrack)
		}
		return ErrNoEligibleTrack
	}
	req := s.beginLoadLocked(*s.queue.At(i))
	s.mu.Unlock()

	return s.completeLoad(ctx, req)
}

// beginLoadLocked makes t current and returns the request that will bring
// its media up. Any earlier pending request becomes stale.
func (s *serviceImpl) beginLoadLocked(t playlist.Track) *loadRequest {
	s.token++
	prev := s.currentCopyLocked()

	s.player.Stop()
	s.mediaReady = false
	s.current = &t
	s.history.Push(t, s.now())
	s.position = 0
	s.duration = 0
	s.setStateLocked(StateLoading)

	e := TrackChange{Previous: prev, Current: s.currentCopyLocked(), Index: s.currentIndexLocked()}
	s.broadcast(func(sub *Subscription) { sub.sendTrack(e) })

	s.logger.Info("loading track",
		zap.Int64("id", t.ID),
		zap.String("name", t.Name),
		zap.Uint64("token", s.token))
	return &loadRequest{token: s.token, track: t}
}

// completeLoad opens the media outside the lock, then starts it unless a
// newer request has taken over in the meantime.
func (s *serviceImpl) completeLoad(ctx context.Context, req *loadRequest) error {
	src, openErr := s.player.Open(ctx, req.track.Location)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || req.token != s.token {
		if src != nil {
			_ = src.Close()
		}
		s.logger.Debug("discarding stale load", zap.Int64("id", req.track.ID), zap.Uint64("token", req.token))
		if s.closed {
			return ErrClosed
		}
		return ErrSuperseded
	}

	if openErr != nil {
		return s.failLocked("open", req.track, openErr)
	}
	if err := s.player.Start(src); err != nil {
		_ = src.Close()
		return s.failLocked("start", req.track, err)
	}

	s.mediaReady = true
	s.duration = src.Duration()
	s.position = 0
	s.setStateLocked(StatePlaying)
	return nil
}

// failLocked pauses the session after a media failure. The current track
// stays selected.
func (s *serviceImpl) failLocked(op string, t playlist.Track, cause error) error {
	s.mediaReady = false
	s.setStateLocked(StatePaused)
	err := &PlaybackError{Track: t, Op: op, Err: cause}
	if !errors.Is(cause, context.Canceled) {
		s.logger.Warn("playback failed", zap.String("op", op), zap.Int64("id", t.ID), zap.Error(cause))
	}
	s.emitError("play", &t, err)
	return err
}

// reject reports a premium track refused under the caller's entitlement.
// It touches no session state.
func (s *serviceImpl) reject(op string, t playlist.Track) error {
	err := &EntitlementError{Track: t}
	s.logger.Info("premium track rejected", zap.String("op", op), zap.Int64("id", t.ID))
	s.emitError(op, &t, err)
	return err
}

// Seek moves playback to pos clamped to [0, duration]. Without a current
// track or a known duration it does nothing.
func (s *serviceImpl) Seek(pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.duration <= 0 {
		return nil
	}
	pos = max(0, min(pos, s.duration))
	if s.mediaReady {
		if err := s.player.SetPosition(pos); err != nil {
			t := *s.current
			s.emitError("seek", &t, err)
			return fmt.Errorf("seek: %w", err)
		}
	}
	s.position = pos
	s.emitPositionLocked()
	return nil
}

func (s *serviceImpl) durationOrMax() time.Duration {
	if s.duration <= 0 {
		return time.Duration(math.MaxInt64)
	}
	return s.duration
}
