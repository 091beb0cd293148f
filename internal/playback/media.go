package playback

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/player"
)

// Run consumes media events until ctx is done or the service is closed.
// It is the only goroutine that applies media notifications to the
// session.
func (s *serviceImpl) Run(ctx context.Context) error {
	events := s.player.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case ev := <-events:
			err := s.HandleMediaEvent(ctx, ev)
			if err != nil && !errors.Is(err, ErrSuperseded) && !errors.Is(err, ErrClosed) {
				s.logger.Debug("media event handling failed",
					zap.Stringer("kind", ev.Kind),
					zap.Error(err))
			}
		}
	}
}

// HandleMediaEvent applies one media notification. Events for anything but
// the current track are ignored. When a track ends the repeat mode decides
// what plays next, using the entitlement of the most recent command.
func (s *serviceImpl) HandleMediaEvent(ctx context.Context, ev player.Event) error {
	s.mu.Lock()
	if s.closed || s.current == nil || ev.Location != s.current.Location {
		s.mu.Unlock()
		return nil
	}

	var (
		req *loadRequest
		err error
	)
	switch ev.Kind {
	case player.EventTimeUpdate:
		if s.state == StatePlaying && s.mediaReady {
			if s.duration == 0 && ev.Duration > 0 {
				s.duration = ev.Duration
			}
			s.position = max(0, min(ev.Position, s.durationOrMax()))
			s.emitPositionLocked()
		}
	case player.EventMetadataLoaded:
		if ev.Duration > 0 {
			s.duration = ev.Duration
			s.position = min(s.position, s.duration)
			s.emitPositionLocked()
		}
	case player.EventEnded:
		if s.mediaReady {
			req, err = s.endedLocked()
		}
	case player.EventError:
		if s.mediaReady {
			err = s.failLocked("play", *s.current, ev.Err)
		}
	}
	s.mu.Unlock()

	if req == nil {
		return err
	}
	return s.completeLoad(ctx, req)
}

func (s *serviceImpl) endedLocked() (*loadRequest, error) {
	s.mediaReady = false
	s.position = s.duration

	switch s.repeat {
	case RepeatOne:
		t := *s.current
		if !s.ent.Allows(t) {
			s.setStateLocked(StatePaused)
			return nil, s.reject("repeat", t)
		}
		return s.beginLoadLocked(t), nil
	case RepeatAll:
		// next handles the empty queue
	default:
		i := s.currentIndexLocked()
		if i < 0 || s.queue.IsLast(i) {
			s.setStateLocked(StatePaused)
			return nil, nil
		}
	}

	req, err := s.nextLocked(s.ent)
	if req == nil {
		s.setStateLocked(StatePaused)
	}
	return req, err
}
