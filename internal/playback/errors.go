package playback

import (
	"errors"
	"fmt"

	"github.com/llehouerou/tunedeck/internal/playlist"
)

var (
	// ErrNoEligibleTrack is returned when no queued track may be played
	// under the caller's entitlement.
	ErrNoEligibleTrack = errors.New("no eligible track in queue")
	// ErrSuperseded is returned by a play request overtaken by a newer one.
	ErrSuperseded = errors.New("play request superseded")
	// ErrInvalidSleepDuration is returned for sleep timer durations outside
	// the allowed steps.
	ErrInvalidSleepDuration = errors.New("invalid sleep timer duration")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("playback service closed")
)

// EntitlementError is returned when a premium track is requested without a
// premium entitlement. The session is left untouched.
type EntitlementError struct {
	Track playlist.Track
}

func (e *EntitlementError) Error() string {
	return fmt.Sprintf("%q requires a premium account", e.Track.Name)
}

// PlaybackError is returned when the media element fails to load or play a
// track. The track stays selected and the session is paused.
type PlaybackError struct {
	Track playlist.Track
	Op    string
	Err   error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Track.Name, e.Err)
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}

// IsEntitlement reports whether err is an *EntitlementError.
func IsEntitlement(err error) bool {
	var target *EntitlementError
	return errors.As(err, &target)
}
