package playback

import (
	"time"

	"github.com/llehouerou/tunedeck/internal/playlist"
)

// StateChange is emitted when the session state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when a track becomes current.
//
// Emitted by every load: PlayTrack on a new track, PlayNext, PlayPrevious,
// PlayFirstEligible, a repeat of the same track and auto-advance when a
// track ends. Toggling the current track does not emit it.
//
// The app should handle track-related side effects (notifications, MPRIS
// metadata, history panel) in response to this event.
type TrackChange struct {
	Previous *playlist.Track
	Current  *playlist.Track
	Index    int // position of Current in the queue, -1 if not queued
}

// QueueChange is emitted when the queue contents or order change.
type QueueChange struct {
	Tracks []playlist.Track
	Index  int
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	RepeatMode RepeatMode
	Shuffle    bool
}

// PositionChange is emitted on seeks and media time updates.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// SleepTimerChange is emitted when the sleep timer is set, cancelled or
// fires.
type SleepTimerChange struct {
	Active  bool
	Expired bool
	Ends    time.Time
}

// ErrorEvent is emitted when an operation is rejected or fails. It carries
// the same error returned to the caller, so the UI can show a notice even
// for failures triggered by media events.
type ErrorEvent struct {
	Operation string // e.g. "play", "next", "seek"
	Track     *playlist.Track
	Err       error
}
