package player

import "time"

// EventKind identifies a media notification.
type EventKind int

const (
	// EventTimeUpdate is sent periodically while playing.
	EventTimeUpdate EventKind = iota
	// EventMetadataLoaded is sent once the duration of a started source is known.
	EventMetadataLoaded
	// EventEnded is sent when a source plays to its end.
	EventEnded
	// EventError is sent when playback fails after starting.
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventTimeUpdate:
		return "time-update"
	case EventMetadataLoaded:
		return "metadata-loaded"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a notification from the media element. Location identifies the
// source it concerns, so receivers can drop events for a source they have
// already replaced.
type Event struct {
	Kind     EventKind
	Location string
	Position time.Duration
	Duration time.Duration
	Err      error
}
