package playlist

import "time"

// Track is a playable media item as delivered by the catalog API.
// Tracks are values: the queue and the playback service copy them,
// never mutate them.
type Track struct {
	ID       int64  // catalog song ID
	Name     string // display name
	Artist   string
	Album    string // empty when the song has no album
	Duration time.Duration
	Location string // media stream URL
	Image    string // cover image URL
	Premium  bool   // playback requires a premium account
}

// PlayableBy reports whether an account with the given premium status may
// play the track.
func (t Track) PlayableBy(premium bool) bool {
	return !t.Premium || premium
}

// Same reports whether t and other refer to the same catalog song.
func (t Track) Same(other Track) bool {
	return t.ID == other.ID && t.Location == other.Location
}
