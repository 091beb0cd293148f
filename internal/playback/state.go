package playback

// State represents the playback session state.
//
//	Idle ──▶ Loading ──▶ Playing ⇄ Paused
//
// Loading, Playing and Paused only leave for Loading, when a different
// track is loaded. There is no transition back to Idle. A failed load ends
// in Paused with the track still selected.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// HasTrack returns true once a track has been selected.
func (s State) HasTrack() bool {
	return s != StateIdle
}

// RepeatMode defines what happens when a track ends.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatAll:
		return "All"
	case RepeatOne:
		return "One"
	default:
		return "Unknown"
	}
}

// Next returns the mode that follows m in the Off → All → One cycle.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}
