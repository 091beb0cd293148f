package player

// State represents the media element state machine.
//
//	┌──────────┐      start      ┌──────────┐
//	│  Stopped │ ───────────────▶│  Playing │
//	└──────────┘                 └──────────┘
//	     ▲                            │ ▲
//	     │ stop / ended         pause │ │ resume
//	     │                            ▼ │
//	     │                       ┌──────────┐
//	     └───────────────────────│  Paused  │
//	                  stop       └──────────┘
//
// Valid transitions:
//   - Stopped → Playing (via Start)
//   - Playing → Paused  (via Pause)
//   - Paused  → Playing (via Resume)
//   - Playing → Stopped (via Stop, or when the stream ends)
//   - Paused  → Stopped (via Stop)
//
// Starting a new source while Playing or Paused stops the old one first.
// Pause when not Playing and Resume when not Paused are ignored.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a source is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}
