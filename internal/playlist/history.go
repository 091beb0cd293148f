package playlist

import "time"

// DefaultHistorySize is the number of played tracks kept by a session.
const DefaultHistorySize = 10

// HistoryEntry is one played track.
type HistoryEntry struct {
	Track    Track
	PlayedAt time.Time
}

// History keeps the most recently played tracks, oldest first.
// Once full, each Push drops the oldest entry.
type History struct {
	entries []HistoryEntry
	maxSize int
}

// NewHistory creates a new history with the given maximum size.
func NewHistory(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultHistorySize
	}
	return &History{
		entries: make([]HistoryEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Push records a play of t at the given time.
func (h *History) Push(t Track, at time.Time) {
	h.entries = append(h.entries, HistoryEntry{Track: t, PlayedAt: at})

	// Trim if over limit
	if len(h.entries) > h.maxSize {
		excess := len(h.entries) - h.maxSize
		h.entries = append(h.entries[:0], h.entries[excess:]...)
	}
}

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []HistoryEntry {
	snapshot := make([]HistoryEntry, len(h.entries))
	copy(snapshot, h.entries)
	return snapshot
}

// Last returns the most recent entry, or nil if nothing was played.
func (h *History) Last() *HistoryEntry {
	if len(h.entries) == 0 {
		return nil
	}
	e := h.entries[len(h.entries)-1]
	return &e
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// MaxSize returns the capacity of the history.
func (h *History) MaxSize() int {
	return h.maxSize
}

// Clear forgets all entries.
func (h *History) Clear() {
	h.entries = h.entries[:0]
}
