package playlist

import "math/rand/v2"

// Queue is the ordered list of tracks that next/previous navigate.
// Indexing is circular. The queue does not track a "current" position:
// callers locate the current track with IndexOf, since the queue may be
// replaced while a track from an older queue keeps playing.
type Queue struct {
	playlist *Playlist
	original []Track // order before shuffling, nil when not shuffled
	rng      *rand.Rand
}

// NewQueue creates a new empty queue.
func NewQueue() *Queue {
	return &Queue{
		playlist: NewPlaylist(),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // shuffle order
	}
}

// NewQueueWithRand creates an empty queue that shuffles with r.
func NewQueueWithRand(r *rand.Rand) *Queue {
	q := NewQueue()
	q.rng = r
	return q
}

// Set replaces the queue contents. When the queue is shuffled the new
// tracks are shuffled too and their given order becomes the one restored
// by Unshuffle.
func (q *Queue) Set(tracks []Track) {
	q.playlist.Replace(tracks)
	if q.original != nil {
		q.original = q.playlist.Tracks()
		q.playlist.Shuffle(q.rng)
	}
}

// Tracks returns a copy of the queued tracks in play order.
func (q *Queue) Tracks() []Track {
	return q.playlist.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *Queue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.playlist.Len() == 0
}

// At returns a copy of the track at index, or nil if out of bounds.
func (q *Queue) At(index int) *Track {
	t := q.playlist.Track(index)
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

// IndexOf returns the position of the song with the given ID, or -1.
func (q *Queue) IndexOf(id int64) int {
	return q.playlist.IndexOf(id)
}

// IsLast reports whether index is the final position of the queue.
func (q *Queue) IsLast(index int) bool {
	return index >= 0 && index == q.playlist.Len()-1
}

// NextIndex returns the index after from, wrapping at the end.
// A from of -1 (no current track) yields 0. Returns -1 for an empty queue.
func (q *Queue) NextIndex(from int) int {
	n := q.playlist.Len()
	if n == 0 {
		return -1
	}
	return wrap(from+1, n)
}

// PreviousIndex returns the index before from, wrapping at the start.
// A from of -1 (no current track) yields the last index. Returns -1 for an
// empty queue.
func (q *Queue) PreviousIndex(from int) int {
	n := q.playlist.Len()
	if n == 0 {
		return -1
	}
	if from < 0 {
		return n - 1
	}
	return wrap(from-1, n)
}

// NextEligible scans forward from the position after from, wrapping, and
// returns the index of the first track an account with the given premium
// status may play. At most Len() candidates are visited, so from itself is
// the last one considered. Returns -1 if none qualifies.
func (q *Queue) NextEligible(from int, premium bool) int {
	n := q.playlist.Len()
	for step := 1; step <= n; step++ {
		i := wrap(from+step, n)
		if q.playlist.Track(i).PlayableBy(premium) {
			return i
		}
	}
	return -1
}

// FirstEligible returns the index of the first track an account with the
// given premium status may play, or -1.
func (q *Queue) FirstEligible(premium bool) int {
	return q.NextEligible(-1, premium)
}

// Shuffle randomizes the play order, remembering the current order so
// Unshuffle can restore it. Shuffling an already shuffled queue reshuffles
// but keeps the first remembered order.
func (q *Queue) Shuffle() {
	if q.original == nil {
		q.original = q.playlist.Tracks()
	}
	q.playlist.Shuffle(q.rng)
}

// Unshuffle restores the order the queue had before Shuffle.
func (q *Queue) Unshuffle() {
	if q.original == nil {
		return
	}
	q.playlist.Replace(q.original)
	q.original = nil
}

// IsShuffled reports whether the play order is shuffled.
func (q *Queue) IsShuffled() bool {
	return q.original != nil
}

// Clear removes all tracks and forgets any shuffle order.
func (q *Queue) Clear() {
	q.playlist.Clear()
	q.original = nil
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
