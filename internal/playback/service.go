package playback

import (
	"context"
	"time"

	"github.com/llehouerou/tunedeck/internal/player"
	"github.com/llehouerou/tunedeck/internal/playlist"
)

// Service coordinates the single playback session: the current track, the
// queue, history and premium gating. Operations that may start playback
// take the caller's Entitlement explicitly.
type Service interface {
	// Playback control
	PlayTrack(ctx context.Context, t playlist.Track, ent Entitlement) error
	TogglePlayPause(ctx context.Context, ent Entitlement) error
	PlayNext(ctx context.Context, ent Entitlement) error
	PlayPrevious(ctx context.Context, ent Entitlement) error
	PlayFirstEligible(ctx context.Context, tracks []playlist.Track, ent Entitlement) error
	Seek(pos time.Duration) error

	// Queue
	SetQueue(tracks []playlist.Track)

	// State queries (snapshots)
	State() State
	IsPlaying() bool
	Position() time.Duration
	Duration() time.Duration
	CurrentTrack() *playlist.Track
	Queue() []playlist.Track
	QueueIndex() int
	History() []playlist.HistoryEntry

	// Mode control
	RepeatMode() RepeatMode
	SetRepeatMode(mode RepeatMode)
	CycleRepeatMode() RepeatMode
	Shuffle() bool
	SetShuffle(enabled bool)
	ToggleShuffle() bool
	Volume() float64
	SetVolume(level float64)

	// Sleep timer
	StartSleepTimer(d time.Duration) error
	CancelSleepTimer() bool
	SleepTimerRemaining() (time.Duration, bool)

	// Media events
	Run(ctx context.Context) error
	HandleMediaEvent(ctx context.Context, ev player.Event) error

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
