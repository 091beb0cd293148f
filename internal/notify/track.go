package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/playlist"
)

const coverTimeout = 3 * time.Second

// CoverSource resolves a cover image URL to a local file path.
type CoverSource interface {
	Path(ctx context.Context, imageURL string) (string, error)
}

// TrackNotifier turns playback events into desktop notifications: one
// "now playing" bubble that is replaced on each track change, and a
// bubble for rejected premium songs.
type TrackNotifier struct {
	notifier Notifier
	covers   CoverSource
	logger   *zap.Logger
	lastID   uint32
}

// NewTrackNotifier creates a TrackNotifier. covers and logger may be nil.
func NewTrackNotifier(n Notifier, covers CoverSource, logger *zap.Logger) *TrackNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrackNotifier{notifier: n, covers: covers, logger: logger}
}

// Watch consumes sub until ctx is done or the subscription closes.
func (t *TrackNotifier) Watch(ctx context.Context, sub *playback.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case ev := <-sub.TrackChanged:
			t.TrackChanged(ctx, ev)
		case ev := <-sub.Error:
			t.Failed(ev)
		}
	}
}

// TrackChanged shows the new current track.
func (t *TrackNotifier) TrackChanged(ctx context.Context, ev playback.TrackChange) {
	if ev.Current == nil {
		return
	}
	n := NowPlaying(*ev.Current)
	n.ReplacesID = t.lastID
	n.Icon = t.coverPath(ctx, ev.Current.Image)

	id, err := t.notifier.Notify(n)
	if err != nil {
		t.logger.Debug("notify track change", zap.Error(err))
		return
	}
	t.lastID = id
}

// Failed shows a notice for premium rejections and for a queue with
// nothing playable. Other failures are left to the status line.
func (t *TrackNotifier) Failed(ev playback.ErrorEvent) {
	title := failureTitle(ev.Err)
	if title == "" {
		return
	}
	_, err := t.notifier.Notify(Notification{
		Title:   title,
		Body:    errmsg.Notice(ev.Err),
		Urgency: UrgencyNormal,
	})
	if err != nil {
		t.logger.Debug("notify failure", zap.String("op", ev.Operation), zap.Error(err))
	}
}

func failureTitle(err error) string {
	switch {
	case playback.IsEntitlement(err):
		return "Premium required"
	case errors.Is(err, playback.ErrNoEligibleTrack):
		return "Nothing playable"
	default:
		return ""
	}
}

func (t *TrackNotifier) coverPath(ctx context.Context, imageURL string) string {
	if t.covers == nil || imageURL == "" {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, coverTimeout)
	defer cancel()

	p, err := t.covers.Path(ctx, imageURL)
	if err != nil {
		t.logger.Debug("fetch cover", zap.String("url", imageURL), zap.Error(err))
		return ""
	}
	return p
}

// NowPlaying builds the notification for a track.
func NowPlaying(tr playlist.Track) Notification {
	var parts []string
	if tr.Artist != "" {
		parts = append(parts, tr.Artist)
	}
	if tr.Album != "" {
		parts = append(parts, tr.Album)
	}
	body := strings.Join(parts, " - ")
	if tr.Premium {
		body = strings.TrimSpace(fmt.Sprintf("%s ★", body))
	}
	return Notification{
		Title:   tr.Name,
		Body:    body,
		Urgency: UrgencyLow,
	}
}
