//go:build linux

package mpris

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/tunedeck/internal/playback"
)

// commandTimeout bounds a play request issued from a media key.
const commandTimeout = 30 * time.Second

// Adapter connects the playback Service to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter. ent is called on every
// command that may start playback and returns the signed-in account's
// entitlement.
func New(service playback.Service, ent func() playback.Entitlement) (*Adapter, error) {
	if service == nil || ent == nil {
		return nil, errors.New("mpris: service and entitlement are required")
	}

	rootAdapter := &rootAdapter{}
	playerAdapter := &playerAdapter{service: service, ent: ent}

	a := &Adapter{
		server: server.NewServer("tunedeck", rootAdapter, playerAdapter),
	}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Tunedeck", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and optional interfaces.
type playerAdapter struct {
	service playback.Service
	ent     func() playback.Entitlement
}

// run issues a playback command and hides outcomes that are not failures
// from the media key's point of view.
func (p *playerAdapter) run(cmd func(ctx context.Context, ent playback.Entitlement) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	err := cmd(ctx, p.ent())
	if errors.Is(err, playback.ErrSuperseded) {
		return nil
	}
	return err
}

func (p *playerAdapter) Next() error {
	return p.run(p.service.PlayNext)
}

func (p *playerAdapter) Previous() error {
	return p.run(p.service.PlayPrevious)
}

func (p *playerAdapter) Pause() error {
	if !p.service.IsPlaying() {
		return nil
	}
	return p.run(p.service.TogglePlayPause)
}

func (p *playerAdapter) PlayPause() error {
	return p.play(true)
}

// Stop pauses; a session never returns to idle once a track is chosen.
func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Play() error {
	return p.play(false)
}

// play starts or resumes playback. With toggle set, a playing session is
// paused instead.
func (p *playerAdapter) play(toggle bool) error {
	switch p.service.State() {
	case playback.StateIdle:
		queue := p.service.Queue()
		if len(queue) == 0 {
			return nil
		}
		return p.run(func(ctx context.Context, ent playback.Entitlement) error {
			return p.service.PlayFirstEligible(ctx, queue, ent)
		})
	case playback.StatePlaying:
		if !toggle {
			return nil
		}
	case playback.StateLoading:
		return nil
	case playback.StatePaused:
	}
	return p.run(p.service.TogglePlayPause)
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.service.Seek(p.service.Position() + time.Duration(offset)*time.Microsecond)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.service.Seek(time.Duration(position) * time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.service.State() {
	case playback.StatePlaying, playback.StateLoading:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateIdle:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track := p.service.CurrentTrack()
	if track == nil {
		return types.Metadata{}, nil
	}

	length := track.Duration
	if d := p.service.Duration(); d > 0 {
		length = d
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.ID)),
		Length:  types.Microseconds(length.Microseconds()),
		Title:   track.Name,
		Artist:  []string{track.Artist},
		Album:   track.Album,
		ArtUrl:  track.Image,
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.service.Volume(), nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	p.service.SetVolume(level)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.service.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return len(p.service.Queue()) > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return len(p.service.Queue()) > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.service.CurrentTrack() != nil || len(p.service.Queue()) > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.service.CurrentTrack() != nil, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.service.RepeatMode() {
	case playback.RepeatOne:
		return types.LoopStatusTrack, nil
	case playback.RepeatAll:
		return types.LoopStatusPlaylist, nil
	case playback.RepeatOff:
		return types.LoopStatusNone, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		p.service.SetRepeatMode(playback.RepeatOff)
	case types.LoopStatusTrack:
		p.service.SetRepeatMode(playback.RepeatOne)
	case types.LoopStatusPlaylist:
		p.service.SetRepeatMode(playback.RepeatAll)
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.service.Shuffle(), nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	p.service.SetShuffle(shuffle)
	return nil
}

func formatTrackID(songID int64) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "song:%d", songID)
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
