package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/api"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/playlist"
	"github.com/llehouerou/tunedeck/internal/state"
)

func (m *Model) restoreQueue(ctx context.Context) error {
	qs, err := m.StateMgr.GetQueue(ctx)
	if err != nil {
		return fmt.Errorf("load queue: %w", err)
	}
	if qs == nil || len(qs.Tracks) == 0 {
		return nil
	}
	m.Playback.SetRepeatMode(playback.RepeatMode(qs.RepeatMode))
	m.Playback.SetQueue(qs.Tracks)
	m.Playback.SetShuffle(qs.Shuffle)
	if qs.CurrentIndex >= 0 && qs.CurrentIndex < len(qs.Tracks) {
		m.restoreQueueID = qs.Tracks[qs.CurrentIndex].ID
	}
	return nil
}

func (m *Model) restoreNavigation(ctx context.Context) error {
	nav, err := m.StateMgr.GetNavigation(ctx)
	if err != nil {
		return fmt.Errorf("load navigation: %w", err)
	}
	if nav == nil {
		return nil
	}
	m.ViewMode = parseViewMode(nav.View)
	m.SearchQuery = nav.Search
	m.restoreSongID = nav.SelectedSongID
	m.restoreListID = nav.PlaylistID
	return nil
}

// SaveNavigationState persists the current view. Writes are debounced by
// the state manager.
func (m *Model) SaveNavigationState() {
	nav := state.NavigationState{
		View:   string(m.ViewMode),
		Search: m.SearchQuery,
	}
	if t, ok := m.Songs.Selected(); ok {
		nav.SelectedSongID = t.ID
	}
	if p, ok := m.Playlists.Selected(); ok {
		nav.PlaylistID = p.ID
	}
	m.StateMgr.SaveNavigation(nav)
}

// SaveQueueState persists the queue, its modes and the current position.
func (m *Model) SaveQueueState(ctx context.Context) {
	err := m.StateMgr.SaveQueue(ctx, state.QueueState{
		CurrentIndex: m.Playback.QueueIndex(),
		RepeatMode:   int(m.Playback.RepeatMode()),
		Shuffle:      m.Playback.Shuffle(),
		Tracks:       m.Playback.Queue(),
	})
	if err != nil {
		m.Logger.Warn("save queue", zap.Error(err))
	}
}

// applyRestoredSelection moves list cursors to what was selected when the
// app last quit. Each restore applies once.
func (m *Model) applyRestoredSongSelection() {
	if m.restoreSongID == 0 {
		return
	}
	id := m.restoreSongID
	m.restoreSongID = 0
	m.Songs.SelectFunc(func(t playlist.Track) bool { return t.ID == id })
}

func (m *Model) applyRestoredPlaylistSelection() {
	if m.restoreListID == 0 {
		return
	}
	id := m.restoreListID
	m.restoreListID = 0
	m.Playlists.SelectFunc(func(p api.Playlist) bool { return p.ID == id })
}
