package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunedeck/internal/app/handler"
	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/keymap"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/playlist"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Search.Active() {
		var cmd tea.Cmd
		m.Search, cmd = m.Search.Update(msg)
		return m, cmd
	}

	a := m.Keys.Resolve(msg.String())
	if a == "" {
		return m, nil
	}
	m.StatusMsg = ""
	m.StatusErr = false

	if m.HelpVisible {
		switch a { //nolint:exhaustive // help only closes or scrolls
		case keymap.ActionHelp, keymap.ActionBack:
			m.HelpVisible = false
			m.updateFocus()
			return m, nil
		case keymap.ActionQuit:
			return m.quit()
		}
		m.Help.HandleAction(a)
		return m, nil
	}

	if m.LyricsVisible {
		switch a { //nolint:exhaustive // lyrics close, scroll or control playback
		case keymap.ActionLyrics, keymap.ActionBack:
			m.LyricsVisible = false
			m.updateFocus()
			return m, nil
		case keymap.ActionQuit:
			return m.quit()
		}
		if m.Lyrics.HandleAction(a) {
			return m, nil
		}
		_, cmd := handler.Chain(a, m.handlePlaybackAction)
		return m, cmd
	}

	if a == keymap.ActionQuit {
		return m.quit()
	}

	_, cmd := handler.Chain(a,
		m.handleGlobalAction,
		m.handlePlaybackAction,
		m.handleListAction,
	)
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.SaveNavigationState()
	m.SaveQueueState(context.Background())
	return m, tea.Quit
}

func (m *Model) handleGlobalAction(a keymap.Action) handler.Result {
	switch a { //nolint:exhaustive // global actions only
	case keymap.ActionHelp:
		m.HelpVisible = true
		m.updateFocus()
		return handler.HandledNoCmd
	case keymap.ActionLyrics:
		return handler.Handled(m.showLyrics())
	case keymap.ActionSearch:
		return handler.Handled(m.Search.Start(m.SearchQuery))
	case keymap.ActionRefresh:
		return handler.Handled(m.refresh())
	case keymap.ActionBack:
		return handler.Handled(m.back())
	case keymap.ActionViewSongs:
		return handler.Handled(m.switchView(ViewSongs))
	case keymap.ActionViewAlbums:
		return handler.Handled(m.switchView(ViewAlbums))
	case keymap.ActionViewPlaylists:
		return handler.Handled(m.switchView(ViewPlaylists))
	case keymap.ActionViewQueue:
		return handler.Handled(m.switchView(ViewQueue))
	case keymap.ActionViewHistory:
		return handler.Handled(m.switchView(ViewHistory))
	}
	return handler.NotHandled
}

// switchView shows v, loading albums and playlists the first time.
func (m *Model) switchView(v ViewMode) tea.Cmd {
	m.setView(v)
	m.SaveNavigationState()
	switch v {
	case ViewAlbums:
		if !m.albumsLoaded {
			return m.loadAlbums()
		}
	case ViewPlaylists:
		if !m.playlistsLoaded {
			return m.loadPlaylists()
		}
	case ViewSongs, ViewQueue, ViewHistory:
	}
	return nil
}

func (m *Model) refresh() tea.Cmd {
	switch m.ViewMode {
	case ViewAlbums:
		return m.loadAlbums()
	case ViewPlaylists:
		return m.loadPlaylists()
	case ViewSongs:
		return m.loadSongs(m.SearchQuery)
	case ViewQueue, ViewHistory:
	}
	return nil
}

// back closes an open album or playlist, or clears the search.
func (m *Model) back() tea.Cmd {
	if m.DetailOpen {
		m.DetailOpen = false
		m.updateFocus()
		return nil
	}
	if m.ViewMode == ViewSongs && m.SearchQuery != "" {
		m.SearchQuery = ""
		m.Songs.SetTitle(songsTitle(""))
		m.SaveNavigationState()
		return m.loadSongs("")
	}
	return nil
}

func (m *Model) handleListAction(a keymap.Action) handler.Result {
	switch a { //nolint:exhaustive // list actions only
	case keymap.ActionSelect:
		return handler.Handled(m.selectCurrent())
	case keymap.ActionAdd:
		m.addSelected()
		return handler.HandledNoCmd
	case keymap.ActionPlayAll:
		return handler.Handled(m.playAll(m.activeTracks()))
	case keymap.ActionAddToPlaylist:
		return handler.Handled(m.addSelectedToPlaylist())
	case keymap.ActionRemoveFromPlaylist:
		return handler.Handled(m.removeSelectedFromPlaylist())
	}
	if m.moveCursor(a) {
		if m.ViewMode == ViewSongs || m.ViewMode == ViewPlaylists {
			m.SaveNavigationState()
		}
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

func (m *Model) moveCursor(a keymap.Action) bool {
	if m.DetailOpen {
		return m.Detail.HandleAction(a)
	}
	switch m.ViewMode {
	case ViewAlbums:
		return m.Albums.HandleAction(a)
	case ViewPlaylists:
		return m.Playlists.HandleAction(a)
	case ViewQueue:
		return m.Queue.HandleAction(a)
	case ViewHistory:
		return m.History.HandleAction(a)
	case ViewSongs:
		return m.Songs.HandleAction(a)
	}
	return false
}

// activeTracks returns the tracks of the visible track list, if any.
func (m Model) activeTracks() []playlist.Track {
	if m.DetailOpen {
		return m.Detail.Items()
	}
	switch m.ViewMode {
	case ViewSongs:
		return m.Songs.Items()
	case ViewQueue:
		return m.Queue.Items()
	case ViewAlbums, ViewPlaylists, ViewHistory:
	}
	return nil
}

func (m *Model) selectCurrent() tea.Cmd {
	if m.DetailOpen {
		return m.playTrack(m.Detail.Items(), m.Detail.SelectedIndex())
	}
	switch m.ViewMode {
	case ViewSongs:
		return m.playTrack(m.Songs.Items(), m.Songs.SelectedIndex())
	case ViewAlbums:
		if a, ok := m.Albums.Selected(); ok {
			return m.loadAlbumSongs(a)
		}
	case ViewPlaylists:
		if p, ok := m.Playlists.Selected(); ok {
			return m.loadPlaylistSongs(p)
		}
	case ViewQueue:
		if t, ok := m.Queue.Selected(); ok {
			return m.playQueued(t)
		}
	case ViewHistory:
		if e, ok := m.History.Selected(); ok {
			return m.playQueued(e.Track)
		}
	}
	return nil
}

// playQueued plays t without replacing the queue.
func (m Model) playQueued(t playlist.Track) tea.Cmd {
	svc := m.Playback
	return m.playCmd(errmsg.OpPlaybackStart, func(ctx context.Context, ent playback.Entitlement) error {
		return svc.PlayTrack(ctx, t, ent)
	})
}

// selectedTrack is the highlighted track of the visible list, if any.
func (m Model) selectedTrack() (playlist.Track, bool) {
	switch {
	case m.DetailOpen:
		return m.Detail.Selected()
	case m.ViewMode == ViewSongs:
		return m.Songs.Selected()
	case m.ViewMode == ViewQueue:
		return m.Queue.Selected()
	case m.ViewMode == ViewHistory:
		e, ok := m.History.Selected()
		return e.Track, ok
	}
	return playlist.Track{}, false
}

// addSelected appends the selected track to the end of the queue.
func (m *Model) addSelected() {
	if m.ViewMode == ViewQueue && !m.DetailOpen {
		return
	}
	t, ok := m.selectedTrack()
	if !ok {
		return
	}
	m.Playback.SetQueue(append(m.Playback.Queue(), t))
	m.setStatus("Added " + t.Name + " to queue")
}

// showLyrics opens the lyrics panel for the current track.
func (m *Model) showLyrics() tea.Cmd {
	cur := m.Playback.CurrentTrack()
	if cur == nil {
		m.setStatus("Nothing is playing")
		return nil
	}
	m.Lyrics.SetTrack(*cur)
	m.LyricsVisible = true
	m.updateFocus()
	return m.loadLyrics(*cur)
}

// addSelectedToPlaylist adds the selected track to the playlist
// highlighted in the playlists view.
func (m *Model) addSelectedToPlaylist() tea.Cmd {
	t, ok := m.selectedTrack()
	if !ok {
		return nil
	}
	if m.Session == nil {
		m.setError("Sign in to edit playlists")
		return nil
	}
	target, ok := m.Playlists.Selected()
	if !ok {
		m.setError("Highlight a playlist in the Playlists view first")
		return nil
	}
	return m.addToPlaylist(target, t)
}

// removeSelectedFromPlaylist removes the selected track from the open
// playlist.
func (m *Model) removeSelectedFromPlaylist() tea.Cmd {
	if !m.DetailOpen || m.DetailPlaylist == nil {
		return nil
	}
	t, ok := m.Detail.Selected()
	if !ok {
		return nil
	}
	return m.removeFromPlaylist(*m.DetailPlaylist, t)
}
