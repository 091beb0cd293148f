package app

import (
	"context"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/playlist"
	"github.com/llehouerou/tunedeck/internal/ui"
	"github.com/llehouerou/tunedeck/internal/ui/headerbar"
	"github.com/llehouerou/tunedeck/internal/ui/playerbar"
	"github.com/llehouerou/tunedeck/internal/ui/textinput"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PlaybackMessage:
		return m.handlePlaybackMessage(msg)
	case CatalogMessage:
		return m.handleCatalogMessage(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resizeComponents()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case textinput.SubmitMsg:
		m.SearchQuery = msg.Text
		m.Songs.SetTitle(songsTitle(m.SearchQuery))
		m.setView(ViewSongs)
		m.SaveNavigationState()
		return m, m.loadSongs(m.SearchQuery)

	case textinput.CancelMsg:
		return m, nil
	}

	if m.Search.Active() {
		var cmd tea.Cmd
		m.Search, cmd = m.Search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleCatalogMessage(msg CatalogMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SongsLoadedMsg:
		if msg.Query != m.SearchQuery {
			return m, nil
		}
		if msg.Err != nil {
			m.setError(errmsg.Format(errmsg.OpSongsLoad, msg.Err))
			return m, nil
		}
		m.Songs.SetItems(msg.Tracks)
		m.applyRestoredSongSelection()

	case AlbumsLoadedMsg:
		if msg.Err != nil {
			m.setError(errmsg.Format(errmsg.OpAlbumLoad, msg.Err))
			return m, nil
		}
		m.albumsLoaded = true
		m.Albums.SetItems(msg.Albums)

	case PlaylistsLoadedMsg:
		if msg.Err != nil {
			m.setError(errmsg.Format(errmsg.OpPlaylistLoad, msg.Err))
			return m, nil
		}
		m.playlistsLoaded = true
		m.Playlists.SetItems(msg.Playlists)
		m.applyRestoredPlaylistSelection()

	case DetailLoadedMsg:
		if msg.Err != nil {
			m.setError(errmsg.Format(msg.Op, msg.Err))
			return m, nil
		}
		m.Detail.SetTitle(msg.Title)
		m.Detail.SetItems(msg.Tracks)
		m.DetailPlaylist = msg.Playlist
		m.DetailOpen = true
		m.updateFocus()

	case LyricsLoadedMsg:
		if msg.TrackID != m.Lyrics.TrackID() {
			return m, nil
		}
		if msg.Err != nil {
			m.Lyrics.SetError(errmsg.Format(errmsg.OpLyricsLoad, msg.Err))
			return m, nil
		}
		m.Lyrics.SetLyrics(msg.Lyrics)

	case PlaylistEditedMsg:
		m.handlePlaylistEdited(msg)
	}
	return m, nil
}

func (m *Model) handlePlaylistEdited(msg PlaylistEditedMsg) {
	if msg.Err != nil {
		m.setError(errmsg.FormatWith(msg.Op, msg.Playlist.Name, msg.Err))
		return
	}
	open := m.DetailOpen && m.DetailPlaylist != nil && m.DetailPlaylist.ID == msg.Playlist.ID
	switch msg.Op { //nolint:exhaustive // playlist edits only
	case errmsg.OpPlaylistAddTrack:
		if open {
			m.Detail.SetItems(append(slices.Clone(m.Detail.Items()), msg.Track))
		}
		m.setStatus("Added " + msg.Track.Name + " to " + msg.Playlist.Name)
	case errmsg.OpPlaylistRemove:
		if open {
			m.Detail.SetItems(slices.DeleteFunc(slices.Clone(m.Detail.Items()), func(t playlist.Track) bool {
				return t.ID == msg.Track.ID
			}))
		}
		m.setStatus("Removed " + msg.Track.Name + " from " + msg.Playlist.Name)
	}
}

// resizeComponents lays out every panel for the current window size.
func (m *Model) resizeComponents() {
	height := max(m.Height-headerbar.Height-playerbar.Height-ui.StatusHeight, 0)
	m.Songs.SetSize(m.Width, height)
	m.Albums.SetSize(m.Width, height)
	m.Playlists.SetSize(m.Width, height)
	m.Detail.SetSize(m.Width, height)
	m.Queue.SetSize(m.Width, height)
	m.History.SetSize(m.Width, height)
	m.Help.SetSize(m.Width, height)
	m.Lyrics.SetSize(m.Width, height)
	m.Search.SetSize(m.Width, ui.StatusHeight)
	m.updateFocus()
}

// updateFocus marks the visible panel as focused.
func (m *Model) updateFocus() {
	m.Songs.SetFocused(m.ViewMode == ViewSongs)
	m.Albums.SetFocused(m.ViewMode == ViewAlbums && !m.DetailOpen)
	m.Playlists.SetFocused(m.ViewMode == ViewPlaylists && !m.DetailOpen)
	m.Detail.SetFocused(m.DetailOpen)
	m.Queue.SetFocused(m.ViewMode == ViewQueue)
	m.History.SetFocused(m.ViewMode == ViewHistory)
	m.Help.SetFocused(m.HelpVisible)
	m.Lyrics.SetFocused(m.LyricsVisible)
}

func (m *Model) setView(v ViewMode) {
	m.ViewMode = v
	m.DetailOpen = false
	m.LyricsVisible = false
	m.updateFocus()
}

func (m *Model) setStatus(s string) {
	m.StatusMsg = s
	m.StatusErr = false
}

func (m *Model) setError(s string) {
	m.StatusMsg = s
	m.StatusErr = s != ""
}

// Shutdown flushes the navigation and queue state. Called once the
// program has exited.
func (m Model) Shutdown(ctx context.Context) {
	m.SaveNavigationState()
	m.SaveQueueState(ctx)
}

func songsTitle(query string) string {
	if query == "" {
		return "Songs"
	}
	return "Songs matching \"" + query + "\""
}
