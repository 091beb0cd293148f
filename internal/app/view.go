package app

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tunedeck/internal/playlist"
	"github.com/llehouerou/tunedeck/internal/ui/headerbar"
	"github.com/llehouerou/tunedeck/internal/ui/playerbar"
	"github.com/llehouerou/tunedeck/internal/ui/render"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}
	var account *headerbar.Account
	if m.Session != nil {
		account = &headerbar.Account{Username: m.Session.Username, Premium: m.Session.Premium}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		headerbar.Render(string(m.ViewMode), account, m.Width),
		m.mainView(),
		playerbar.Render(playerbar.NewState(m.Playback), m.Width),
		m.statusLine(),
	)
}

func (m Model) mainView() string {
	if m.HelpVisible {
		return m.Help.View()
	}
	if m.LyricsVisible {
		return m.Lyrics.View()
	}
	if m.DetailOpen {
		return m.Detail.View()
	}
	switch m.ViewMode {
	case ViewAlbums:
		return m.Albums.View()
	case ViewPlaylists:
		return m.Playlists.View()
	case ViewQueue:
		return m.Queue.View()
	case ViewHistory:
		return m.History.View()
	case ViewSongs:
	}
	return m.Songs.View()
}

func (m Model) statusLine() string {
	if m.Search.Active() {
		return m.Search.View()
	}
	s := styles.T().S()
	text := render.Truncate(m.StatusMsg, m.Width)
	if m.StatusErr {
		return s.Error.Render(text)
	}
	return s.Muted.Render(text)
}

// historyLabel renders a history entry as the track and how long ago it
// was played.
func historyLabel(now func() time.Time) func(playlist.HistoryEntry) string {
	return func(e playlist.HistoryEntry) string {
		label := e.Track.Name
		if e.Track.Artist != "" {
			label += " · " + e.Track.Artist
		}
		return label + "  (" + humanize.RelTime(e.PlayedAt, now(), "ago", "from now") + ")"
	}
}
