// Package tracklist renders lists of songs with playing and premium markers.
package tracklist

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunedeck/internal/playlist"
	"github.com/llehouerou/tunedeck/internal/ui/list"
	"github.com/llehouerou/tunedeck/internal/ui/render"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

const (
	playingSymbol = "▶"
	premiumSymbol = "★"
	durationWidth = 7
)

// Model is a song list. It knows which song is playing and whether the
// account may play premium songs, so locked rows can be dimmed.
type Model struct {
	list.Model[playlist.Track]
	currentID int64
	premium   bool
}

// New creates an empty track list.
func New(title string) Model {
	m := Model{Model: list.New(title, func(t playlist.Track) string { return t.Name })}
	m.SetEmptyText("No songs")
	return m
}

// SetCurrent marks the playing song. 0 clears the marker.
func (m *Model) SetCurrent(id int64) {
	m.currentID = id
}

// SetPremium sets whether premium songs are playable.
func (m *Model) SetPremium(premium bool) {
	m.premium = premium
}

// View renders the list.
func (m Model) View() string {
	return m.ViewWith(m.row)
}

func (m Model) row(t playlist.Track, _, width int, selected bool) string {
	prefix := "  "
	if m.currentID != 0 && t.ID == m.currentID {
		prefix = playingSymbol + " "
	}
	marker := "  "
	if t.Premium {
		marker = premiumSymbol + " "
	}

	dur := ""
	if t.Duration > 0 {
		dur = render.Duration(t.Duration)
	}
	content := max(width-4-durationWidth, 0) // prefix, marker
	nameWidth := content / 2
	artistWidth := content - nameWidth

	line := prefix + marker +
		render.Fit(t.Name, nameWidth) +
		render.Fit(t.Artist, artistWidth) +
		lipgloss.PlaceHorizontal(durationWidth, lipgloss.Right, dur)

	return m.rowStyle(t, selected).Render(line)
}

func (m Model) rowStyle(t playlist.Track, selected bool) lipgloss.Style {
	st := styles.T().S()
	var style lipgloss.Style
	switch {
	case m.currentID != 0 && t.ID == m.currentID:
		style = st.Playing
	case !t.PlayableBy(m.premium):
		style = st.Locked
	case t.Premium:
		style = st.Premium.UnsetBold()
	default:
		style = st.Base
	}
	if selected {
		return st.Cursor.Inherit(style)
	}
	return style
}
