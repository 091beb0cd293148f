// Package lyrics renders the plain lyrics of a song in a scrollable panel.
package lyrics

import (
	"strings"

	"github.com/llehouerou/tunedeck/internal/keymap"
	"github.com/llehouerou/tunedeck/internal/playlist"
	"github.com/llehouerou/tunedeck/internal/ui"
	"github.com/llehouerou/tunedeck/internal/ui/render"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

// State is what the panel currently shows.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateEmpty
	StateError
)

// Model holds the lyrics of one track and the scroll offset.
type Model struct {
	ui.Base
	trackID int64
	title   string
	lines   []string
	state   State
	errMsg  string
	scroll  int
}

// New creates an empty panel.
func New() Model {
	return Model{}
}

// SetTrack starts showing t, in the loading state.
func (m *Model) SetTrack(t playlist.Track) {
	m.trackID = t.ID
	m.title = t.Name
	if t.Artist != "" {
		m.title += " · " + t.Artist
	}
	m.lines = nil
	m.errMsg = ""
	m.scroll = 0
	m.state = StateLoading
}

// TrackID is the song the panel was opened for.
func (m Model) TrackID() int64 {
	return m.trackID
}

// State reports what the panel shows.
func (m Model) State() State {
	return m.state
}

// SetLyrics fills the panel. Blank text means the song has no lyrics.
func (m *Model) SetLyrics(text string) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	m.scroll = 0
	if text == "" {
		m.lines = nil
		m.state = StateEmpty
		return
	}
	m.lines = strings.Split(text, "\n")
	m.state = StateLoaded
}

// SetError shows msg instead of lyrics.
func (m *Model) SetError(msg string) {
	m.lines = nil
	m.errMsg = msg
	m.state = StateError
}

// HandleAction scrolls on list movement and reports whether it was used.
func (m *Model) HandleAction(a keymap.Action) bool {
	half := max(m.ListHeight()/2, 1)
	switch a { //nolint:exhaustive // only scrolling
	case keymap.ActionMoveDown:
		m.scroll++
	case keymap.ActionMoveUp:
		m.scroll--
	case keymap.ActionPageDown:
		m.scroll += half
	case keymap.ActionPageUp:
		m.scroll -= half
	case keymap.ActionJumpStart:
		m.scroll = 0
	case keymap.ActionJumpEnd:
		m.scroll = m.maxScroll()
	default:
		return false
	}
	m.scroll = max(0, min(m.scroll, m.maxScroll()))
	return true
}

// View renders the panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	inner := max(m.Width()-ui.BorderHeight, 0)
	height := m.ListHeight()
	s := styles.T().S()

	var body []string
	switch m.state {
	case StateLoading:
		body = []string{s.Muted.Render("Loading lyrics...")}
	case StateEmpty:
		body = []string{s.Muted.Render("No lyrics for this song")}
	case StateError:
		body = []string{s.Error.Render(render.Truncate(m.errMsg, inner))}
	case StateLoaded:
		end := min(m.scroll+height, len(m.lines))
		for _, l := range m.lines[m.scroll:end] {
			body = append(body, s.Base.Render(render.Fit(render.Sanitize(l), inner)))
		}
	}
	for len(body) < height {
		body = append(body, render.EmptyLine(inner))
	}

	header := s.Title.Render(render.Fit(m.title+"  (esc to close)", inner))
	content := header + "\n" + render.Separator(inner) + "\n" + strings.Join(body[:height], "\n")
	return styles.PanelStyle(true).Width(inner).Render(content)
}

func (m Model) maxScroll() int {
	return max(len(m.lines)-m.ListHeight(), 0)
}
