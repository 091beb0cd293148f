// Package playerbar renders the now-playing bar at the bottom of the screen.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/ui/render"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

const (
	playSymbol    = "▶"
	pauseSymbol   = "⏸"
	loadingSymbol = "…"
	idleSymbol    = "■"
	premiumBadge  = "PREMIUM"
	separator     = "   "
)

// Height is the rendered height including borders.
const Height = 4

// State holds everything needed to render the player bar.
type State struct {
	Status   playback.State
	Title    string
	Artist   string
	Album    string
	Premium  bool
	Position time.Duration
	Duration time.Duration
	Repeat   playback.RepeatMode
	Shuffle  bool
	Volume   float64
	Sleep    time.Duration
	SleepOn  bool
}

// NewState snapshots the playback service.
func NewState(svc playback.Service) State {
	s := State{
		Status:   svc.State(),
		Position: svc.Position(),
		Duration: svc.Duration(),
		Repeat:   svc.RepeatMode(),
		Shuffle:  svc.Shuffle(),
		Volume:   svc.Volume(),
	}
	s.Sleep, s.SleepOn = svc.SleepTimerRemaining()
	if t := svc.CurrentTrack(); t != nil {
		s.Title = t.Name
		s.Artist = t.Artist
		s.Album = t.Album
		s.Premium = t.Premium
		if s.Duration == 0 {
			s.Duration = t.Duration
		}
	}
	return s
}

// Render returns the player bar for the given width.
func Render(s State, width int) string {
	inner := max(width-6, 0) // border and padding
	lines := []string{
		renderTrackLine(s, inner),
		renderProgressLine(s, inner),
	}
	return styles.PanelStyle(false).
		Padding(0, 2).
		Width(max(width-2, 0)).
		Render(strings.Join(lines, "\n"))
}

func renderTrackLine(s State, width int) string {
	st := styles.T().S()
	if s.Status == playback.StateIdle {
		return st.Muted.Render(render.Fit(idleSymbol+"  Nothing playing", width))
	}

	badge := ""
	badgeWidth := 0
	if s.Premium {
		badge = " " + styles.Brand(premiumBadge)
		badgeWidth = lipgloss.Width(premiumBadge) + 1
	}

	prefix := statusSymbol(s.Status) + "  "
	avail := max(width-lipgloss.Width(prefix)-badgeWidth, 0)

	title := render.Sanitize(s.Title)
	info := render.Sanitize(strings.Join(nonEmpty(s.Artist, s.Album), " · "))

	var line string
	switch {
	case info == "":
		line = st.Title.Render(render.Truncate(title, avail))
	case lipgloss.Width(title)+len(separator)+lipgloss.Width(info) <= avail:
		line = st.Title.Render(title) + separator + st.Muted.Render(info)
	default:
		titleWidth := min(lipgloss.Width(title), max(avail/2, avail-len(separator)-lipgloss.Width(info)))
		infoWidth := max(avail-titleWidth-len(separator), 0)
		line = st.Title.Render(render.Truncate(title, titleWidth))
		if infoWidth > 0 {
			line += separator + st.Muted.Render(render.Truncate(info, infoWidth))
		}
	}
	return prefix + line + badge
}

func renderProgressLine(s State, width int) string {
	st := styles.T().S()
	timeStr := fmt.Sprintf("%s / %s", render.Duration(s.Position), render.Duration(s.Duration))
	modes := Modes(s)

	barWidth := width - lipgloss.Width(timeStr) - lipgloss.Width(modes) - 2*len(separator)
	if barWidth < 5 {
		return render.Fit(timeStr+separator+modes, width)
	}

	filled := 0
	if s.Duration > 0 {
		ratio := float64(s.Position) / float64(s.Duration)
		filled = min(int(float64(barWidth)*ratio), barWidth)
	}
	bar := lipgloss.NewStyle().Foreground(styles.T().Primary).Render(strings.Repeat("━", filled)) +
		st.Subtle.Render(strings.Repeat("─", barWidth-filled))

	return bar + separator + st.Base.Render(timeStr) + separator + st.Muted.Render(modes)
}

// Modes renders the repeat, shuffle, sleep timer and volume indicators.
func Modes(s State) string {
	var parts []string
	switch s.Repeat {
	case playback.RepeatAll:
		parts = append(parts, "⟳ all")
	case playback.RepeatOne:
		parts = append(parts, "⟳ one")
	case playback.RepeatOff:
	}
	if s.Shuffle {
		parts = append(parts, "⤮ shuffle")
	}
	if s.SleepOn {
		parts = append(parts, "☾ "+render.Duration(s.Sleep))
	}
	parts = append(parts, fmt.Sprintf("vol %d%%", int(s.Volume*100+0.5)))
	return strings.Join(parts, "  ")
}

func statusSymbol(st playback.State) string {
	switch st {
	case playback.StatePlaying:
		return playSymbol
	case playback.StatePaused:
		return pauseSymbol
	case playback.StateLoading:
		return loadingSymbol
	default:
		return idleSymbol
	}
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
