// Package helpbindings renders the scrollable key binding reference.
package helpbindings

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunedeck/internal/keymap"
	"github.com/llehouerou/tunedeck/internal/ui"
	"github.com/llehouerou/tunedeck/internal/ui/render"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

var categoryLabels = map[string]string{
	"global":   "Global",
	"playback": "Playback",
	"list":     "Lists",
}

// Model holds the scroll state of the help panel.
type Model struct {
	ui.Base
	scroll int
}

// New creates a help panel.
func New() Model {
	return Model{}
}

// HandleAction scrolls on up/down and reports whether the action was used.
func (m *Model) HandleAction(a keymap.Action) bool {
	switch a { //nolint:exhaustive // only scrolling
	case keymap.ActionMoveDown:
		m.scroll = min(m.scroll+1, m.maxScroll())
	case keymap.ActionMoveUp:
		m.scroll = max(m.scroll-1, 0)
	case keymap.ActionJumpStart:
		m.scroll = 0
	case keymap.ActionJumpEnd:
		m.scroll = m.maxScroll()
	default:
		return false
	}
	return true
}

// View renders the visible part of the reference inside a panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	inner := max(m.Width()-ui.BorderHeight, 0)
	height := m.ListHeight()

	lines := Lines()
	start := min(m.scroll, len(lines))
	end := min(start+height, len(lines))
	visible := make([]string, 0, height)
	for _, l := range lines[start:end] {
		visible = append(visible, l+strings.Repeat(" ", max(inner-lipgloss.Width(l), 0)))
	}
	for len(visible) < height {
		visible = append(visible, render.EmptyLine(inner))
	}

	header := styles.T().S().Title.Render(render.Fit("Help  (esc to close)", inner))
	content := header + "\n" + render.Separator(inner) + "\n" + strings.Join(visible, "\n")
	return styles.PanelStyle(true).Width(inner).Render(content)
}

// Lines returns the reference, one line per binding, grouped by context.
func Lines() []string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.T().Primary).Bold(true)
	headerStyle := styles.T().S().Premium
	descStyle := styles.T().S().Base

	keyWidth := 0
	for _, b := range keymap.Bindings {
		keyWidth = max(keyWidth, lipgloss.Width(keyLabel(b)))
	}

	var lines []string
	for i, ctx := range keymap.Contexts() {
		if i > 0 {
			lines = append(lines, "")
		}
		label := categoryLabels[ctx]
		if label == "" {
			label = ctx
		}
		lines = append(lines, headerStyle.Render(label))
		for _, b := range keymap.ByContext(ctx) {
			lines = append(lines, keyStyle.Render(render.Pad(keyLabel(b), keyWidth))+"  "+descStyle.Render(b.Description))
		}
	}
	return lines
}

func keyLabel(b keymap.Binding) string {
	keys := make([]string, len(b.Keys))
	for i, k := range b.Keys {
		if k == " " {
			k = "space"
		}
		keys[i] = k
	}
	return strings.Join(keys, ", ")
}

func (m Model) maxScroll() int {
	return max(len(Lines())-m.ListHeight(), 0)
}
