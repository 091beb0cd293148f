// Package textinput provides the one-line search prompt.
package textinput

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunedeck/internal/ui"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

// SubmitMsg is sent when the prompt is confirmed with enter.
type SubmitMsg struct {
	Text string
}

// CancelMsg is sent when the prompt is dismissed with esc.
type CancelMsg struct{}

// Model is a search prompt. It only consumes keys while active.
type Model struct {
	ui.Base
	title  string
	input  textinput.Model
	active bool
}

// New creates an inactive prompt.
func New(title, placeholder string) Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Prompt = "/ "
	return Model{title: title, input: ti}
}

// Start activates the prompt with initial text.
func (m *Model) Start(initial string) tea.Cmd {
	m.active = true
	m.input.SetValue(initial)
	m.input.CursorEnd()
	return m.input.Focus()
}

// Active reports whether the prompt is taking input.
func (m Model) Active() bool {
	return m.active
}

// Value returns the current text.
func (m Model) Value() string {
	return m.input.Value()
}

// Update handles key input while active.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type { //nolint:exhaustive // only enter and esc end the prompt
		case tea.KeyEnter:
			m.stop()
			text := strings.TrimSpace(m.input.Value())
			return m, func() tea.Msg { return SubmitMsg{Text: text} }
		case tea.KeyEsc:
			m.stop()
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stop() {
	m.active = false
	m.input.Blur()
}

// View renders the prompt on one line.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	m.input.Width = max(m.Width()-lipgloss.Width(m.title)-4, 1)
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.T().Primary).Render(m.title)
	return title + "  " + m.input.View()
}
