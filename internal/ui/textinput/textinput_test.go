package textinput

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestInactiveIgnoresKeys(t *testing.T) {
	m := New("Search", "song name")
	m = typeText(m, "abc")

	if m.Value() != "" {
		t.Errorf("Value() = %q, want empty while inactive", m.Value())
	}
	if m.View() != "" {
		t.Error("View() should be empty while inactive")
	}
}

func TestSubmit(t *testing.T) {
	m := New("Search", "")
	m.Start("")
	m = typeText(m, " lac troi ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Active() {
		t.Error("prompt should be inactive after enter")
	}
	if cmd == nil {
		t.Fatal("enter should return a command")
	}
	msg, ok := cmd().(SubmitMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want SubmitMsg", cmd())
	}
	if msg.Text != "lac troi" {
		t.Errorf("Text = %q, want %q", msg.Text, "lac troi")
	}
}

func TestCancel(t *testing.T) {
	m := New("Search", "")
	m.Start("old")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Active() {
		t.Error("prompt should be inactive after esc")
	}
	if _, ok := cmd().(CancelMsg); !ok {
		t.Errorf("cmd() = %T, want CancelMsg", cmd())
	}
}

func TestStartKeepsInitialText(t *testing.T) {
	m := New("Search", "")
	m.SetSize(40, 1)
	m.Start("gold")
	m = typeText(m, "en")

	if m.Value() != "golden" {
		t.Errorf("Value() = %q, want golden", m.Value())
	}
	if m.View() == "" {
		t.Error("View() should render while active")
	}
}
