package helpbindings

import (
	"strings"
	"testing"

	"github.com/llehouerou/tunedeck/internal/keymap"
)

func TestLines_ListsEveryBinding(t *testing.T) {
	all := strings.Join(Lines(), "\n")
	for _, b := range keymap.Bindings {
		if !strings.Contains(all, b.Description) {
			t.Errorf("help is missing %q", b.Description)
		}
	}
	if !strings.Contains(all, "space") {
		t.Error("the space key should be spelled out")
	}
}

func TestScroll(t *testing.T) {
	m := New()
	m.SetSize(60, 10)

	m.HandleAction(keymap.ActionMoveUp)
	if m.scroll != 0 {
		t.Errorf("scroll = %d, want 0 at top", m.scroll)
	}
	m.HandleAction(keymap.ActionMoveDown)
	if m.scroll != 1 {
		t.Errorf("scroll = %d, want 1", m.scroll)
	}
	m.HandleAction(keymap.ActionJumpEnd)
	if m.scroll != m.maxScroll() {
		t.Errorf("scroll = %d, want %d", m.scroll, m.maxScroll())
	}
	m.HandleAction(keymap.ActionMoveDown)
	if m.scroll != m.maxScroll() {
		t.Error("scroll should stop at the end")
	}
	if m.HandleAction(keymap.ActionSelect) {
		t.Error("select should not be handled")
	}
}

func TestView(t *testing.T) {
	m := New()
	m.SetSize(60, 12)
	out := m.View()
	if !strings.Contains(out, "Help") || !strings.Contains(out, "Global") {
		t.Errorf("View() = \n%s", out)
	}
	if lines := strings.Count(out, "\n") + 1; lines != 12 {
		t.Errorf("View() has %d lines, want 12", lines)
	}
}
