package lyrics

import (
	"strings"
	"testing"

	"github.com/llehouerou/tunedeck/internal/keymap"
	"github.com/llehouerou/tunedeck/internal/playlist"
)

func TestSetLyrics_States(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  State
		lines int
	}{
		{"text", "one\ntwo\r\nthree", StateLoaded, 3},
		{"blank", "  \n ", StateEmpty, 0},
		{"trimmed", "\nonly\n\n", StateLoaded, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.SetTrack(playlist.Track{ID: 4, Name: "Gold"})
			if m.State() != StateLoading {
				t.Fatalf("State() = %v, want loading after SetTrack", m.State())
			}
			m.SetLyrics(tt.text)
			if m.State() != tt.want {
				t.Errorf("State() = %v, want %v", m.State(), tt.want)
			}
			if len(m.lines) != tt.lines {
				t.Errorf("lines = %d, want %d", len(m.lines), tt.lines)
			}
		})
	}
}

func TestHandleAction_Scroll(t *testing.T) {
	m := New()
	m.SetSize(40, 8) // 4 visible lines
	m.SetTrack(playlist.Track{ID: 1, Name: "Gold"})
	m.SetLyrics("1\n2\n3\n4\n5\n6\n7\n8\n9\n10")

	m.HandleAction(keymap.ActionMoveUp)
	if m.scroll != 0 {
		t.Errorf("scroll = %d, want 0 at top", m.scroll)
	}
	m.HandleAction(keymap.ActionPageDown)
	if m.scroll != 2 {
		t.Errorf("scroll = %d, want 2 after half page", m.scroll)
	}
	m.HandleAction(keymap.ActionJumpEnd)
	if m.scroll != 6 {
		t.Errorf("scroll = %d, want 6", m.scroll)
	}
	m.HandleAction(keymap.ActionMoveDown)
	if m.scroll != 6 {
		t.Error("scroll should stop at the end")
	}
	if m.HandleAction(keymap.ActionSelect) {
		t.Error("select is not a scroll action")
	}
}

func TestView(t *testing.T) {
	m := New()
	m.SetSize(50, 10)
	m.SetTrack(playlist.Track{ID: 1, Name: "Gold", Artist: "Band"})

	if !strings.Contains(m.View(), "Loading lyrics") {
		t.Error("loading state should say so")
	}
	m.SetLyrics("shine on\nbright")
	out := m.View()
	for _, want := range []string{"Gold · Band", "shine on", "bright"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	m.SetError("Failed to load lyrics: boom")
	if !strings.Contains(m.View(), "boom") {
		t.Error("error state should show the message")
	}
}
