package keymap

import (
	"slices"
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	bindings := []Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
		{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
		{ActionMoveUp, []string{"k", "up"}, "Move up", "list"},
		{ActionMoveDown, []string{"j", "down"}, "Move down", "list"},
	}

	r := NewResolver(bindings)

	tests := []struct {
		key      string
		expected Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"k", ActionMoveUp},
		{"up", ActionMoveUp},
		{"j", ActionMoveDown},
		{"down", ActionMoveDown},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := r.Resolve(tt.key); got != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestResolver_LaterBindingWins(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionAdd, []string{"a"}, "Add", "list"},
		{ActionPlayAll, []string{"a"}, "Play all", "list"},
	})

	if got := r.Resolve("a"); got != ActionPlayAll {
		t.Errorf("Resolve(a) = %q, want %q", got, ActionPlayAll)
	}
}

func TestResolver_KeysFor(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionSelect, []string{"enter"}, "Open", "list"},
		{ActionSelect, []string{"enter", "o"}, "Open", "list"},
	})

	keys := r.KeysFor(ActionSelect)
	if !slices.Equal(keys, []string{"enter", "o"}) {
		t.Errorf("KeysFor(select) = %v, want [enter o]", keys)
	}
	if keys := r.KeysFor(ActionQuit); keys != nil {
		t.Errorf("KeysFor(unbound) = %v, want nil", keys)
	}
}

func TestDefault(t *testing.T) {
	r := Default()

	tests := []struct {
		key  string
		want Action
	}{
		{"q", ActionQuit},
		{" ", ActionPlayPause},
		{"n", ActionNextTrack},
		{"R", ActionCycleRepeat},
		{"S", ActionToggleShuffle},
		{"t", ActionSleepTimer},
		{"/", ActionSearch},
		{"enter", ActionSelect},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.key); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"no duplicates", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"with duplicates", []string{"a", "b", "a", "c", "b"}, []string{"a", "b", "c"}},
		{"empty slice", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dedupe(tt.input); !slices.Equal(got, tt.expected) {
				t.Errorf("dedupe(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
