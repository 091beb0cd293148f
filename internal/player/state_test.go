package player

import (
	"context"
	"errors"
	"testing"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Stopped, "Stopped"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestState_Predicates(t *testing.T) {
	tests := []struct {
		state                        State
		active, canPause, canResume bool
	}{
		{Stopped, false, false, false},
		{Playing, true, true, false},
		{Paused, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.IsActive(); got != tt.active {
				t.Errorf("IsActive() = %v, want %v", got, tt.active)
			}
			if got := tt.state.CanPause(); got != tt.canPause {
				t.Errorf("CanPause() = %v, want %v", got, tt.canPause)
			}
			if got := tt.state.CanResume(); got != tt.canResume {
				t.Errorf("CanResume() = %v, want %v", got, tt.canResume)
			}
		})
	}
}

func startMock(t *testing.T, m *Mock, location string) *MockSource {
	t.Helper()
	src, err := m.Open(context.Background(), location)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", location, err)
	}
	if err := m.Start(src); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return src.(*MockSource)
}

// TestMock_StateTransitions validates the state machine using the Mock player.
func TestMock_StateTransitions(t *testing.T) {
	t.Run("Stopped to Playing via Start", func(t *testing.T) {
		m := NewMock()
		if m.State() != Stopped {
			t.Fatalf("initial state = %v, want Stopped", m.State())
		}

		startMock(t, m, "/audio/a.mp3")

		if m.State() != Playing {
			t.Errorf("state after Start = %v, want Playing", m.State())
		}
	})

	t.Run("Playing to Paused and back", func(t *testing.T) {
		m := NewMock()
		startMock(t, m, "/audio/a.mp3")

		m.Pause()
		if m.State() != Paused {
			t.Errorf("state after Pause = %v, want Paused", m.State())
		}
		if err := m.Resume(); err != nil {
			t.Fatalf("Resume() error = %v", err)
		}
		if m.State() != Playing {
			t.Errorf("state after Resume = %v, want Playing", m.State())
		}
	})

	t.Run("Stop closes the source", func(t *testing.T) {
		m := NewMock()
		src := startMock(t, m, "/audio/a.mp3")

		m.Stop()

		if m.State() != Stopped {
			t.Errorf("state after Stop = %v, want Stopped", m.State())
		}
		if !src.Closed() {
			t.Error("Stop should close the active source")
		}
	})

	t.Run("Start replaces the active source", func(t *testing.T) {
		m := NewMock()
		first := startMock(t, m, "/audio/a.mp3")
		startMock(t, m, "/audio/b.mp3")

		if !first.Closed() {
			t.Error("starting a new source should close the previous one")
		}
		if m.Current().Location() != "/audio/b.mp3" {
			t.Errorf("Current() = %q, want /audio/b.mp3", m.Current().Location())
		}
	})
}

func TestMock_NoOpTransitions(t *testing.T) {
	t.Run("Pause when Stopped is no-op", func(t *testing.T) {
		m := NewMock()

		m.Pause()

		if m.State() != Stopped {
			t.Errorf("state = %v, want Stopped", m.State())
		}
	})

	t.Run("Resume without source fails", func(t *testing.T) {
		m := NewMock()

		if err := m.Resume(); !errors.Is(err, ErrNoSource) {
			t.Errorf("Resume() error = %v, want ErrNoSource", err)
		}
	})

	t.Run("Resume when Playing is no-op", func(t *testing.T) {
		m := NewMock()
		startMock(t, m, "/audio/a.mp3")

		if err := m.Resume(); err != nil {
			t.Fatalf("Resume() error = %v", err)
		}
		if m.State() != Playing {
			t.Errorf("state = %v, want Playing", m.State())
		}
	})
}

func TestMock_BlockOpen(t *testing.T) {
	m := NewMock()
	release := m.BlockOpen("/audio/slow.mp3")

	done := make(chan error, 1)
	go func() {
		_, err := m.Open(context.Background(), "/audio/slow.mp3")
		done <- err
	}()

	if got := <-m.Opening(); got != "/audio/slow.mp3" {
		t.Fatalf("Opening() = %q, want /audio/slow.mp3", got)
	}
	select {
	case <-done:
		t.Fatal("Open returned before release")
	default:
	}

	release()
	if err := <-done; err != nil {
		t.Errorf("Open() error = %v", err)
	}
}

func TestMock_BlockOpen_ContextCanceled(t *testing.T) {
	m := NewMock()
	release := m.BlockOpen("/audio/slow.mp3")
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Open(ctx, "/audio/slow.mp3"); !errors.Is(err, context.Canceled) {
		t.Errorf("Open() error = %v, want context.Canceled", err)
	}
}
