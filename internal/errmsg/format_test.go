//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/llehouerou/tunedeck/internal/api"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/playlist"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpSongsLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpSongsLoad,
			err:      errors.New("connection refused"),
			expected: "Failed to load songs: connection refused",
		},
		{
			name:     "playlist operation",
			op:       OpPlaylistCreate,
			err:      errors.New("already exists"),
			expected: "Failed to create playlist: already exists",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{"nil error", OpPlaylistDelete, "Chill", nil, ""},
		{"with context", OpPlaylistDelete, "Chill", errors.New("not found"), "Failed to delete playlist 'Chill': not found"},
		{"empty context falls back", OpPlaylistDelete, "", errors.New("not found"), "Failed to delete playlist: not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestNotice(t *testing.T) {
	gold := playlist.Track{ID: 2, Name: "Gold", Premium: true}

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"superseded is silent", fmt.Errorf("play: %w", playback.ErrSuperseded), ""},
		{"cancelled is silent", context.Canceled, ""},
		{"entitlement", &playback.EntitlementError{Track: gold}, `"Gold" is a Premium song. Upgrade to Premium to play it.`},
		{"no eligible track", playback.ErrNoEligibleTrack, "No playable song in the queue. Upgrade to Premium to play Premium songs."},
		{"playback failure", &playback.PlaybackError{Track: gold, Op: "open", Err: errors.New("404")}, `Could not play "Gold": 404`},
		{"bad credentials", fmt.Errorf("login: %w", &api.Error{StatusCode: http.StatusUnauthorized, Message: "x"}), "Wrong email or password."},
		{"locked account", &api.Error{StatusCode: http.StatusForbidden}, "This account is locked or not activated."},
		{"api message", &api.Error{StatusCode: http.StatusBadRequest, Message: "song already in playlist"}, "song already in playlist"},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Notice(tt.err); got != tt.expected {
				t.Errorf("Notice(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}
