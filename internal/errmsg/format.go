// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"context"
	"errors"
	"fmt"

	"github.com/llehouerou/tunedeck/internal/api"
	"github.com/llehouerou/tunedeck/internal/playback"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Account operations
	OpLogin          Op = "sign in"
	OpLogout         Op = "sign out"
	OpRegister       Op = "create account"
	OpChangePassword Op = "change password"
	OpUpgrade        Op = "upgrade account"
	OpSessionLoad    Op = "load session"

	// Catalogue operations
	OpSongsLoad  Op = "load songs"
	OpAlbumLoad  Op = "load album"
	OpArtistLoad Op = "load artists"
	OpLyricsLoad Op = "load lyrics"

	// Playlist operations
	OpPlaylistLoad     Op = "load playlists"
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistRename   Op = "rename playlist"
	OpPlaylistDelete   Op = "delete playlist"
	OpPlaylistAddTrack Op = "add track to playlist"
	OpPlaylistRemove   Op = "remove track from playlist"

	// Queue operations
	OpQueueLoad Op = "load queue"
	OpQueueSave Op = "save queue"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackNext  Op = "play next track"
	OpPlaybackPrev  Op = "play previous track"
	OpPlaybackSeek  Op = "seek"
	OpSleepTimer    Op = "set sleep timer"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Notice returns the short text shown in the status line for err, or ""
// when err should not be shown at all.
func Notice(err error) string {
	var entErr *playback.EntitlementError
	var playErr *playback.PlaybackError
	var apiErr *api.Error

	switch {
	case err == nil,
		errors.Is(err, playback.ErrSuperseded),
		errors.Is(err, playback.ErrClosed),
		errors.Is(err, context.Canceled):
		return ""
	case errors.As(err, &entErr):
		return fmt.Sprintf("%q is a Premium song. Upgrade to Premium to play it.", entErr.Track.Name)
	case errors.Is(err, playback.ErrNoEligibleTrack):
		return "No playable song in the queue. Upgrade to Premium to play Premium songs."
	case errors.Is(err, playback.ErrInvalidSleepDuration):
		return "Sleep timer must be between 5 and 120 minutes, in 5 minute steps."
	case errors.As(err, &playErr):
		return fmt.Sprintf("Could not play %q: %v", playErr.Track.Name, playErr.Err)
	case errors.Is(err, api.ErrUnauthorized):
		return "Wrong email or password."
	case errors.Is(err, api.ErrForbidden):
		return "This account is locked or not activated."
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, context.DeadlineExceeded):
		return "The server took too long to respond."
	}
	return err.Error()
}
