package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunedeck/internal/api"
	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/playlist"
)

// Message category interfaces for type-based routing in Update().

// PlaybackMessage is implemented by messages about the playback session.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// CatalogMessage is implemented by results of REST calls.
type CatalogMessage interface {
	tea.Msg
	catalogMessage()
}

// TickMsg redraws the progress bar and sleep countdown.
type TickMsg time.Time

func (TickMsg) playbackMessage() {}

// PlaybackEventMsg wraps one event from the playback subscription.
type PlaybackEventMsg struct {
	Event any
}

func (PlaybackEventMsg) playbackMessage() {}

// PlaybackClosedMsg is sent when the playback subscription ends.
type PlaybackClosedMsg struct{}

func (PlaybackClosedMsg) playbackMessage() {}

// PlaybackResultMsg carries the outcome of a blocking playback command.
type PlaybackResultMsg struct {
	Op  errmsg.Op
	Err error
}

func (PlaybackResultMsg) playbackMessage() {}

// SongsLoadedMsg carries the catalogue or search results.
type SongsLoadedMsg struct {
	Query  string
	Tracks []playlist.Track
	Err    error
}

func (SongsLoadedMsg) catalogMessage() {}

// AlbumsLoadedMsg carries the album list.
type AlbumsLoadedMsg struct {
	Albums []api.Album
	Err    error
}

func (AlbumsLoadedMsg) catalogMessage() {}

// PlaylistsLoadedMsg carries the signed-in user's playlists.
type PlaylistsLoadedMsg struct {
	Playlists []api.Playlist
	Err       error
}

func (PlaylistsLoadedMsg) catalogMessage() {}

// DetailLoadedMsg carries the songs of an opened album or playlist.
// Playlist is set only for playlists.
type DetailLoadedMsg struct {
	Op       errmsg.Op
	Title    string
	Playlist *api.Playlist
	Tracks   []playlist.Track
	Err      error
}

func (DetailLoadedMsg) catalogMessage() {}

// LyricsLoadedMsg carries the lyrics of one song.
type LyricsLoadedMsg struct {
	TrackID int64
	Lyrics  string
	Err     error
}

func (LyricsLoadedMsg) catalogMessage() {}

// PlaylistEditedMsg reports adding a song to or removing it from a
// playlist.
type PlaylistEditedMsg struct {
	Op       errmsg.Op
	Playlist api.Playlist
	Track    playlist.Track
	Err      error
}

func (PlaylistEditedMsg) catalogMessage() {}
