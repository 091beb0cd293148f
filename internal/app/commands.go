package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunedeck/internal/api"
	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/playlist"
)

const (
	requestTimeout = 15 * time.Second
	playTimeout    = 60 * time.Second
	tickInterval   = time.Second
)

// TickCmd returns a command that sends TickMsg after one second.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchEvents waits for the next playback event and converts it to a
// tea.Msg. Update re-arms it after each event.
func (m Model) WatchEvents() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return PlaybackEventMsg{Event: e}
		case e := <-sub.TrackChanged:
			return PlaybackEventMsg{Event: e}
		case e := <-sub.PositionChanged:
			return PlaybackEventMsg{Event: e}
		case e := <-sub.QueueChanged:
			return PlaybackEventMsg{Event: e}
		case e := <-sub.ModeChanged:
			return PlaybackEventMsg{Event: e}
		case e := <-sub.SleepTimerChanged:
			return PlaybackEventMsg{Event: e}
		case e := <-sub.Error:
			return PlaybackEventMsg{Event: e}
		case <-sub.Done:
			return PlaybackClosedMsg{}
		}
	}
}

// playCmd runs a blocking playback operation off the update loop. The
// entitlement is captured now, so a sign-out while loading does not change
// what the request was allowed to play.
func (m Model) playCmd(op errmsg.Op, fn func(ctx context.Context, ent playback.Entitlement) error) tea.Cmd {
	ent := m.Entitlement()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), playTimeout)
		defer cancel()
		return PlaybackResultMsg{Op: op, Err: fn(ctx, ent)}
	}
}

func (m Model) loadSongs(query string) tea.Cmd {
	client := m.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		songs, err := client.Songs(ctx, query)
		if err != nil {
			return SongsLoadedMsg{Query: query, Err: err}
		}
		return SongsLoadedMsg{Query: query, Tracks: api.Tracks(client, songs)}
	}
}

func (m Model) loadAlbums() tea.Cmd {
	client := m.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		albums, err := client.Albums(ctx)
		return AlbumsLoadedMsg{Albums: albums, Err: err}
	}
}

func (m Model) loadPlaylists() tea.Cmd {
	if m.Session == nil {
		return func() tea.Msg { return PlaylistsLoadedMsg{} }
	}
	client := m.API
	userID := m.Session.UserID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		playlists, err := client.Playlists(ctx, userID, "")
		return PlaylistsLoadedMsg{Playlists: playlists, Err: err}
	}
}

func (m Model) loadAlbumSongs(a api.Album) tea.Cmd {
	client := m.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		songs, err := client.AlbumSongs(ctx, a.ID)
		if err != nil {
			return DetailLoadedMsg{Op: errmsg.OpAlbumLoad, Err: err}
		}
		return DetailLoadedMsg{Op: errmsg.OpAlbumLoad, Title: a.Name, Tracks: api.Tracks(client, songs)}
	}
}

func (m Model) loadPlaylistSongs(p api.Playlist) tea.Cmd {
	client := m.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		songs, err := client.PlaylistSongs(ctx, p.ID)
		if err != nil {
			return DetailLoadedMsg{Op: errmsg.OpPlaylistLoad, Err: err}
		}
		return DetailLoadedMsg{Op: errmsg.OpPlaylistLoad, Title: p.Name, Playlist: &p, Tracks: api.Tracks(client, songs)}
	}
}

func (m Model) loadLyrics(t playlist.Track) tea.Cmd {
	client := m.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		song, err := client.Song(ctx, t.ID)
		if err != nil {
			return LyricsLoadedMsg{TrackID: t.ID, Err: err}
		}
		return LyricsLoadedMsg{TrackID: t.ID, Lyrics: song.Lyrics}
	}
}

func (m Model) addToPlaylist(p api.Playlist, t playlist.Track) tea.Cmd {
	client := m.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.AddSongToPlaylist(ctx, p.ID, t.ID)
		return PlaylistEditedMsg{Op: errmsg.OpPlaylistAddTrack, Playlist: p, Track: t, Err: err}
	}
}

func (m Model) removeFromPlaylist(p api.Playlist, t playlist.Track) tea.Cmd {
	client := m.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.RemoveSongFromPlaylist(ctx, p.ID, t.ID)
		return PlaylistEditedMsg{Op: errmsg.OpPlaylistRemove, Playlist: p, Track: t, Err: err}
	}
}
