package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// PlaylistInput holds the editable fields of a playlist.
type PlaylistInput struct {
	Name        string `json:"name,omitempty"`
	UserID      int64  `json:"user,omitempty"`
	Description string `json:"description,omitempty"`
	CoverImage  string `json:"cover_image,omitempty"`
}

// Playlists lists a user's playlists, optionally filtered by name.
func (c *Client) Playlists(ctx context.Context, userID int64, search string) ([]Playlist, error) {
	query := url.Values{"user_id": {strconv.FormatInt(userID, 10)}}
	if s := strings.TrimSpace(search); s != "" {
		query.Set("search", s)
	}
	var playlists []Playlist
	if err := c.do(ctx, http.MethodGet, "api/playlists/", query, nil, &playlists); err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	return playlists, nil
}

// Playlist fetches one playlist.
func (c *Client) Playlist(ctx context.Context, id int64) (*Playlist, error) {
	var pl Playlist
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("api/playlists/%d/", id), nil, nil, &pl); err != nil {
		return nil, fmt.Errorf("get playlist %d: %w", id, err)
	}
	return &pl, nil
}

// CreatePlaylist stores a new playlist.
func (c *Client) CreatePlaylist(ctx context.Context, in PlaylistInput) (*Playlist, error) {
	var pl Playlist
	if err := c.do(ctx, http.MethodPost, "api/playlists/add/", nil, in, &pl); err != nil {
		return nil, fmt.Errorf("create playlist: %w", err)
	}
	return &pl, nil
}

// UpdatePlaylist changes the non-empty fields of in.
func (c *Client) UpdatePlaylist(ctx context.Context, id int64, in PlaylistInput) (*Playlist, error) {
	var pl Playlist
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("api/playlists/update/%d/", id), nil, in, &pl); err != nil {
		return nil, fmt.Errorf("update playlist %d: %w", id, err)
	}
	return &pl, nil
}

// DeletePlaylist removes a playlist.
func (c *Client) DeletePlaylist(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("api/playlists/delete/%d/", id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete playlist %d: %w", id, err)
	}
	return nil
}

// PlaylistSongs lists the songs of a playlist in insertion order.
func (c *Client) PlaylistSongs(ctx context.Context, playlistID int64) ([]Song, error) {
	var items []PlaylistSong
	path := fmt.Sprintf("api/playlist/%d/songs/", playlistID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &items); err != nil {
		return nil, fmt.Errorf("list playlist %d songs: %w", playlistID, err)
	}
	songs := make([]Song, len(items))
	for i, item := range items {
		songs[i] = item.Song
	}
	return songs, nil
}

type playlistSongRequest struct {
	PlaylistID int64 `json:"playlist_id"`
	SongID     int64 `json:"song_id"`
}

// AddSongToPlaylist appends a song. Adding a song twice fails with
// ErrBadRequest.
func (c *Client) AddSongToPlaylist(ctx context.Context, playlistID, songID int64) error {
	req := playlistSongRequest{PlaylistID: playlistID, SongID: songID}
	if err := c.do(ctx, http.MethodPost, "api/playlist_songs/", nil, req, nil); err != nil {
		return fmt.Errorf("add song %d to playlist %d: %w", songID, playlistID, err)
	}
	return nil
}

// RemoveSongFromPlaylist removes a song.
func (c *Client) RemoveSongFromPlaylist(ctx context.Context, playlistID, songID int64) error {
	path := fmt.Sprintf("api/playlist_songs/%d/%d/", playlistID, songID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("remove song %d from playlist %d: %w", songID, playlistID, err)
	}
	return nil
}
