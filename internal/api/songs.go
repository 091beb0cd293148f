package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Songs lists the catalogue. A non-empty search matches song or artist
// names, case-insensitively.
func (c *Client) Songs(ctx context.Context, search string) ([]Song, error) {
	var query url.Values
	if s := strings.TrimSpace(search); s != "" {
		query = url.Values{"search": {s}}
	}
	var songs []Song
	if err := c.do(ctx, http.MethodGet, "api/songs/", query, nil, &songs); err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	return songs, nil
}

// AlbumSongs lists the songs of an album.
func (c *Client) AlbumSongs(ctx context.Context, albumID int64) ([]Song, error) {
	var songs []Song
	path := fmt.Sprintf("api/songs/album/%d/", albumID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &songs); err != nil {
		return nil, fmt.Errorf("list album %d songs: %w", albumID, err)
	}
	return songs, nil
}

// Song fetches one song, including its lyrics.
func (c *Client) Song(ctx context.Context, id int64) (*Song, error) {
	var song Song
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("api/songs/%d/", id), nil, nil, &song); err != nil {
		return nil, fmt.Errorf("get song %d: %w", id, err)
	}
	return &song, nil
}
