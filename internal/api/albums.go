package api

import (
	"context"
	"fmt"
	"net/http"
)

// Albums lists all albums, including hidden ones.
func (c *Client) Albums(ctx context.Context) ([]Album, error) {
	var albums []Album
	if err := c.do(ctx, http.MethodGet, "api/albums/", nil, nil, &albums); err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return albums, nil
}

// Album fetches one album.
func (c *Client) Album(ctx context.Context, id int64) (*Album, error) {
	var album Album
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("api/albums/%d/", id), nil, nil, &album); err != nil {
		return nil, fmt.Errorf("get album %d: %w", id, err)
	}
	return &album, nil
}

// ToggleAlbumStatus flips an album between visible and hidden and returns
// whether it is now visible. Hiding is the backend's soft delete.
func (c *Client) ToggleAlbumStatus(ctx context.Context, id int64) (bool, error) {
	var res StatusChange
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("api/albums/change/%d/", id), nil, nil, &res); err != nil {
		return false, fmt.Errorf("toggle album %d: %w", id, err)
	}
	return bool(res.Status), nil
}
