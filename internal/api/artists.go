package api

import (
	"context"
	"fmt"
	"net/http"
)

// Artists lists all artists.
func (c *Client) Artists(ctx context.Context) ([]Artist, error) {
	var artists []Artist
	if err := c.do(ctx, http.MethodGet, "api/artists/", nil, nil, &artists); err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

// ToggleArtistStatus flips an artist between visible and hidden and
// returns whether it is now visible.
func (c *Client) ToggleArtistStatus(ctx context.Context, id int64) (bool, error) {
	var res StatusChange
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("api/artists/change/%d/", id), nil, nil, &res); err != nil {
		return false, fmt.Errorf("toggle artist %d: %w", id, err)
	}
	return bool(res.Status), nil
}
