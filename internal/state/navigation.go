package state

import (
	"context"
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/tunedeck/internal/db"
)

// NavigationState is the TUI view restored at startup.
type NavigationState struct {
	View           string // "songs", "albums", "playlists", "queue" or "history"
	Search         string
	SelectedSongID int64
	PlaylistID     int64
}

// GetNavigation returns the saved view, or nil on first run.
func (m *Manager) GetNavigation(ctx context.Context) (*NavigationState, error) {
	return getNavigation(ctx, m.db)
}

// SaveNavigation persists the view. Writes are debounced.
func (m *Manager) SaveNavigation(state NavigationState) {
	m.saveLater("navigation", func(db *sql.DB) error {
		return saveNavigation(context.Background(), db, state)
	})
}

func getNavigation(ctx context.Context, db *sql.DB) (*NavigationState, error) {
	row := db.QueryRowContext(ctx, `
		SELECT view, search, selected_song_id, playlist_id
		FROM navigation_state WHERE id = 1
	`)

	var state NavigationState
	var search sql.NullString
	var selected, playlistID sql.NullInt64

	err := row.Scan(&state.View, &search, &selected, &playlistID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	state.Search = dbutil.NullStringValue(search)
	state.SelectedSongID = dbutil.NullInt64Value(selected)
	state.PlaylistID = dbutil.NullInt64Value(playlistID)

	return &state, nil
}

func saveNavigation(ctx context.Context, db *sql.DB, state NavigationState) error {
	var selected, playlistID any
	if state.SelectedSongID > 0 {
		selected = state.SelectedSongID
	}
	if state.PlaylistID > 0 {
		playlistID = state.PlaylistID
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO navigation_state (id, view, search, selected_song_id, playlist_id)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			view = excluded.view,
			search = excluded.search,
			selected_song_id = excluded.selected_song_id,
			playlist_id = excluded.playlist_id
	`, state.View, dbutil.NullString(state.Search), selected, playlistID)

	return err
}
