package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/tunedeck/internal/db"
	"github.com/llehouerou/tunedeck/internal/playlist"
)

// QueueState is the saved play queue.
type QueueState struct {
	CurrentIndex int
	RepeatMode   int
	Shuffle      bool
	Tracks       []playlist.Track
}

// GetQueue returns the saved queue. An empty queue with CurrentIndex -1 is
// returned on first run.
func (m *Manager) GetQueue(ctx context.Context) (*QueueState, error) {
	return getQueue(ctx, m.db)
}

// SaveQueue replaces the saved queue.
func (m *Manager) SaveQueue(ctx context.Context, state QueueState) error {
	return saveQueue(ctx, m.db, state)
}

func getQueue(ctx context.Context, db *sql.DB) (*QueueState, error) {
	var currentIndex, repeatMode int
	var shuffle bool
	row := db.QueryRowContext(ctx, `SELECT current_index, repeat_mode, shuffle FROM queue_state WHERE id = 1`)
	err := row.Scan(&currentIndex, &repeatMode, &shuffle)
	if errors.Is(err, sql.ErrNoRows) {
		return &QueueState{CurrentIndex: -1}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT song_id, location, name, artist, album, image, duration_ms, premium
		FROM queue_tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []playlist.Track
	for rows.Next() {
		var t playlist.Track
		var artist, album, image sql.NullString
		var durationMS int64

		err := rows.Scan(&t.ID, &t.Location, &t.Name, &artist, &album, &image, &durationMS, &t.Premium)
		if err != nil {
			return nil, err
		}

		t.Artist = dbutil.NullStringValue(artist)
		t.Album = dbutil.NullStringValue(album)
		t.Image = dbutil.NullStringValue(image)
		t.Duration = time.Duration(durationMS) * time.Millisecond
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &QueueState{
		CurrentIndex: currentIndex,
		RepeatMode:   repeatMode,
		Shuffle:      shuffle,
		Tracks:       tracks,
	}, nil
}

func saveQueue(ctx context.Context, sqlDB *sql.DB, state QueueState) error {
	return dbutil.WithTx(ctx, sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM queue_tracks`); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO queue_state (id, current_index, repeat_mode, shuffle)
			VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				repeat_mode = excluded.repeat_mode,
				shuffle = excluded.shuffle
		`, state.CurrentIndex, state.RepeatMode, state.Shuffle)
		if err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO queue_tracks (position, song_id, location, name, artist, album, image, duration_ms, premium)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range state.Tracks {
			_, err = stmt.ExecContext(ctx, i, t.ID, t.Location, t.Name,
				dbutil.NullString(t.Artist), dbutil.NullString(t.Album), dbutil.NullString(t.Image),
				t.Duration.Milliseconds(), t.Premium)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
