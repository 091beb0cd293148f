package state

import (
	"context"
	"database/sql"
	"errors"
)

// Volume returns the saved volume level, or def if none was saved.
func (m *Manager) Volume(ctx context.Context, def float64) (float64, error) {
	var volume float64

	err := m.db.QueryRowContext(ctx, `SELECT volume FROM settings WHERE id = 1`).Scan(&volume)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return volume, nil
}

// SaveVolume persists the volume level. Rapid changes are coalesced and
// only the last one is written.
func (m *Manager) SaveVolume(level float64) {
	m.saveLater("volume", func(db *sql.DB) error {
		return saveVolume(db, level)
	})
}

func saveVolume(db *sql.DB, level float64) error {
	_, err := db.Exec(`
		INSERT INTO settings (id, volume) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET volume = excluded.volume
	`, level)
	return err
}
