// Package state persists the client's local state in SQLite: the signed-in
// session, the volume, the last queue and the last view.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "tunedeck"
	dbFileName   = "tunedeck.db"
	saveDebounce = 500 * time.Millisecond
)

// Manager stores state in a SQLite database. Volume and navigation
// writes are debounced and flushed by Close.
type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string]func(*sql.DB) error
}

// Open opens the database at the XDG data path, creating it if needed.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve state path: %w", err)
	}
	return OpenPath(dbPath)
}

// OpenPath opens the database at path. ":memory:" gives a private
// in-memory database.
func OpenPath(path string) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	// ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Manager{db: db, pending: make(map[string]func(*sql.DB) error)}, nil
}

// Close flushes pending writes and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.takePendingLocked()
	m.saveMu.Unlock()

	for _, save := range pending {
		_ = save(m.db)
	}

	return m.db.Close()
}

// DB returns the underlying database.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// Flush writes pending debounced state now.
func (m *Manager) Flush(ctx context.Context) error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.takePendingLocked()
	m.saveMu.Unlock()

	for _, save := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := save(m.db); err != nil {
			return err
		}
	}
	return nil
}

// saveLater schedules save under key, replacing any pending save with the
// same key, and restarts the debounce timer.
func (m *Manager) saveLater(key string, save func(*sql.DB) error) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending[key] = save

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.takePendingLocked()
		m.saveMu.Unlock()

		for _, save := range pending {
			_ = save(m.db)
		}
	})
}

func (m *Manager) takePendingLocked() []func(*sql.DB) error {
	saves := make([]func(*sql.DB) error, 0, len(m.pending))
	for key, save := range m.pending {
		saves = append(saves, save)
		delete(m.pending, key)
	}
	return saves
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
