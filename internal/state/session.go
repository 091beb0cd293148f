package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is the signed-in account remembered between runs.
type Session struct {
	UserID     int64
	Username   string
	Email      string
	Premium    bool
	Marker     string
	LoggedInAt time.Time
}

// NewSession returns a session for the given account with a fresh marker.
func NewSession(userID int64, username, email string, premium bool, at time.Time) Session {
	return Session{
		UserID:     userID,
		Username:   username,
		Email:      email,
		Premium:    premium,
		Marker:     uuid.NewString(),
		LoggedInAt: at,
	}
}

// Session returns the stored session, or nil if nobody is signed in.
func (m *Manager) Session(ctx context.Context) (*Session, error) {
	return getSession(ctx, m.db)
}

// SaveSession stores s, replacing any previous session.
func (m *Manager) SaveSession(ctx context.Context, s Session) error {
	return saveSession(ctx, m.db, s)
}

// ClearSession forgets the signed-in account.
func (m *Manager) ClearSession(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`)
	return err
}

func getSession(ctx context.Context, db *sql.DB) (*Session, error) {
	var s Session
	var loggedInAt int64

	err := db.QueryRowContext(ctx, `
		SELECT user_id, username, email, premium, marker, logged_in_at FROM session WHERE id = 1
	`).Scan(&s.UserID, &s.Username, &s.Email, &s.Premium, &s.Marker, &loggedInAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nil session means signed out, not an error
	}
	if err != nil {
		return nil, err
	}

	s.LoggedInAt = time.Unix(loggedInAt, 0)
	return &s, nil
}

func saveSession(ctx context.Context, db *sql.DB, s Session) error {
	if s.Marker == "" {
		s.Marker = uuid.NewString()
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO session (id, user_id, username, email, premium, marker, logged_in_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			username = excluded.username,
			email = excluded.email,
			premium = excluded.premium,
			marker = excluded.marker,
			logged_in_at = excluded.logged_in_at
	`, s.UserID, s.Username, s.Email, s.Premium, s.Marker, s.LoggedInAt.Unix())
	return err
}
