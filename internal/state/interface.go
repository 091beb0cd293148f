package state

import (
	"context"
	"database/sql"
)

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	DB() *sql.DB
	Session(ctx context.Context) (*Session, error)
	SaveSession(ctx context.Context, s Session) error
	ClearSession(ctx context.Context) error
	Volume(ctx context.Context, def float64) (float64, error)
	SaveVolume(level float64)
	GetNavigation(ctx context.Context) (*NavigationState, error)
	SaveNavigation(state NavigationState)
	SaveQueue(ctx context.Context, state QueueState) error
	GetQueue(ctx context.Context) (*QueueState, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
