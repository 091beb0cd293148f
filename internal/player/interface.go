package player

import (
	"context"
	"time"
)

// Interface is the media element the playback service drives.
//
// Loading is split in two so callers can fetch and decode without holding
// their own locks: Open prepares a Source, Start swaps it in as the active
// stream. Only one Source plays at a time.
type Interface interface {
	Open(ctx context.Context, location string) (Source, error)
	Start(src Source) error
	Pause()
	Resume() error
	Stop()
	State() State
	Position() time.Duration
	Duration() time.Duration
	SetPosition(pos time.Duration) error
	SetVolume(level float64)
	Volume() float64
	// Events delivers media notifications. The channel is never closed.
	Events() <-chan Event
	Close() error
}

// Source is a decoded media resource ready to be started.
type Source interface {
	Location() string
	Duration() time.Duration
	Info() *TrackInfo
	Close() error
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
