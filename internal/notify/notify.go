// Package notify shows desktop notifications for playback over the
// freedesktop D-Bus interface.
package notify

import "time"

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

const (
	appName      = "Tunedeck"
	desktopEntry = "tunedeck"

	// DefaultTimeout applies when a Notification leaves Timeout at zero.
	DefaultTimeout = 5 * time.Second
)

// Notification is one desktop bubble.
type Notification struct {
	Title      string
	Body       string
	Icon       string        // file path or icon name
	Timeout    time.Duration // 0 = DefaultTimeout, <0 = server default
	ReplacesID uint32        // 0 = new bubble
	Urgency    Urgency
}

// expireTimeout converts Timeout to the milliseconds D-Bus expects.
func (n Notification) expireTimeout() int32 {
	switch {
	case n.Timeout < 0:
		return -1
	case n.Timeout == 0:
		return int32(DefaultTimeout / time.Millisecond)
	default:
		return int32(min(n.Timeout/time.Millisecond, 1<<31-1))
	}
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns its server id, 0 when notifications are
	// unavailable.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// nopNotifier drops everything. It stands in when there is no session bus.
type nopNotifier struct{}

func (nopNotifier) Notify(Notification) (uint32, error) { return 0, nil }
func (nopNotifier) Close(uint32) error                  { return nil }
