//go:build linux

package notify

import (
	"os"
	"testing"
	"time"
)

func sessionNotifier(t *testing.T) Notifier {
	t.Helper()
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}
	n, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := n.(*dbusNotifier); !ok {
		t.Skip("session bus not reachable")
	}
	return n
}

func TestNew_WithoutSessionBus(t *testing.T) {
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "unix:path=/nonexistent/bus")
	n, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if n == nil {
		t.Fatal("New() returned nil")
	}
}

func TestDBusNotifier_ReplaceAndClose(t *testing.T) {
	n := sessionNotifier(t)

	id, err := n.Notify(Notification{Title: "Gold", Body: "Band", Timeout: time.Second})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if id == 0 {
		t.Fatal("Notify() returned id 0")
	}

	again, err := n.Notify(Notification{Title: "Intro", Body: "Band", Timeout: time.Second, ReplacesID: id})
	if err != nil {
		t.Fatalf("replacing Notify() error = %v", err)
	}
	if again != id {
		t.Errorf("replacement id = %d, want %d", again, id)
	}
	if err := n.Close(again); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
