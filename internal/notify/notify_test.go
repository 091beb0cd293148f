package notify

import (
	"testing"
	"time"
)

func TestNotification_ExpireTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    int32
	}{
		{"zero uses default", 0, 5000},
		{"negative is server default", -1, -1},
		{"explicit", 1500 * time.Millisecond, 1500},
		{"capped", 1000 * time.Hour, 1<<31 - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Notification{Timeout: tt.timeout}
			if got := n.expireTimeout(); got != tt.want {
				t.Errorf("expireTimeout() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNopNotifier(t *testing.T) {
	var n Notifier = nopNotifier{}
	id, err := n.Notify(Notification{Title: "x"})
	if id != 0 || err != nil {
		t.Errorf("Notify() = %d, %v; want 0, nil", id, err)
	}
	if err := n.Close(1); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
