package playback

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/llehouerou/tunedeck/internal/playlist"
)

func TestNewSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sub := newSubscription()

		sub.sendState(StateChange{Previous: StateIdle, Current: StateLoading})
		sub.sendTrack(TrackChange{Index: 1})
		sub.sendPosition(PositionChange{Position: 30 * time.Second})
		sub.sendQueue(QueueChange{Index: 2, Tracks: []playlist.Track{{ID: 9}}})
		sub.sendMode(ModeChange{RepeatMode: RepeatAll, Shuffle: true})
		sub.sendSleep(SleepTimerChange{Expired: true})
		sub.sendError(ErrorEvent{Operation: "next", Err: ErrNoEligibleTrack})

		if e := <-sub.StateChanged; e.Current != StateLoading {
			t.Errorf("StateChanged.Current = %v, want Loading", e.Current)
		}
		if tr := <-sub.TrackChanged; tr.Index != 1 {
			t.Errorf("TrackChanged.Index = %d, want 1", tr.Index)
		}
		if pos := <-sub.PositionChanged; pos.Position != 30*time.Second {
			t.Errorf("PositionChanged.Position = %v, want 30s", pos.Position)
		}
		q := <-sub.QueueChanged
		if q.Index != 2 || len(q.Tracks) != 1 || q.Tracks[0].ID != 9 {
			t.Errorf("QueueChanged = %+v", q)
		}
		if m := <-sub.ModeChanged; m.RepeatMode != RepeatAll || !m.Shuffle {
			t.Errorf("ModeChanged = %+v", m)
		}
		if s := <-sub.SleepTimerChanged; !s.Expired {
			t.Error("SleepTimerChanged.Expired = false, want true")
		}
		if e := <-sub.Error; e.Operation != "next" {
			t.Errorf("Error.Operation = %q, want next", e.Operation)
		}
	})
}

func TestSubscription_Close_SignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		sub.close()
		<-sub.Done
	})
}

func TestSubscription_NonBlocking_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	for range eventBufferSize + 5 {
		sub.sendState(StateChange{Current: StatePlaying})
	}

	if len(sub.StateChanged) != eventBufferSize {
		t.Errorf("buffered = %d, want %d", len(sub.StateChanged), eventBufferSize)
	}
}
