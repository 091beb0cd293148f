package playback

import (
	"math/rand/v2"
	"testing"

	"github.com/llehouerou/tunedeck/internal/playlist"
)

func TestService_CycleRepeatMode(t *testing.T) {
	svc, _ := newTestService(t)
	sub := svc.Subscribe()

	want := []RepeatMode{RepeatAll, RepeatOne, RepeatOff}
	for _, w := range want {
		if got := svc.CycleRepeatMode(); got != w {
			t.Errorf("CycleRepeatMode() = %v, want %v", got, w)
		}
	}
	if len(sub.ModeChanged) != 3 {
		t.Errorf("ModeChanged events = %d, want 3", len(sub.ModeChanged))
	}
}

func TestService_SetRepeatMode_SameModeNoEvent(t *testing.T) {
	svc, _ := newTestService(t)
	sub := svc.Subscribe()

	svc.SetRepeatMode(RepeatOff)

	if len(sub.ModeChanged) != 0 {
		t.Error("setting the same mode should not emit")
	}
}

func TestService_Shuffle_RestoresOrder(t *testing.T) {
	q := playlist.NewQueueWithRand(rand.New(rand.NewPCG(7, 8)))
	svc, _ := newTestService(t, WithQueue(q))
	var tracks []playlist.Track
	for id := int64(1); id <= 6; id++ {
		tracks = append(tracks, song(id, false))
	}
	svc.SetQueue(tracks)

	if !svc.ToggleShuffle() || !svc.Shuffle() {
		t.Fatal("ToggleShuffle() should enable shuffle")
	}
	if len(svc.Queue()) != 6 {
		t.Fatalf("len(Queue()) = %d, want 6", len(svc.Queue()))
	}

	svc.SetShuffle(false)
	for i, tr := range svc.Queue() {
		if tr.ID != int64(i+1) {
			t.Fatalf("Queue()[%d] = %d, want %d", i, tr.ID, i+1)
		}
	}
}

func TestService_Shuffle_KeepsCurrentTrack(t *testing.T) {
	svc, _ := newTestService(t)
	svc.SetQueue([]playlist.Track{song(1, false), song(2, false), song(3, false)})
	mustPlay(t, svc, song(2, false), freeUser)

	svc.SetShuffle(true)

	if currentID(svc) != 2 || svc.State() != StatePlaying {
		t.Errorf("current %d state %v, want 2 Playing", currentID(svc), svc.State())
	}
	if idx := svc.QueueIndex(); svc.Queue()[idx].ID != 2 {
		t.Errorf("QueueIndex() points at %d, want 2", svc.Queue()[idx].ID)
	}
}
