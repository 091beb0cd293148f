package playlist

import (
	"math/rand/v2"
	"testing"
)

func tracks(ids ...int64) []Track {
	result := make([]Track, len(ids))
	for i, id := range ids {
		result[i] = Track{ID: id, Name: "song", Location: "/audio/song.mp3"}
	}
	return result
}

func ids(ts []Track) []int64 {
	result := make([]int64, len(ts))
	for i, t := range ts {
		result[i] = t.ID
	}
	return result
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewPlaylist(t *testing.T) {
	p := NewPlaylist()

	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	if p.Track(0) != nil {
		t.Error("Track(0) should be nil for empty playlist")
	}
}

func TestPlaylist_Add(t *testing.T) {
	p := NewPlaylist()
	p.Add(tracks(1, 2)...)
	p.Add(tracks(3)...)

	if got := ids(p.Tracks()); !equalIDs(got, []int64{1, 2, 3}) {
		t.Errorf("Tracks() = %v, want [1 2 3]", got)
	}
}

func TestPlaylist_Replace_CopiesInput(t *testing.T) {
	p := NewPlaylist()
	in := tracks(1, 2)
	p.Replace(in)

	in[0].ID = 99

	if p.Track(0).ID != 1 {
		t.Errorf("Track(0).ID = %d, want 1 (input mutation leaked)", p.Track(0).ID)
	}
}

func TestPlaylist_Tracks_ReturnsCopy(t *testing.T) {
	p := NewPlaylist()
	p.Add(tracks(1)...)

	out := p.Tracks()
	out[0].ID = 42

	if p.Track(0).ID != 1 {
		t.Error("modifying Tracks() result should not affect playlist")
	}
}

func TestPlaylist_IndexOf(t *testing.T) {
	p := NewPlaylist()
	p.Add(tracks(10, 20, 30, 20)...)

	tests := []struct {
		id   int64
		want int
	}{
		{10, 0},
		{20, 1},
		{30, 2},
		{40, -1},
	}
	for _, tt := range tests {
		if got := p.IndexOf(tt.id); got != tt.want {
			t.Errorf("IndexOf(%d) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestPlaylist_Shuffle_KeepsTracks(t *testing.T) {
	p := NewPlaylist()
	p.Add(tracks(1, 2, 3, 4, 5)...)

	p.Shuffle(rand.New(rand.NewPCG(1, 2)))

	if p.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", p.Len())
	}
	seen := map[int64]bool{}
	for _, tr := range p.Tracks() {
		seen[tr.ID] = true
	}
	for id := int64(1); id <= 5; id++ {
		if !seen[id] {
			t.Errorf("track %d lost by shuffle", id)
		}
	}
}

func TestTrack_PlayableBy(t *testing.T) {
	tests := []struct {
		name    string
		premium bool
		account bool
		want    bool
	}{
		{"free track, free account", false, false, true},
		{"free track, premium account", false, true, true},
		{"premium track, free account", true, false, false},
		{"premium track, premium account", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Track{Premium: tt.premium}
			if got := tr.PlayableBy(tt.account); got != tt.want {
				t.Errorf("PlayableBy(%v) = %v, want %v", tt.account, got, tt.want)
			}
		})
	}
}
