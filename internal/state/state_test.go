package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunedeck/internal/playlist"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := OpenPath(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestSession_Empty(t *testing.T) {
	m := newTestManager(t)

	s, err := m.Session(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSession_RoundTrip(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	in := NewSession(9, "ann", "a@b.c", true, at)
	require.NotEmpty(t, in.Marker)
	require.NoError(t, m.SaveSession(ctx, in))

	got, err := m.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(9), got.UserID)
	assert.Equal(t, "ann", got.Username)
	assert.Equal(t, "a@b.c", got.Email)
	assert.True(t, got.Premium)
	assert.Equal(t, in.Marker, got.Marker)
	assert.True(t, got.LoggedInAt.Equal(at))
}

func TestSession_ReplaceAndClear(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	first := NewSession(1, "ann", "a@b.c", false, time.Now())
	second := NewSession(2, "bob", "b@b.c", false, time.Now())
	require.NotEqual(t, first.Marker, second.Marker)

	require.NoError(t, m.SaveSession(ctx, first))
	require.NoError(t, m.SaveSession(ctx, second))

	got, err := m.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.UserID)
	assert.Equal(t, second.Marker, got.Marker)

	require.NoError(t, m.ClearSession(ctx))
	got, err = m.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveSession_FillsMissingMarker(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.SaveSession(ctx, Session{UserID: 3, Username: "c", Email: "c@c"}))

	got, err := m.Session(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, got.Marker)
}

func TestVolume_DefaultAndFlush(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	v, err := m.Volume(ctx, 0.75)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, v, 1e-9)

	m.SaveVolume(0.2)
	m.SaveVolume(0.4)
	require.NoError(t, m.Flush(ctx))

	v, err = m.Volume(ctx, 0.75)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, v, 1e-9)
}

func TestClose_FlushesPendingWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	m, err := OpenPath(path)
	require.NoError(t, err)
	m.SaveVolume(0.3)
	m.SaveNavigation(NavigationState{View: "queue", SelectedSongID: 4})
	require.NoError(t, m.Close())

	m, err = OpenPath(path)
	require.NoError(t, err)
	defer m.Close()

	v, err := m.Volume(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, v, 1e-9)

	nav, err := m.GetNavigation(ctx)
	require.NoError(t, err)
	require.NotNil(t, nav)
	assert.Equal(t, "queue", nav.View)
	assert.Equal(t, int64(4), nav.SelectedSongID)
}

func TestNavigation_RoundTrip(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	nav, err := m.GetNavigation(ctx)
	require.NoError(t, err)
	assert.Nil(t, nav)

	require.NoError(t, saveNavigation(ctx, m.db, NavigationState{View: "songs", Search: "rock", PlaylistID: 2}))
	require.NoError(t, saveNavigation(ctx, m.db, NavigationState{View: "history"}))

	nav, err = m.GetNavigation(ctx)
	require.NoError(t, err)
	assert.Equal(t, &NavigationState{View: "history"}, nav)
}

func TestGetQueue_Empty(t *testing.T) {
	m := newTestManager(t)

	q, err := m.GetQueue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, -1, q.CurrentIndex)
	assert.Empty(t, q.Tracks)
}

func TestQueue_RoundTrip(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	in := QueueState{
		CurrentIndex: 1,
		RepeatMode:   2,
		Shuffle:      true,
		Tracks: []playlist.Track{
			{ID: 3, Name: "C", Artist: "X", Album: "Y", Duration: 185 * time.Second,
				Location: "http://h/audio/c.mp3", Image: "http://h/Uploads/albums/y.jpg"},
			{ID: 1, Name: "A", Location: "http://h/audio/a.mp3", Premium: true},
		},
	}
	require.NoError(t, m.SaveQueue(ctx, in))

	got, err := m.GetQueue(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, *got)
}

func TestSaveQueue_ReplacesTracks(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.SaveQueue(ctx, QueueState{Tracks: []playlist.Track{
		{ID: 1, Name: "A", Location: "a"},
		{ID: 2, Name: "B", Location: "b"},
	}}))
	require.NoError(t, m.SaveQueue(ctx, QueueState{CurrentIndex: 0, Tracks: []playlist.Track{
		{ID: 9, Name: "Z", Location: "z"},
	}}))

	got, err := m.GetQueue(ctx)
	require.NoError(t, err)
	require.Len(t, got.Tracks, 1)
	assert.Equal(t, int64(9), got.Tracks[0].ID)
}

func TestMock_ImplementsSessionFlow(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	s, err := m.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)

	require.NoError(t, m.SaveSession(ctx, NewSession(1, "a", "a@a", false, time.Now())))
	s, err = m.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.UserID)

	v, _ := m.Volume(ctx, 0.5)
	assert.InDelta(t, 0.5, v, 1e-9)
	m.SaveVolume(0.1)
	v, _ = m.Volume(ctx, 0.5)
	assert.InDelta(t, 0.1, v, 1e-9)

	require.NoError(t, m.Close())
	assert.True(t, m.IsClosed())
}
