package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{"adds trailing slash", "http://localhost:8000", "http://localhost:8000/", false},
		{"keeps prefix", "https://music.example.com/backend/", "https://music.example.com/backend/", false},
		{"rejects missing scheme", "localhost:8000", "", true},
		{"rejects ftp", "ftp://host", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.baseURL)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.BaseURL())
		})
	}
}

func TestClient_MediaURLs(t *testing.T) {
	c, err := New("http://localhost:8000")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/audio/song.mp3", c.StreamURL("song.mp3"))
	assert.Equal(t, "http://localhost:8000/audio/song.mp3", c.StreamURL("/audio/song.mp3"))
	assert.Equal(t, "http://localhost:8000/audio/my%20song.mp3", c.StreamURL("my song.mp3"))
	assert.Equal(t, "https://cdn.example.com/a.mp3", c.StreamURL("https://cdn.example.com/a.mp3"))
	assert.Equal(t, "http://localhost:8000/Uploads/albums/cover.jpg", c.ImageURL("cover.jpg"))
	assert.Empty(t, c.StreamURL(""))
}

func TestClient_Songs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/songs/", r.URL.Path)
		assert.Equal(t, "rock", r.URL.Query().Get("search"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Intro", "artist": 3, "artist_name": "Band", "album": null,
			 "duration": 185, "song_url": "intro.mp3", "premium": 0, "status": 1},
			{"id": 2, "name": "Gold", "artist": 3, "artist_name": "Band", "album": 7,
			 "album_img": "gold.jpg", "duration": 200, "song_url": "gold.mp3", "premium": "1", "status": 1}
		]`))
	})

	songs, err := c.Songs(context.Background(), "  rock ")
	require.NoError(t, err)
	require.Len(t, songs, 2)

	assert.Equal(t, "Intro", songs[0].Name)
	assert.Equal(t, Ref(0), songs[0].AlbumID)
	assert.False(t, bool(songs[0].Premium))
	assert.Equal(t, Ref(7), songs[1].AlbumID)
	assert.True(t, bool(songs[1].Premium))
}

func TestClient_Songs_NoSearchOmitsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`[]`))
	})

	songs, err := c.Songs(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestSong_Track(t *testing.T) {
	c, err := New("http://localhost:8000")
	require.NoError(t, err)

	s := Song{
		ID:         4,
		Name:       "Gold",
		ArtistName: "Band",
		AlbumName:  "Shiny",
		AlbumImage: "shiny.jpg",
		Duration:   200,
		File:       "gold.mp3",
		Premium:    true,
	}
	tr := s.Track(c)

	assert.Equal(t, int64(4), tr.ID)
	assert.Equal(t, "Gold", tr.Name)
	assert.Equal(t, "Band", tr.Artist)
	assert.Equal(t, 200*time.Second, tr.Duration)
	assert.Equal(t, "http://localhost:8000/audio/gold.mp3", tr.Location)
	assert.Equal(t, "http://localhost:8000/Uploads/albums/shiny.jpg", tr.Image)
	assert.True(t, tr.Premium)

	all := Tracks(c, []Song{s, {ID: 5, File: "b.mp3"}})
	require.Len(t, all, 2)
	assert.Equal(t, int64(5), all[1].ID)
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/login/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.c", body["email"])
		assert.Equal(t, "secret", body["password"])

		writeJSON(w, http.StatusOK, map[string]any{
			"user": map[string]any{
				"id": 9, "username": "ann", "email": "a@b.c",
				"created_at": "2024-01-01T00:00:00", "isPremium": true,
			},
		})
	})

	u, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(9), u.ID)
	assert.Equal(t, "ann", u.Username)
	assert.True(t, bool(u.Premium))
}

func TestClient_Login_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		target  error
		message string
	}{
		{"bad credentials", http.StatusUnauthorized, `{"error": "wrong email or password"}`, ErrUnauthorized, "wrong email or password"},
		{"locked account", http.StatusForbidden, `{"error": "account locked"}`, ErrForbidden, "account locked"},
		{"missing fields", http.StatusBadRequest, `{"error": "email and password required"}`, ErrBadRequest, "email and password required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Login(context.Background(), "a@b.c", "x")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestClient_Login_EmptyUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.Login(context.Background(), "a@b.c", "x")
	assert.Error(t, err)
}

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error key", 404, `{"error": "no such playlist"}`, "no such playlist"},
		{"message key", 404, `{"message": "album missing"}`, "album missing"},
		{"detail key", 405, `{"detail": "Method not allowed."}`, "Method not allowed."},
		{"validation map", 400, `{"username": ["taken"], "email": ["invalid", "taken"]}`, "email: invalid, taken; username: taken"},
		{"plain text", 500, "Server Error", "Server Error"},
		{"empty body", 502, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Albums(context.Background())
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.want, apiErr.Message)
		})
	}
}

func TestError_Is(t *testing.T) {
	err := error(&Error{StatusCode: http.StatusNotFound})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "api: status 404", err.Error())
}

func TestClient_Playlists(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/playlists/", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("user_id"))
		assert.Equal(t, "chill", r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`[{"id": 3, "name": "Chill", "user": {"id": 12, "username": "ann", "isPremium": 1},
			"description": null, "status": 1}]`))
	})

	pls, err := c.Playlists(context.Background(), 12, "chill")
	require.NoError(t, err)
	require.Len(t, pls, 1)
	assert.Equal(t, Ref(12), pls[0].UserID)
	assert.Empty(t, pls[0].Description)
}

func TestClient_PlaylistSongs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/playlist/3/songs/", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id": 1, "playlist": {"id": 3, "name": "Chill"}, "song": {"id": 10, "name": "A", "song_url": "a.mp3"}},
			{"id": 2, "playlist": {"id": 3, "name": "Chill"}, "song": {"id": 11, "name": "B", "song_url": "b.mp3"}}
		]`))
	})

	songs, err := c.PlaylistSongs(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, int64(10), songs[0].ID)
	assert.Equal(t, int64(11), songs[1].ID)
}

func TestClient_PlaylistMutations(t *testing.T) {
	type call struct{ method, path string }
	var (
		mu    sync.Mutex
		calls []call
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, call{r.Method, r.URL.Path})
		mu.Unlock()
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodPost:
			writeJSON(w, http.StatusCreated, map[string]any{"id": 5, "name": "New"})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"id": 5, "name": "Renamed"})
		}
	})
	ctx := context.Background()

	pl, err := c.CreatePlaylist(ctx, PlaylistInput{Name: "New", UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(5), pl.ID)

	pl, err = c.UpdatePlaylist(ctx, 5, PlaylistInput{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", pl.Name)

	require.NoError(t, c.AddSongToPlaylist(ctx, 5, 10))
	require.NoError(t, c.RemoveSongFromPlaylist(ctx, 5, 10))
	require.NoError(t, c.DeletePlaylist(ctx, 5))

	want := []call{
		{http.MethodPost, "/api/playlists/add/"},
		{http.MethodPut, "/api/playlists/update/5/"},
		{http.MethodPost, "/api/playlist_songs/"},
		{http.MethodDelete, "/api/playlist_songs/5/10/"},
		{http.MethodDelete, "/api/playlists/delete/5/"},
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want, calls)
}

func TestClient_AddSongToPlaylist_Duplicate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "song already in playlist"})
	})

	err := c.AddSongToPlaylist(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestClient_ToggleAlbumStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/albums/change/7/", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok", "trangThai": 0})
	})

	visible, err := c.ToggleAlbumStatus(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestClient_ToggleUserStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/4/toggle-status/", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok", "id": 4, "status": 0})
	})

	u, err := c.ToggleUserStatus(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), u.ID)
	assert.False(t, bool(u.Status))
}

func TestClient_UpgradeToPremium(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/users/4/", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["isPremium"])
		assert.Equal(t, "ann", body["username"])
		writeJSON(w, http.StatusOK, map[string]any{"id": 4, "username": "ann", "isPremium": true})
	})

	u, err := c.UpgradeToPremium(context.Background(), &User{ID: 4, Username: "ann", Email: "a@b.c"})
	require.NoError(t, err)
	assert.True(t, bool(u.Premium))
}

func TestClient_ChangePassword(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/change-password/4/", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["current_password"] != "old" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "current password is wrong"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "changed"})
	})
	ctx := context.Background()

	require.NoError(t, c.ChangePassword(ctx, 4, "old", "new"))
	err := c.ChangePassword(ctx, 4, "bad", "new")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestClient_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Songs(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}
