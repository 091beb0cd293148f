package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Register(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user/add/", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana", body["username"])
		assert.Equal(t, "s3cret", body["password_hash"])
		writeJSON(w, http.StatusCreated, map[string]any{"id": 9, "username": "ana", "email": body["email"], "isPremium": 0})
	})

	u, err := c.Register(context.Background(), "ana", "ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, int64(9), u.ID)
	assert.False(t, bool(u.Premium))
}

func TestClient_UpgradeToPremium_NewUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/users/9/", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["isPremium"])
		assert.Equal(t, "ana", body["username"])
		writeJSON(w, http.StatusOK, map[string]any{"id": 9, "username": "ana", "isPremium": true})
	})

	u, err := c.UpgradeToPremium(context.Background(), &User{ID: 9, Username: "ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.True(t, bool(u.Premium))
}

func TestClient_AdminListings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/":
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 1, "username": "a", "isPremium": "1", "status": 1}})
		case "/api/artists/":
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 3, "name": "Band", "status": 0}})
		case "/api/artists/change/3/":
			assert.Equal(t, http.MethodPut, r.Method)
			writeJSON(w, http.StatusOK, map[string]any{"message": "ok", "trangThai": 1})
		case "/api/delete-user/1/":
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	users, err := c.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, bool(users[0].Premium))

	artists, err := c.Artists(ctx)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.False(t, bool(artists[0].Status))

	visible, err := c.ToggleArtistStatus(ctx, 3)
	require.NoError(t, err)
	assert.True(t, visible)

	require.NoError(t, c.DeleteUser(ctx, 1))
}
