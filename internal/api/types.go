package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/tunedeck/internal/playlist"
)

// Flag is a boolean the backend encodes as 0/1, true/false or "0"/"1".
// null and absent values decode as false.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	s := strings.ToLower(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	switch s {
	case "1", "true":
		*f = true
		return nil
	case "0", "false", "", "null":
		*f = false
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid flag %s", data)
	}
	*f = n != 0
	return nil
}

// MarshalJSON encodes the flag as 0 or 1.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// Ref is a foreign key that the backend sends either as a bare ID or as
// the nested object.
type Ref int64

// UnmarshalJSON implements json.Unmarshaler.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*r = Ref(obj.ID)
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("invalid reference %s", data)
	}
	*r = Ref(id)
	return nil
}

// Song is a track in the catalogue.
type Song struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ArtistID   Ref     `json:"artist"`
	ArtistName string  `json:"artist_name"`
	AlbumID    Ref     `json:"album"`
	AlbumName  string  `json:"album_name"`
	AlbumImage string  `json:"album_img"`
	Duration   float64 `json:"duration"` // seconds
	File       string  `json:"song_url"`
	Lyrics     string  `json:"lyrics"`
	Premium    Flag    `json:"premium"`
	Status     Flag    `json:"status"`
}

// Track converts the song into a playable track, resolving its media and
// cover URLs against c.
func (s Song) Track(c *Client) playlist.Track {
	return playlist.Track{
		ID:       s.ID,
		Name:     s.Name,
		Artist:   s.ArtistName,
		Album:    s.AlbumName,
		Duration: time.Duration(s.Duration * float64(time.Second)),
		Location: c.StreamURL(s.File),
		Image:    c.ImageURL(s.AlbumImage),
		Premium:  bool(s.Premium),
	}
}

// Tracks converts songs in order.
func Tracks(c *Client, songs []Song) []playlist.Track {
	result := make([]playlist.Track, len(songs))
	for i, s := range songs {
		result[i] = s.Track(c)
	}
	return result
}

// Album groups songs by one artist.
type Album struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CreatedAt  string `json:"created_at"`
	ArtistID   Ref    `json:"artist"`
	ArtistName string `json:"artist_name"`
	CoverImage string `json:"cover_image"`
	Status     Flag   `json:"status"`
}

// Artist is a performer.
type Artist struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status Flag   `json:"status"`
}

// User is an account. Premium gates premium-only songs.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
	Premium   Flag   `json:"isPremium"`
	Status    Flag   `json:"status"`
}

// Playlist is a user's named list of songs.
type Playlist struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	UserID      Ref    `json:"user"`
	CreatedAt   string `json:"created_at"`
	CoverImage  string `json:"cover_image"`
	Description string `json:"description"`
	Status      Flag   `json:"status"`
}

// PlaylistSong links a song to a playlist.
type PlaylistSong struct {
	ID       int64    `json:"id"`
	Playlist Playlist `json:"playlist"`
	Song     Song     `json:"song"`
}

// StatusChange is the reply to a status toggle.
type StatusChange struct {
	Message string `json:"message"`
	Status  Flag   `json:"trangThai"`
}
