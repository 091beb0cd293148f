package player

import (
	"bytes"
	"path"
	"strings"

	"github.com/dhowden/tag"
)

// readTrackInfo reads embedded tags from media bytes. Missing tags leave the
// fields empty; the title falls back to the location's base name.
func readTrackInfo(data []byte, location string) *TrackInfo {
	info := &TrackInfo{
		Location: location,
		Title:    baseName(location),
	}

	m, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return info
	}

	if title := m.Title(); title != "" {
		info.Title = title
	}
	info.Artist = m.Artist()
	if info.Artist == "" {
		info.Artist = m.AlbumArtist()
	}
	info.Album = m.Album()
	info.Year = m.Year()
	info.Track, _ = m.Track()
	info.Genre = m.Genre()
	return info
}

func baseName(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	return path.Base(location)
}
