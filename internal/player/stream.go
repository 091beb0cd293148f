package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"
)

const (
	formatMP3  = "MP3"
	formatFLAC = "FLAC"
	formatWAV  = "WAV"
)

// ErrUnsupportedFormat is returned when the media bytes are not a known format.
var ErrUnsupportedFormat = errors.New("unsupported media format")

// stream is the Source implementation of Player.
type stream struct {
	location string
	streamer beep.StreamSeekCloser
	format   beep.Format
	duration time.Duration
	info     *TrackInfo
	once     sync.Once
}

func (s *stream) Location() string        { return s.location }
func (s *stream) Duration() time.Duration { return s.duration }
func (s *stream) Info() *TrackInfo        { return s.info }

func (s *stream) Close() error {
	var err error
	s.once.Do(func() { err = s.streamer.Close() })
	return err
}

// memFile serves fetched media from memory. The decoders need a seeker to
// support SetPosition.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// Open fetches and decodes the media at location without touching the
// active source. location is an http(s) URL or a local file path.
func (p *Player) Open(ctx context.Context, location string) (Source, error) {
	data, err := p.fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	streamer, format, name, err := decode(data, location)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", location, err)
	}

	duration := format.SampleRate.D(streamer.Len())
	info := readTrackInfo(data, location)
	info.Duration = duration
	info.Format = name
	info.SampleRate = int(format.SampleRate)
	info.BitDepth = format.Precision * 8

	p.logger.Debug("media opened",
		zap.String("location", location),
		zap.String("format", name),
		zap.Int("bytes", len(data)))

	return &stream{
		location: location,
		streamer: streamer,
		format:   format,
		duration: duration,
		info:     info,
	}, nil
}

func (p *Player) fetch(ctx context.Context, location string) ([]byte, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read media: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch media: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read media: %w", err)
	}
	return data, nil
}

// decode picks a decoder from the leading bytes, falling back to the
// location's extension.
func decode(data []byte, location string) (beep.StreamSeekCloser, beep.Format, string, error) {
	f := memFile{bytes.NewReader(data)}

	name := sniffFormat(data)
	if name == "" {
		name = formatFromExt(location)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch name {
	case formatMP3:
		streamer, format, err = decodeGoMP3(f)
	case formatFLAC:
		// Some taggers prepend an ID3v2 tag to FLAC files
		if err := skipID3v2(f); err != nil {
			return nil, beep.Format{}, "", err
		}
		streamer, format, err = flac.Decode(f)
	case formatWAV:
		streamer, format, err = wav.Decode(f)
	default:
		return nil, beep.Format{}, "", ErrUnsupportedFormat
	}
	if err != nil {
		return nil, beep.Format{}, "", err
	}
	return streamer, format, name, nil
}

func sniffFormat(data []byte) string {
	body := data[min(id3v2Size(data), len(data)):]
	switch {
	case bytes.HasPrefix(body, []byte("fLaC")):
		return formatFLAC
	case len(body) >= 12 && string(body[0:4]) == "RIFF" && string(body[8:12]) == "WAVE":
		return formatWAV
	case len(body) >= 2 && body[0] == 0xFF && body[1]&0xE0 == 0xE0:
		return formatMP3
	case len(body) < len(data):
		// ID3v2 followed by something unrecognised, most likely MP3 with padding
		return formatMP3
	default:
		return ""
	}
}

func formatFromExt(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".mp3":
		return formatMP3
	case ".flac":
		return formatFLAC
	case ".wav":
		return formatWAV
	default:
		return ""
	}
}

// id3v2Size returns the length of a leading ID3v2 tag including its
// 10-byte header, or 0. Only the header needs to be present.
func id3v2Size(header []byte) int {
	if len(header) < 10 || string(header[0:3]) != "ID3" {
		return 0
	}
	// Syncsafe integer: 7 bits per byte
	size := int(header[6])<<21 | int(header[7])<<14 | int(header[8])<<7 | int(header[9])
	return 10 + size
}

// skipID3v2 positions r after a leading ID3v2 tag, or at the start if
// there is none.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	_, err = r.Seek(int64(id3v2Size(header[:n])), io.SeekStart)
	return err
}
