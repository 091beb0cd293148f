package mpris

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// coverExts lists the image extensions kept when caching a cover.
var coverExts = []string{".jpg", ".jpeg", ".png", ".webp"}

// CoverCache downloads album covers to a local directory, for consumers
// that only accept file paths.
type CoverCache struct {
	dir    string
	client *http.Client
}

// NewCoverCache caches covers under dir. A nil client uses
// http.DefaultClient.
func NewCoverCache(dir string, client *http.Client) *CoverCache {
	if client == nil {
		client = http.DefaultClient
	}
	return &CoverCache{dir: dir, client: client}
}

// DefaultCoverDir returns the XDG cache directory for covers.
func DefaultCoverDir() string {
	return filepath.Join(xdg.CacheHome, "tunedeck", "covers")
}

// Path returns a local file holding the cover at imageURL, downloading it
// on first use. Local paths and file:// URLs are returned as paths without
// copying. An empty imageURL gives "".
func (c *CoverCache) Path(ctx context.Context, imageURL string) (string, error) {
	if imageURL == "" {
		return "", nil
	}
	if p, ok := strings.CutPrefix(imageURL, "file://"); ok {
		return p, nil
	}
	if !strings.HasPrefix(imageURL, "http://") && !strings.HasPrefix(imageURL, "https://") {
		return imageURL, nil
	}

	target := filepath.Join(c.dir, coverFileName(imageURL))
	if _, err := os.Stat(target); err == nil {
		return target, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("create cover dir: %w", err)
	}
	tmp, err := os.CreateTemp(c.dir, "cover-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write cover: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write cover: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("store cover: %w", err)
	}
	return target, nil
}

// coverFileName derives a stable file name from the URL, keeping a known
// image extension.
func coverFileName(imageURL string) string {
	h := fnv.New64a()
	h.Write([]byte(imageURL))

	ext := ".jpg"
	if u, err := url.Parse(imageURL); err == nil {
		e := strings.ToLower(path.Ext(u.Path))
		for _, known := range coverExts {
			if e == known {
				ext = e
				break
			}
		}
	}
	return fmt.Sprintf("%x%s", h.Sum64(), ext)
}
