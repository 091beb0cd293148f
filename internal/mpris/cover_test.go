package mpris

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestCoverFileName(t *testing.T) {
	tests := []struct {
		url     string
		wantExt string
	}{
		{"http://h/Uploads/albums/a.png", ".png"},
		{"http://h/Uploads/albums/a.JPEG", ".jpeg"},
		{"http://h/Uploads/albums/a", ".jpg"},
		{"http://h/Uploads/albums/a.exe", ".jpg"},
	}
	for _, tt := range tests {
		got := coverFileName(tt.url)
		if filepath.Ext(got) != tt.wantExt {
			t.Errorf("coverFileName(%q) = %q, want extension %q", tt.url, got, tt.wantExt)
		}
	}

	if coverFileName("http://h/a.jpg") == coverFileName("http://h/b.jpg") {
		t.Error("different URLs should give different names")
	}
}

func TestCoverCache_DownloadsOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte{0xFF, 0xD8, 0xFF})
	}))
	defer srv.Close()

	cache := NewCoverCache(t.TempDir(), srv.Client())
	url := srv.URL + "/Uploads/albums/cover.jpg"

	first, err := cache.Path(context.Background(), url)
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	second, err := cache.Path(context.Background(), url)
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}

	if first != second {
		t.Errorf("Path() = %q then %q, want same file", first, second)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}
	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read cover: %v", err)
	}
	if len(data) != 3 {
		t.Errorf("cover size = %d, want 3", len(data))
	}
}

func TestCoverCache_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	cache := NewCoverCache(t.TempDir(), srv.Client())
	if _, err := cache.Path(context.Background(), srv.URL+"/missing.jpg"); err == nil {
		t.Error("Path() should fail on 404")
	}
}

func TestCoverCache_LocalPaths(t *testing.T) {
	cache := NewCoverCache(t.TempDir(), nil)

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/music/cover.jpg", "/music/cover.jpg"},
		{"file:///music/cover.jpg", "/music/cover.jpg"},
	}
	for _, tt := range tests {
		got, err := cache.Path(context.Background(), tt.in)
		if err != nil {
			t.Fatalf("Path(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Path(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
