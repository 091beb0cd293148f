// Package app is the terminal UI: catalogue browsing, search, queue and
// history views around the playback service.
package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/api"
	"github.com/llehouerou/tunedeck/internal/keymap"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/playlist"
	"github.com/llehouerou/tunedeck/internal/state"
	"github.com/llehouerou/tunedeck/internal/ui/helpbindings"
	"github.com/llehouerou/tunedeck/internal/ui/list"
	"github.com/llehouerou/tunedeck/internal/ui/lyrics"
	"github.com/llehouerou/tunedeck/internal/ui/textinput"
	"github.com/llehouerou/tunedeck/internal/ui/tracklist"
)

// ViewMode is the content shown in the main panel.
type ViewMode string

const (
	ViewSongs     ViewMode = "songs"
	ViewAlbums    ViewMode = "albums"
	ViewPlaylists ViewMode = "playlists"
	ViewQueue     ViewMode = "queue"
	ViewHistory   ViewMode = "history"
)

func parseViewMode(s string) ViewMode {
	switch v := ViewMode(s); v {
	case ViewSongs, ViewAlbums, ViewPlaylists, ViewQueue, ViewHistory:
		return v
	default:
		return ViewSongs
	}
}

// Deps are the services the UI drives.
type Deps struct {
	API      *api.Client
	Playback playback.Service
	State    state.Interface
	Logger   *zap.Logger
	Now      func() time.Time
}

// Model is the root application model.
type Model struct {
	API      *api.Client
	Playback playback.Service
	StateMgr state.Interface
	Logger   *zap.Logger
	Keys     *keymap.Resolver

	ViewMode   ViewMode
	Songs      tracklist.Model
	Albums     list.Model[api.Album]
	Playlists  list.Model[api.Playlist]
	Detail     tracklist.Model
	DetailOpen bool

	// DetailPlaylist is the playlist shown in Detail, nil for an album.
	DetailPlaylist *api.Playlist

	Queue         tracklist.Model
	History       list.Model[playlist.HistoryEntry]
	Help          helpbindings.Model
	HelpVisible   bool
	Lyrics        lyrics.Model
	LyricsVisible bool
	Search        textinput.Model
	SearchQuery   string

	Session   *state.Session
	StatusMsg string
	StatusErr bool

	albumsLoaded    bool
	playlistsLoaded bool
	restoreSongID   int64
	restoreListID   int64
	restoreQueueID  int64

	sub    *playback.Subscription
	now    func() time.Time
	Width  int
	Height int
}

// New builds the model and restores the saved session, volume, queue and
// navigation. It does not start playback.
func New(ctx context.Context, deps Deps) (Model, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	m := Model{
		API:       deps.API,
		Playback:  deps.Playback,
		StateMgr:  deps.State,
		Logger:    deps.Logger,
		Keys:      keymap.Default(),
		ViewMode:  ViewSongs,
		Songs:     tracklist.New("Songs"),
		Albums:    list.New("Albums", albumLabel),
		Playlists: list.New("Playlists", playlistLabel),
		Detail:    tracklist.New(""),
		Queue:     tracklist.New("Queue"),
		Help:      helpbindings.New(),
		Lyrics:    lyrics.New(),
		Search:    textinput.New("Search", "song name"),
		now:       deps.Now,
	}
	m.Albums.SetEmptyText("No albums")
	m.Playlists.SetEmptyText("No playlists")
	m.Queue.SetEmptyText("Queue is empty")
	m.History = list.New("Recently played", historyLabel(deps.Now))
	m.History.SetEmptyText("Nothing played yet")

	sess, err := m.StateMgr.Session(ctx)
	if err != nil {
		return Model{}, fmt.Errorf("load session: %w", err)
	}
	m.setSession(sess)

	vol, err := m.StateMgr.Volume(ctx, m.Playback.Volume())
	if err != nil {
		return Model{}, fmt.Errorf("load volume: %w", err)
	}
	m.Playback.SetVolume(vol)

	if err := m.restoreQueue(ctx); err != nil {
		return Model{}, err
	}
	if err := m.restoreNavigation(ctx); err != nil {
		return Model{}, err
	}

	m.Songs.SetTitle(songsTitle(m.SearchQuery))
	m.updateFocus()

	m.sub = m.Playback.Subscribe()
	m.syncPlaybackViews()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadSongs(m.SearchQuery), m.WatchEvents(), TickCmd()}
	switch m.ViewMode {
	case ViewAlbums:
		cmds = append(cmds, m.loadAlbums())
	case ViewPlaylists:
		cmds = append(cmds, m.loadPlaylists())
	case ViewSongs, ViewQueue, ViewHistory:
	}
	return tea.Batch(cmds...)
}

// Entitlement is what the signed-in account may play.
func (m Model) Entitlement() playback.Entitlement {
	if m.Session == nil {
		return playback.Entitlement{}
	}
	return playback.Entitlement{UserID: m.Session.UserID, Premium: m.Session.Premium}
}

func (m *Model) setSession(s *state.Session) {
	m.Session = s
	premium := s != nil && s.Premium
	m.Songs.SetPremium(premium)
	m.Detail.SetPremium(premium)
	m.Queue.SetPremium(premium)
}

func albumLabel(a api.Album) string {
	if a.ArtistName == "" {
		return a.Name
	}
	return a.Name + " · " + a.ArtistName
}

func playlistLabel(p api.Playlist) string {
	if p.Description == "" {
		return p.Name
	}
	return p.Name + " · " + p.Description
}
