package keymap

// Binding maps keys to an action, with a description for the help view.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "list", "queue"
}

// Bindings is the complete key map.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionSearch, []string{"/"}, "Search songs", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},
	{ActionRefresh, []string{"ctrl+r"}, "Reload from server", "global"},
	{ActionBack, []string{"esc", "backspace"}, "Back", "global"},
	{ActionViewSongs, []string{"1", "f1"}, "Songs", "global"},
	{ActionViewAlbums, []string{"2", "f2"}, "Albums", "global"},
	{ActionViewPlaylists, []string{"3", "f3"}, "Playlists", "global"},
	{ActionViewQueue, []string{"4", "f4"}, "Queue", "global"},
	{ActionViewHistory, []string{"5", "f5"}, "Recently played", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionSeekForward, []string{"shift+right", "l"}, "Seek +5s", "playback"},
	{ActionSeekBack, []string{"shift+left", "h"}, "Seek -5s", "playback"},
	{ActionSeekForwardLong, []string{"L"}, "Seek +30s", "playback"},
	{ActionSeekBackLong, []string{"H"}, "Seek -30s", "playback"},
	{ActionCycleRepeat, []string{"R"}, "Cycle repeat mode", "playback"},
	{ActionToggleShuffle, []string{"S"}, "Toggle shuffle", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionSleepTimer, []string{"t"}, "Sleep timer (+5 min, cancel after 2h)", "playback"},
	{ActionLyrics, []string{"y"}, "Lyrics of the current song", "playback"},

	// Lists
	{ActionMoveUp, []string{"k", "up"}, "Move up", "list"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "list"},
	{ActionJumpStart, []string{"g", "home"}, "First item", "list"},
	{ActionJumpEnd, []string{"G", "end"}, "Last item", "list"},
	{ActionPageUp, []string{"ctrl+u"}, "Half page up", "list"},
	{ActionPageDown, []string{"ctrl+d"}, "Half page down", "list"},
	{ActionSelect, []string{"enter"}, "Open or play", "list"},
	{ActionAdd, []string{"a"}, "Add to queue", "list"},
	{ActionPlayAll, []string{"r"}, "Play all", "list"},
	{ActionAddToPlaylist, []string{"P"}, "Add to the highlighted playlist", "list"},
	{ActionRemoveFromPlaylist, []string{"x"}, "Remove from the open playlist", "list"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Contexts lists binding contexts in help display order.
func Contexts() []string {
	return []string{"global", "playback", "list"}
}
