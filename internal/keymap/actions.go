// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit    Action = "quit"
	ActionSearch  Action = "search"
	ActionHelp    Action = "help"
	ActionRefresh Action = "refresh"
	ActionBack    Action = "back"

	// View switching
	ActionViewSongs     Action = "view_songs"
	ActionViewAlbums    Action = "view_albums"
	ActionViewPlaylists Action = "view_playlists"
	ActionViewQueue     Action = "view_queue"
	ActionViewHistory   Action = "view_history"

	// Playback actions
	ActionPlayPause       Action = "play_pause"
	ActionNextTrack       Action = "next_track"
	ActionPrevTrack       Action = "prev_track"
	ActionSeekForward     Action = "seek_forward"
	ActionSeekBack        Action = "seek_back"
	ActionSeekForwardLong Action = "seek_forward_long"
	ActionSeekBackLong    Action = "seek_back_long"
	ActionCycleRepeat     Action = "cycle_repeat"
	ActionToggleShuffle   Action = "toggle_shuffle"
	ActionVolumeUp        Action = "volume_up"
	ActionVolumeDown      Action = "volume_down"
	ActionSleepTimer      Action = "sleep_timer"
	ActionLyrics          Action = "lyrics"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"

	// List actions
	ActionSelect  Action = "select"   // enter - open or play
	ActionAdd     Action = "add"      // a - append to queue
	ActionPlayAll Action = "play_all" // r - replace queue and play first playable

	// Playlist editing
	ActionAddToPlaylist      Action = "add_to_playlist"      // P - add to the highlighted playlist
	ActionRemoveFromPlaylist Action = "remove_from_playlist" // x - remove from the open playlist
)
