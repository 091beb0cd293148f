package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunedeck/internal/app/handler"
	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/keymap"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/playlist"
)

const (
	seekStep     = 5 * time.Second
	seekStepLong = 30 * time.Second
	volumeStep   = 0.05
)

// syncPlaybackViews refreshes the queue, history and playing markers from
// the playback service.
func (m *Model) syncPlaybackViews() {
	var id int64
	if t := m.Playback.CurrentTrack(); t != nil {
		id = t.ID
	}
	m.Songs.SetCurrent(id)
	m.Detail.SetCurrent(id)
	m.Queue.SetCurrent(id)

	m.Queue.SetItems(m.Playback.Queue())
	if m.restoreQueueID != 0 {
		qid := m.restoreQueueID
		m.restoreQueueID = 0
		m.Queue.SelectFunc(func(t playlist.Track) bool { return t.ID == qid })
	}

	history := m.Playback.History()
	slices.Reverse(history)
	m.History.SetItems(history)
}

func (m Model) handlePlaybackMessage(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m, TickCmd()

	case PlaybackEventMsg:
		m.handlePlaybackEvent(msg.Event)
		return m, m.WatchEvents()

	case PlaybackResultMsg:
		if msg.Err != nil {
			m.setError(errmsg.Notice(msg.Err))
		}
		return m, nil

	case PlaybackClosedMsg:
		m.sub = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) handlePlaybackEvent(ev any) {
	switch e := ev.(type) {
	case playback.TrackChange:
		m.syncPlaybackViews()
		m.SaveQueueState(context.Background())
	case playback.QueueChange:
		m.syncPlaybackViews()
		m.SaveQueueState(context.Background())
	case playback.ModeChange:
		m.SaveQueueState(context.Background())
	case playback.SleepTimerChange:
		if e.Expired {
			m.setStatus("Sleep timer ended, playback paused")
		}
	case playback.ErrorEvent:
		m.setError(errmsg.Notice(e.Err))
	case playback.StateChange, playback.PositionChange:
		// redrawn from the service on View
	}
}

func (m *Model) handlePlaybackAction(a keymap.Action) handler.Result {
	switch a { //nolint:exhaustive // playback actions only
	case keymap.ActionPlayPause:
		if m.Playback.State() == playback.StateIdle {
			return handler.Handled(m.playAll(m.Playback.Queue()))
		}
		return handler.Handled(m.playCmd(errmsg.OpPlaybackStart, m.Playback.TogglePlayPause))
	case keymap.ActionNextTrack:
		return handler.Handled(m.playCmd(errmsg.OpPlaybackNext, m.Playback.PlayNext))
	case keymap.ActionPrevTrack:
		return handler.Handled(m.playCmd(errmsg.OpPlaybackPrev, m.Playback.PlayPrevious))
	case keymap.ActionSeekForward:
		m.seek(seekStep)
	case keymap.ActionSeekBack:
		m.seek(-seekStep)
	case keymap.ActionSeekForwardLong:
		m.seek(seekStepLong)
	case keymap.ActionSeekBackLong:
		m.seek(-seekStepLong)
	case keymap.ActionCycleRepeat:
		m.setStatus("Repeat: " + m.Playback.CycleRepeatMode().String())
	case keymap.ActionToggleShuffle:
		if m.Playback.ToggleShuffle() {
			m.setStatus("Shuffle on")
		} else {
			m.setStatus("Shuffle off")
		}
	case keymap.ActionVolumeUp:
		m.changeVolume(volumeStep)
	case keymap.ActionVolumeDown:
		m.changeVolume(-volumeStep)
	case keymap.ActionSleepTimer:
		m.cycleSleepTimer()
	default:
		return handler.NotHandled
	}
	return handler.HandledNoCmd
}

func (m *Model) seek(delta time.Duration) {
	if !m.Playback.State().HasTrack() {
		return
	}
	pos := max(m.Playback.Position()+delta, 0)
	if err := m.Playback.Seek(pos); err != nil {
		m.setError(errmsg.Format(errmsg.OpPlaybackSeek, err))
	}
}

func (m *Model) changeVolume(delta float64) {
	level := min(max(m.Playback.Volume()+delta, 0), 1)
	m.Playback.SetVolume(level)
	m.StateMgr.SaveVolume(level)
	m.setStatus(fmt.Sprintf("Volume %d%%", int(level*100+0.5)))
}

func (m *Model) cycleSleepTimer() {
	remaining, active := m.Playback.SleepTimerRemaining()
	d := NextSleepDuration(remaining, active)
	if d == 0 {
		m.Playback.CancelSleepTimer()
		m.setStatus("Sleep timer off")
		return
	}
	if err := m.Playback.StartSleepTimer(d); err != nil {
		m.setError(errmsg.Notice(err))
		return
	}
	m.setStatus(fmt.Sprintf("Sleep in %d min", int(d.Minutes())))
}

// NextSleepDuration returns the sleep timer setting that follows the
// current one: the remaining time rounded up to a step, plus one step.
// It returns 0 once that would pass the maximum, meaning "cancel".
func NextSleepDuration(remaining time.Duration, active bool) time.Duration {
	if !active {
		return playback.SleepTimerMin
	}
	steps := (remaining + playback.SleepTimerStep - 1) / playback.SleepTimerStep
	next := (steps + 1) * playback.SleepTimerStep
	if next > playback.SleepTimerMax {
		return 0
	}
	return max(next, playback.SleepTimerMin)
}

// playTrack replaces the queue with tracks and plays the one at index.
func (m Model) playTrack(tracks []playlist.Track, index int) tea.Cmd {
	if index < 0 || index >= len(tracks) {
		return nil
	}
	t := tracks[index]
	svc := m.Playback
	return m.playCmd(errmsg.OpPlaybackStart, func(ctx context.Context, ent playback.Entitlement) error {
		// A rejected track leaves the queue untouched.
		if ent.Allows(t) {
			svc.SetQueue(tracks)
		}
		return svc.PlayTrack(ctx, t, ent)
	})
}

// playAll replaces the queue with tracks and plays the first one the
// account may play.
func (m Model) playAll(tracks []playlist.Track) tea.Cmd {
	if len(tracks) == 0 {
		return nil
	}
	svc := m.Playback
	return m.playCmd(errmsg.OpPlaybackStart, func(ctx context.Context, ent playback.Entitlement) error {
		return svc.PlayFirstEligible(ctx, tracks, ent)
	})
}
