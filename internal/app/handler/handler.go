// Package handler provides a result type and chain function for key handlers.
package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunedeck/internal/keymap"
)

// Result represents the outcome of a key handler.
type Result struct {
	Handled bool
	Cmd     tea.Cmd
}

// NotHandled is returned when a handler doesn't handle the action.
var NotHandled = Result{}

// HandledNoCmd is a convenience for handlers that handle but return no command.
var HandledNoCmd = Result{Handled: true}

// Handled creates a Result indicating the action was handled with a command.
func Handled(cmd tea.Cmd) Result {
	return Result{Handled: true, Cmd: cmd}
}

// Handler attempts to handle a resolved action.
type Handler func(a keymap.Action) Result

// Chain runs handlers in order until one handles a.
func Chain(a keymap.Action, handlers ...Handler) (bool, tea.Cmd) {
	if a == "" {
		return false, nil
	}
	for _, h := range handlers {
		if r := h(a); r.Handled {
			return true, r.Cmd
		}
	}
	return false, nil
}
