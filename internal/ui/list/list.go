// Package list provides a generic scrollable list component.
package list

import (
	"fmt"
	"strings"

	"github.com/llehouerou/tunedeck/internal/keymap"
	"github.com/llehouerou/tunedeck/internal/ui"
	"github.com/llehouerou/tunedeck/internal/ui/cursor"
	"github.com/llehouerou/tunedeck/internal/ui/render"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

// RowFunc renders one item as a line exactly width cells wide. selected is
// true for the row under a focused cursor.
type RowFunc[T any] func(item T, index, width int, selected bool) string

// Model is a generic scrollable list inside a titled panel.
type Model[T any] struct {
	ui.Base
	title  string
	empty  string
	items  []T
	cursor cursor.Cursor
	label  func(T) string
}

// New creates a list whose default rows show label(item).
func New[T any](title string, label func(T) string) Model[T] {
	return Model[T]{
		title:  title,
		empty:  "Nothing here",
		cursor: cursor.New(ui.ScrollMargin),
		label:  label,
	}
}

// SetTitle sets the panel header.
func (m *Model[T]) SetTitle(title string) {
	m.title = title
}

// Title returns the panel header.
func (m Model[T]) Title() string {
	return m.title
}

// SetEmptyText sets what is shown when the list has no items.
func (m *Model[T]) SetEmptyText(s string) {
	m.empty = s
}

// SetItems replaces all items and clamps cursor to bounds.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor.ClampToBounds(len(items), m.ListHeight())
}

// Items returns the current items.
func (m Model[T]) Items() []T {
	return m.items
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor and true, or false if empty.
func (m Model[T]) Selected() (T, bool) {
	if len(m.items) == 0 || m.cursor.Pos() >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.cursor.Pos()], true
}

// SelectedIndex returns the cursor position.
func (m Model[T]) SelectedIndex() int {
	return m.cursor.Pos()
}

// Select moves the cursor to index.
func (m *Model[T]) Select(index int) {
	m.cursor.Jump(index, len(m.items), m.ListHeight())
}

// SelectFunc moves the cursor to the first item matching fn and reports
// whether one was found.
func (m *Model[T]) SelectFunc(fn func(T) bool) bool {
	for i, it := range m.items {
		if fn(it) {
			m.Select(i)
			return true
		}
	}
	return false
}

// HandleAction applies a navigation action and reports whether it was one.
func (m *Model[T]) HandleAction(a keymap.Action) bool {
	return m.cursor.HandleAction(a, len(m.items), m.ListHeight())
}

// View renders the panel with the default label rows.
func (m Model[T]) View() string {
	return m.ViewWith(m.labelRow)
}

// ViewWith renders the panel using row for each visible item.
func (m Model[T]) ViewWith(row RowFunc[T]) string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	inner := max(m.Width()-ui.BorderHeight, 0)
	height := m.ListHeight()
	st := styles.T().S()

	header := st.Title.Render(render.Fit(fmt.Sprintf("%s (%d)", m.title, len(m.items)), inner))

	lines := make([]string, 0, height)
	if len(m.items) == 0 && height > 0 {
		lines = append(lines, st.Muted.Render(render.Fit(m.empty, inner)))
	}
	start, end := m.cursor.VisibleRange(len(m.items), height)
	for i := start; i < end; i++ {
		selected := m.IsFocused() && i == m.cursor.Pos()
		lines = append(lines, row(m.items[i], i, inner, selected))
	}
	for len(lines) < height {
		lines = append(lines, render.EmptyLine(inner))
	}

	content := header + "\n" + render.Separator(inner) + "\n" + strings.Join(lines, "\n")
	return styles.PanelStyle(m.IsFocused()).Width(inner).Render(content)
}

func (m Model[T]) labelRow(item T, _, width int, selected bool) string {
	line := render.Fit("  "+m.label(item), width)
	if selected {
		return styles.T().S().Cursor.Render(line)
	}
	return styles.T().S().Base.Render(line)
}
