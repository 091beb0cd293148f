// Package headerbar renders the top line: brand, view tabs and account.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunedeck/internal/ui/render"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Tab is one selectable view.
type Tab struct {
	Key  string
	Name string
	View string
}

// Tabs are the views in display order.
var Tabs = []Tab{
	{"1", "Songs", "songs"},
	{"2", "Albums", "albums"},
	{"3", "Playlists", "playlists"},
	{"4", "Queue", "queue"},
	{"5", "Recent", "history"},
}

// Account describes the signed-in user shown on the right.
type Account struct {
	Username string
	Premium  bool
}

// Render returns the header bar for the given width. account may be nil
// for a signed-out listener.
func Render(currentView string, account *Account, width int) string {
	if width < 20 {
		return ""
	}
	t := styles.T()
	active := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	inactiveKey := lipgloss.NewStyle().Foreground(t.FgSubtle)
	inactiveName := lipgloss.NewStyle().Foreground(t.FgMuted)

	parts := make([]string, 0, len(Tabs))
	for _, tab := range Tabs {
		if tab.View == currentView {
			parts = append(parts, active.Render(tab.Key+" "+tab.Name))
			continue
		}
		parts = append(parts, inactiveKey.Render(tab.Key)+" "+inactiveName.Render(tab.Name))
	}
	sep := lipgloss.NewStyle().Foreground(t.Border).Render(" │ ")
	left := styles.Brand("tunedeck") + "  " + strings.Join(parts, sep)

	return render.Row(left, accountLabel(account), width)
}

func accountLabel(a *Account) string {
	st := styles.T().S()
	if a == nil {
		return st.Muted.Render("not signed in")
	}
	name := render.Truncate(a.Username, 24)
	if a.Premium {
		return st.Base.Render(name) + " " + st.Premium.Render("★ Premium")
	}
	return st.Base.Render(name) + " " + st.Muted.Render("Free")
}
