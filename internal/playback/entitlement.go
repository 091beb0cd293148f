package playback

import "github.com/llehouerou/tunedeck/internal/playlist"

// Entitlement is what the signed-in account may play. The zero value is an
// anonymous, non-premium listener.
type Entitlement struct {
	UserID  int64
	Premium bool
}

// Allows reports whether t may enter the playing state under e.
func (e Entitlement) Allows(t playlist.Track) bool {
	return t.PlayableBy(e.Premium)
}
