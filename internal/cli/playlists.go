package cli

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/llehouerou/tunedeck/internal/api"
	"github.com/llehouerou/tunedeck/internal/errmsg"
)

func newPlaylistsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlists",
		Short: "List and edit the signed-in account's playlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			s, err := requireSession(cmd, e)
			if err != nil {
				return err
			}
			playlists, err := e.client.Playlists(cmd.Context(), s.UserID, "")
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpPlaylistLoad, err))
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			printf(w, "ID\tNAME\tDESCRIPTION\n")
			for _, p := range playlists {
				printf(w, "%d\t%s\t%s\n", p.ID, p.Name, p.Description)
			}
			return w.Flush()
		},
	}
	cmd.AddCommand(
		newPlaylistCreateCmd(opts),
		newPlaylistEditCmd(opts, "add", errmsg.OpPlaylistAddTrack),
		newPlaylistEditCmd(opts, "remove", errmsg.OpPlaylistRemove),
	)
	return cmd
}

func newPlaylistCreateCmd(opts *options) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			s, err := requireSession(cmd, e)
			if err != nil {
				return err
			}
			p, err := e.client.CreatePlaylist(cmd.Context(), api.PlaylistInput{
				Name:        args[0],
				UserID:      s.UserID,
				Description: description,
			})
			if err != nil {
				return errors.New(errmsg.FormatWith(errmsg.OpPlaylistCreate, args[0], err))
			}
			printf(cmd.OutOrStdout(), "Created playlist %d %s\n", p.ID, p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "playlist description")
	return cmd
}

// newPlaylistEditCmd builds "add" and "remove", which share their
// arguments and differ only in the call.
func newPlaylistEditCmd(opts *options, use string, op errmsg.Op) *cobra.Command {
	short := "Add a song to a playlist"
	if op == errmsg.OpPlaylistRemove {
		short = "Remove a song from a playlist"
	}
	return &cobra.Command{
		Use:   use + " PLAYLIST_ID SONG_ID",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			playlistID, songID, err := parseIDs(args[0], args[1])
			if err != nil {
				return err
			}
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			if _, err := requireSession(cmd, e); err != nil {
				return err
			}
			if op == errmsg.OpPlaylistRemove {
				err = e.client.RemoveSongFromPlaylist(cmd.Context(), playlistID, songID)
			} else {
				err = e.client.AddSongToPlaylist(cmd.Context(), playlistID, songID)
			}
			if err != nil {
				return errors.New(errmsg.Format(op, err))
			}
			verb := "Added"
			if op == errmsg.OpPlaylistRemove {
				verb = "Removed"
			}
			printf(cmd.OutOrStdout(), "%s song %d, playlist %d\n", verb, songID, playlistID)
			return nil
		},
	}
}

func parseIDs(playlist, song string) (int64, int64, error) {
	p, err := strconv.ParseInt(playlist, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid playlist id %q", playlist)
	}
	s, err := strconv.ParseInt(song, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid song id %q", song)
	}
	return p, s, nil
}
