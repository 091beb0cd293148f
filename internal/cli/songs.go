package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/ui/render"
)

func newSongsCmd(opts *options) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "songs",
		Short: "List the catalogue, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.close()

			songs, err := e.client.Songs(cmd.Context(), search)
			if err != nil {
				return fmt.Errorf("%s: %w", errmsg.OpSongsLoad, err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			printf(w, "ID\tNAME\tARTIST\tLENGTH\t\n")
			for _, s := range songs {
				t := s.Track(e.client)
				badge := ""
				if t.Premium {
					badge = "★"
				}
				printf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Artist, render.Duration(t.Duration), badge)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "match song or artist names")
	return cmd
}
