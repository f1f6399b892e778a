package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xoseperez/platformio/internal/fsutil"
	"github.com/xoseperez/platformio/internal/session"
	"github.com/xoseperez/platformio/internal/state"
	"github.com/xoseperez/platformio/internal/version"
)

func newSystemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Inspect the local installation",
	}
	cmd.AddCommand(newSystemInfoCmd())
	return cmd
}

func newSystemInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print core paths and identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, err := fsutil.HomeDir()
			if err != nil {
				return err
			}
			cacheDir, err := fsutil.CacheDir()
			if err != nil {
				return err
			}
			store, err := state.New("")
			if err != nil {
				return err
			}

			sess := session.FromContext(cmd.Context())
			cid, err := sess.ClientID(cmd.Context())
			if err != nil {
				return err
			}

			const tabPadding = 2
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintf(w, "Version\t%s\n", version.Version)
			fmt.Fprintf(w, "Home dir\t%s\n", home)
			fmt.Fprintf(w, "State file\t%s\n", store.Path())
			fmt.Fprintf(w, "Cache dir\t%s\n", cacheDir)
			fmt.Fprintf(w, "Client ID\t%s\n", cid)
			return w.Flush()
		},
	}
}
