package cli

import (
	"github.com/spf13/cobra"

	"github.com/xoseperez/platformio/internal/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local download/API cache",
	}
	cmd.AddCommand(newCacheCleanCmd())
	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove all cached data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := cache.Open(cmd.Context(), "")
			if err != nil {
				return err
			}
			if err := c.Clean(); err != nil {
				return err
			}
			cmd.Println("The cache has been cleaned!")
			return nil
		},
	}
}
