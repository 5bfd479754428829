package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drummsters/ambientclock/internal/config"
	"github.com/drummsters/ambientclock/internal/state"
)

func newResetCmd(flags *rootFlags) *cobra.Command {
	var includeFavorites bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the persisted state and start from the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}

			store, err := state.NewFileStore(cfg.Storage().StateFile)
			if err != nil {
				return err
			}
			if err := store.Remove(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", store.Path())

			if includeFavorites {
				path := cfg.Storage().FavoritesFile
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeFavorites, "favorites", false, "Also delete the favorites list")

	return cmd
}
