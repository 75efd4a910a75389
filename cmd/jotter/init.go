package main

import (
	"fmt"

	"github.com/aretw0/jotter"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Prepare a note store",
	Long:  `Initialize a new store at --path. For the fs adapter this creates the system directory.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := jotter.Init(env.Path, storeOptions()...); err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Initialized empty jotter store in", env.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
