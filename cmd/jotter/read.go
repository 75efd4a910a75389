package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	readJSON bool
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a note",
	Long:  `Print the content of a note by its ID, or the whole note with --json.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		note, err := store.Get(context.Background(), id)
		if err != nil {
			return fmt.Errorf("failed to read note: %w", err)
		}

		if readJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(note)
		}

		fmt.Fprintln(cmd.OutOrStdout(), note.Content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
}
