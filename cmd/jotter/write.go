package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [content...]",
	Short: "Create a note",
	Long:  `Create a new unpinned note. All arguments are joined with spaces.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		note, err := store.Create(context.Background(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created note %d\n", note.ID)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [id] [content...]",
	Short: "Replace the content of a note",
	Args:  cobra.MinimumNArgs(2),
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

		if err := store.Update(context.Background(), id, strings.Join(args[1:], " ")); err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated note %d\n", id)
		return nil
	},
}

var pinCmd = &cobra.Command{
	Use:   "pin [id]",
	Short: "Toggle the fixed flag of a note",
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

		note, err := store.TogglePin(context.Background(), id)
		if err != nil {
			return fmt.Errorf("failed to toggle pin: %w", err)
		}
		state := "unpinned"
		if note.Fixed {
			state = "pinned"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note %d %s\n", id, state)
		return nil
	},
}

var dupCmd = &cobra.Command{
	Use:   "dup [id]",
	Short: "Duplicate a note under a new id",
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

		note, err := store.Duplicate(context.Background(), id)
		if err != nil {
			return fmt.Errorf("failed to duplicate note: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created note %d\n", note.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd, editCmd, pinCmd, dupCmd)
}
