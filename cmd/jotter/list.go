package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/jotter"
	"github.com/spf13/cobra"
)

var (
	listJSON   bool
	searchJSON bool
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List all notes, pinned first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return printNotes(cmd.OutOrStdout(), store.List(context.Background()), listJSON)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "List notes whose content contains term",
	Long:  `Search is a case-sensitive substring match. An empty term lists every note.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := ""
		if len(args) == 1 {
			term = args[0]
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return printNotes(cmd.OutOrStdout(), store.Search(context.Background(), term), searchJSON)
	},
}

func printNotes(w io.Writer, notes []jotter.Note, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(notes)
	}

	for _, n := range notes {
		marker := " "
		if n.Fixed {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %d\t%s\n", marker, n.ID, n.Content); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd, searchCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
}
