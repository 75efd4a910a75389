package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/jotter"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all notes as comma-separated text",
	Long: `Export writes every note in storage order under an "ID,Content,Fixed?" header.
Values are not escaped. Use -o - to write to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := context.Background()
		if exportOutput == "-" {
			if err := store.ExportTo(ctx, cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("failed to export notes: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}

		text, err := store.Export(ctx)
		if err != nil {
			return fmt.Errorf("failed to export notes: %w", err)
		}
		if err := os.WriteFile(exportOutput, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		slog.Debug("export written", "path", exportOutput, "bytes", len(text))
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", jotter.ExportFilename, "Output file, or - for stdout")
}
