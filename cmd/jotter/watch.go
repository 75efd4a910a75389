package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aretw0/jotter/pkg/adapters/lifecycle"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/spf13/cobra"
)

var watchTypes []string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print note changes as they happen",
	Long: `Watch prints one line per created, modified or deleted note until interrupted.
With the fs adapter, changes made by other processes are reported too.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		types, err := parseEventTypes(watchTypes)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := store.Watch(ctx)
		if err != nil {
			return fmt.Errorf("failed to watch store: %w", err)
		}

		src := lifecycle.NewSource(events, types...)
		if err := src.Start(ctx); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", env.Path)
		out := cmd.OutOrStdout()
		for e := range src.Events() {
			if ne, ok := e.(core.Event); ok {
				fmt.Fprintf(out, "%s %s\n", time.Unix(ne.Timestamp, 0).Format(time.RFC3339), ne)
				continue
			}
			fmt.Fprintln(out, e.String())
		}
		return nil
	},
}

func parseEventTypes(names []string) ([]core.EventType, error) {
	types := make([]core.EventType, 0, len(names))
	for _, t := range names {
		switch et := core.EventType(strings.ToUpper(t)); et {
		case core.EventCreate, core.EventModify, core.EventDelete:
			types = append(types, et)
		default:
			return nil, fmt.Errorf("unknown event type %q", t)
		}
	}
	return types, nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringSliceVar(&watchTypes, "type", nil, "Only report these event types (create, modify, delete)")
}
