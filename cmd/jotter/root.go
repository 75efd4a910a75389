package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/aretw0/jotter"
	"github.com/aretw0/jotter/internal/platform"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	storePath string
	adapter   string
	format    string

	// env is the environment configuration with flag overrides applied.
	env platform.EnvConfig
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jotter",
	Short: "A tiny note store for the terminal",
	Long: `Jotter keeps a flat list of short notes.
Notes can be pinned to the top, searched, duplicated and exported as text.
Every change is persisted immediately to the selected storage adapter.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		return loadConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storePath, "path", ".", "Store directory (env JOTTER_PATH)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "fs", "Storage adapter: fs, sqlite or memory (env JOTTER_ADAPTER)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "json", "Collection encoding: json or yaml (env JOTTER_FORMAT)")
}

// loadConfig reads the environment; flags set on the command line win.
func loadConfig(cmd *cobra.Command) error {
	cfg, err := platform.LoadEnvConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("path") {
		cfg.Path = storePath
	}
	if flags.Changed("adapter") {
		cfg.Adapter = adapter
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	env = cfg
	return nil
}

// storeOptions translates the resolved configuration into jotter options.
func storeOptions() []jotter.Option {
	return append(env.Options(), jotter.WithLogger(slog.Default()))
}

// openStore builds a Store from the resolved configuration.
func openStore() (*jotter.Store, error) {
	store, err := jotter.New(env.Path, storeOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id %q", arg)
	}
	return id, nil
}
