// ABOUTME: Root command wiring config, logging and the store for every subcommand.
// ABOUTME: Maps resolver errors to the messages users see.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/harper/scribble/internal/config"
	"github.com/harper/scribble/internal/scribble"
	"github.com/harper/scribble/internal/store"
	"github.com/harper/scribble/internal/ui"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	st     *scribble.Store
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "scribble",
	Short: "Content-addressed scratch notes",
	Long: `scribble stores short notes under the SHA-256 of their content,
lets you refer to them by any unique id prefix, and organizes them with tags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger = newLogger(verbose)
		slog.SetDefault(logger)

		configPath := configFile(cmd)
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if root, _ := cmd.Flags().GetString("root"); root != "" {
			cfg.Root = root
		}

		if !needsStore(cmd) {
			return nil
		}
		st, err = scribble.Open(cfg, scribble.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to open store at %s: %w", cfg.Root, err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if st == nil {
			return nil
		}
		err := st.Close()
		st = nil
		return err
	},
}

// needsStore reports whether cmd touches the store. The config command
// must work even when the configured root is broken.
func needsStore(cmd *cobra.Command) bool {
	return cmd != configCmd && cmd.Name() != "help" && cmd.Name() != "version"
}

func configFile(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.ConfigPath()
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}

// Execute runs the root command and prints any error the way users expect.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		if st != nil {
			_ = st.Close()
		}
	}
	return err
}

func formatError(err error) string {
	var ambiguous *store.AmbiguousError
	switch {
	case errors.As(err, &ambiguous):
		return ui.Error(fmt.Sprintf("prefix %q matches %d notes, specify more characters:",
			ambiguous.Prefix, len(ambiguous.Candidates))) + "\n" +
			strings.TrimRight(ui.FormatCandidates(ambiguous.Candidates), "\n")
	case errors.Is(err, store.ErrNotFound):
		return ui.Error("no such note")
	default:
		return ui.Error(err.Error())
	}
}

// resolve expands a user-supplied prefix to a full id.
func resolve(prefix string) (string, error) {
	return st.Resolve(strings.TrimSpace(prefix))
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
	rootCmd.PersistentFlags().String("root", "", "store directory (default $SCRIBBLE_HOME or ~/.scribble)")
	rootCmd.PersistentFlags().String("config", "", "config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
}
