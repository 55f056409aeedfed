package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrjoshuak/htmlwash/internal/config"
	"github.com/mrjoshuak/htmlwash/internal/log"
	"github.com/mrjoshuak/htmlwash/policy"
)

// NewRootCmd creates the root command for htmlwash.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "htmlwash",
		Short: "Strip unwanted markup from HTML",
		Long: `htmlwash removes elements matched by a cleanup policy, filters the
remaining tree to an allow-list of tags and attributes, and emits minified
HTML, markdown, or an automation-friendly HTML subset.

Presets are read from the built-in table and from
$XDG_CONFIG_HOME/htmlwash/presets.yaml, or the file named by --presets or
HTMLWASH_PRESETS.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")
	cmd.PersistentFlags().String("presets", "", "Preset file (default: $HTMLWASH_PRESETS or XDG config)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewWashCmd())
	cmd.AddCommand(NewPresetsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds a logger from the global flags, writing to the
// command's error stream.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	return log.NewFromFlags(cmd.ErrOrStderr(), verbose, jsonLogs)
}

// presetFile returns the --presets flag, falling back to HTMLWASH_PRESETS.
func presetFile(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("presets"); path != "" {
		return path
	}
	return os.Getenv(config.EnvPresets)
}

// loadPresets loads the preset table named by the global flags.
func loadPresets(cmd *cobra.Command, logger *slog.Logger) (policy.Presets, error) {
	presets, path, err := policy.LoadPresets(presetFile(cmd))
	if err != nil {
		return nil, fmt.Errorf("loading presets: %w", err)
	}
	if path != "" {
		logger.Debug("loaded preset file", "path", path, "presets", len(presets))
	}
	return presets, nil
}
