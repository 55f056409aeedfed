package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mrjoshuak/htmlwash/internal/config"
	"github.com/mrjoshuak/htmlwash/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP washing service",
		Long: `Run the HTTP service exposing POST /wash, /filter-markdown,
/markdownify and /wash-pptr.

The port defaults to $PORT, or 3001 when unset. The service stops
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().IntP("port", "p", config.DefaultPort, "Port to listen on (overrides $PORT)")
	cmd.Flags().String("host", config.DefaultHost, "Interface to listen on")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize, "Maximum request body size in bytes")
	cmd.Flags().Duration("read-timeout", config.DefaultReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", config.DefaultWriteTimeout, "HTTP write timeout")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildServeConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	presets, err := loadPresets(cmd, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, presets, logger).ListenAndServe(ctx)
}

// buildServeConfig layers flags over the environment over defaults. A flag
// only wins when it was set explicitly.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	if err := cfg.FromEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("max-body-size") {
		cfg.MaxBodySize, _ = flags.GetInt64("max-body-size")
	}
	if flags.Changed("read-timeout") {
		cfg.ReadTimeout, _ = flags.GetDuration("read-timeout")
	}
	if flags.Changed("write-timeout") {
		cfg.WriteTimeout, _ = flags.GetDuration("write-timeout")
	}
	if path := presetFile(cmd); path != "" {
		cfg.PresetFile = path
	}
	cfg.Verbose, _ = flags.GetBool("verbose")
	cfg.JSONLogs, _ = flags.GetBool("json-logs")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
