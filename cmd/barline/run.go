package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/barline/barline"
	"github.com/barline/barline/config"
	"github.com/barline/barline/internal/pidfile"
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// runCmd starts the bar daemon.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the status bar",
	Long: `Start the barline daemon.

The daemon will:
  - Load configuration from the specified YAML file
  - Start one refresh loop per configured module
  - Listen for real-time refresh signals (SIGRTMIN+n)
  - Push each recomposed status line to the configured display surface

The daemon runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  barline run -c barline.yaml
  barline run --config ~/.config/barline/barline.yaml`,
	RunE:         runRun,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("config loaded",
		"top_modules", len(cfg.Top),
		"bottom_modules", len(cfg.Bottom),
	)

	opts, err := config.BuildOptions(cfg)
	if err != nil {
		return fmt.Errorf("failed to build modules: %w", err)
	}
	opts = append(opts, barline.WithLogger(logger))

	bar, err := barline.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create bar: %w", err)
	}

	pidPath := pidFilePath(cfg)
	if err := pidfile.Acquire(pidPath); err != nil {
		return err
	}
	defer func() { _ = pidfile.Release(pidPath) }()
	logger.Info("pid file written", "path", pidPath)

	// SIGINT/SIGTERM end the bar; the real-time refresh signals are
	// consumed by the signal bridge inside Start and do not conflict.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return bar.Start(ctx)
}

// pidFilePath resolves the pid file location: the configured path, or a
// per-user default under the runtime directory.
func pidFilePath(cfg *config.Config) string {
	if cfg.PidFile != "" {
		return cfg.PidFile
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "barline.pid")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("barline-%d.pid", os.Getuid()))
}
