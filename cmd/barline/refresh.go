package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/barline/barline/config"
	"github.com/barline/barline/internal/pidfile"
	"github.com/barline/barline/internal/rtsig"
)

// refreshCmd delivers a real-time refresh signal to the running daemon.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh a module of the running bar",
	Long: `Send the real-time signal that refreshes one module of the running
barline daemon immediately, ahead of any pending timer.

The target module is named with --module (resolved through the config
file to its signal index) or addressed directly with --signal. The
daemon is located through the pid file.

Example:
  barline refresh -c barline.yaml --module battery
  barline refresh -c barline.yaml --signal 2`,
	RunE:         runRefresh,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(refreshCmd)

	refreshCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	refreshCmd.Flags().String("module", "", "module name to refresh")
	refreshCmd.Flags().Int("signal", -1, "signal index to deliver directly")
	_ = refreshCmd.MarkFlagRequired("config")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	moduleName, _ := cmd.Flags().GetString("module")
	index, _ := cmd.Flags().GetInt("signal")

	if moduleName == "" && index < 0 {
		return fmt.Errorf("one of --module or --signal is required")
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if moduleName != "" {
		index, err = signalForModule(cfg, moduleName)
		if err != nil {
			return err
		}
	}

	sig, err := rtsig.SignalFor(index)
	if err != nil {
		return err
	}

	pid, err := pidfile.Read(pidFilePath(cfg))
	if err != nil {
		return fmt.Errorf("is barline running? %w", err)
	}

	if err := unix.Kill(pid, sig); err != nil {
		return fmt.Errorf("signal pid %d: %w", pid, err)
	}
	return nil
}

// signalForModule resolves a configured module name to its signal index.
func signalForModule(cfg *config.Config, name string) (int, error) {
	for _, mc := range append(append([]config.ModuleConfig{}, cfg.Top...), cfg.Bottom...) {
		if mc.Name == name && mc.Signal != nil {
			return *mc.Signal, nil
		}
	}
	return 0, fmt.Errorf("no configured module named %q", name)
}
