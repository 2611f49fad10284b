// Package main is the entry point for the barline CLI.
//
// Barline can be used as a library (SDK) or as a standalone daemon with
// YAML configuration. This CLI provides the standalone daemon.
//
// Usage:
//
//	barline run -c barline.yaml          # Start the bar
//	barline validate -c barline.yaml     # Validate configuration
//	barline refresh --module battery     # Refresh a module of the running bar
//	barline version                      # Show version info
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/barline/barline"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes for configuration failure categories. Scripts wrapping
// barline rely on these staying distinct; 1 remains the generic CLI
// failure code.
const (
	exitBadDescriptor    = 2
	exitNegativeInterval = 3
	exitBadSignal        = 4
	exitUnknownModule    = 5
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "barline",
	Short: "A status bar composer for dwm",
	Long: `Barline renders a one-line status text for dwm from concurrently
scheduled modules: built-in system readings (date, battery, cpu, ram,
disk) and arbitrary external commands.

Modules refresh on fixed intervals and on POSIX real-time signals, so a
volume-key binding can update the volume field instantly:

  kill -$((34+10)) $(cat "$XDG_RUNTIME_DIR/barline.pid")

Quick start:
  1. Create a config file (barline.yaml)
  2. Run: barline run -c barline.yaml

Example config:
  bottom_delimiter: " | "
  top:
    - name: date
      kind: internal
      interval: 60
      signal: 1
    - name: battery
      kind: internal
      interval: 5
      signal: 2`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command and maps categorized configuration
// errors to their exit codes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// cobra already printed the error
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error to the process exit code. Configuration
// failure categories get distinct codes; anything else is the generic 1.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, barline.ErrNegativeInterval):
		return exitNegativeInterval
	case errors.Is(err, barline.ErrBadSignal):
		return exitBadSignal
	case errors.Is(err, barline.ErrUnknownModule):
		return exitUnknownModule
	case errors.Is(err, barline.ErrBadDescriptor):
		return exitBadDescriptor
	default:
		return 1
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this barline binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("barline %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
