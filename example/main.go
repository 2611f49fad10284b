// Demo: a stdout bar built through the SDK, no config file.
//
// Run it in a terminal and watch the composed line update; press Ctrl+C
// to stop. Refresh the uptime field out of band with:
//
//	kill -$((34+7)) <pid>
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/barline/barline"
)

func main() {
	date, err := barline.NewModule("date", barline.WithRefreshInterval(time.Second))
	if err != nil {
		slog.Error("failed to create date module", "error", err)
		os.Exit(1)
	}
	ram, err := barline.NewModule("ram", barline.WithRefreshInterval(2*time.Second))
	if err != nil {
		slog.Error("failed to create ram module", "error", err)
		os.Exit(1)
	}
	uptime, err := barline.NewModule("uptime -p",
		barline.External(),
		barline.WithRefreshInterval(30*time.Second),
		barline.WithSignal(7),
	)
	if err != nil {
		slog.Error("failed to create uptime module", "error", err)
		os.Exit(1)
	}

	bar, err := barline.New(
		barline.WithTopModules(uptime, ram, date),
		barline.WithTopDelimiter(" | "),
		barline.WithRenderer(stdoutRenderer{}),
	)
	if err != nil {
		slog.Error("failed to create bar", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bar.Start(ctx); err != nil {
		slog.Error("bar error", "error", err)
		os.Exit(1)
	}
}

// stdoutRenderer redraws the line in place instead of scrolling.
type stdoutRenderer struct{}

func (stdoutRenderer) SetStatus(text string) {
	os.Stdout.WriteString("\r\033[K" + text)
}
