// Command bazaar runs the bilateral price negotiation simulator.
package main

import (
	"log/slog"
	"os"

	"github.com/talgya/bazaar/internal/cmd"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := cmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
