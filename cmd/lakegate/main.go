// Package main is the entry point for the lakegate CLI.
package main

import (
	"log/slog"
	"os"

	"github.com/lakegate/lakegate/cmd/lakegate/app"
	"github.com/lakegate/lakegate/pkg/config"
)

func main() {
	// Structured JSON logging on stderr keeps stdout clean for commands
	// that output data (e.g. version --format json).
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.LogLevelFromEnv(),
	})
	slog.SetDefault(slog.New(handler))

	if err := app.NewRootCmd().Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
