package logging

import (
	"log/slog"
	"os"
)

// Setup installs the global JSON logger. Non-production environments log at
// debug so marketplace flows can be traced without a config change.
func Setup(appEnv string) {
	handler := slog.NewJSONHandler(os.Stdout, Options(appEnv))
	slog.SetDefault(slog.New(handler))
}

// Options returns the handler options for the given environment.
func Options(appEnv string) *slog.HandlerOptions {
	level := slog.LevelInfo
	if appEnv != "production" {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
