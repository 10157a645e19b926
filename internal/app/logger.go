package app

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the process-wide logger. Deployments set LOG_FORMAT=json
// for log shippers; everything else gets readable text output. LOG_LEVEL=debug
// lowers the threshold for local troubleshooting.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel(cfg), AddSource: true}
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func logLevel(cfg *Config) slog.Level {
	if cfg != nil && strings.EqualFold(cfg.LogLevel, "debug") {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
