package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/shivanshkc/repstat/internal/config"
)

// setupLogger builds the logger described by cfg and makes it the default.
func setupLogger(w io.Writer, cfg config.LogConfig) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler).With("app", "repstat"))
	return nil
}
