package infra

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// NewLogger builds the application logger: console output at the
// configured level, plus a timestamped debug-level log file when file
// logging is enabled. The returned closer flushes and closes the file
// and is safe to call on every exit path.
func NewLogger(cfg *Config) (*slog.Logger, func(), error) {
	level := parseLevel(cfg.Logging.Level)

	console := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	if !cfg.Logging.File {
		return slog.New(console), func() {}, nil
	}

	dir := cfg.Logging.Dir
	if dir == "" {
		dir = DefaultLogDir()
	}
	if err := EnsureDir(dir); err != nil {
		return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
	}

	name := fmt.Sprintf("trading_%s.log", time.Now().Format("20060102_150405"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	// The file always captures debug detail regardless of console level.
	file := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(fanoutHandler{console, file})
	logger.Info("Logging initialized", slog.String("file", f.Name()))

	return logger, func() { f.Close() }, nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanoutHandler duplicates records to every wrapped handler.
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sub := range h {
		if sub.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, sub := range h {
		if !sub.Enabled(ctx, record.Level) {
			continue
		}
		if err := sub.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, sub := range h {
		out[i] = sub.WithAttrs(attrs)
	}
	return out
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, sub := range h {
		out[i] = sub.WithGroup(name)
	}
	return out
}
