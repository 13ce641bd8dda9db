package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the backend and destination of a file logger.
type Options struct {
	Backend string // "zap" (default) or "slog"
	Level   string // debug, info, warn, error
	Path    string // append-only log file
}

// New opens opts.Path for appending and returns a logger writing to it,
// plus a close function that flushes and closes the file.
func New(opts Options) (Logger, func() error, error) {
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log %s: %w", opts.Path, err)
	}

	l, sync, err := NewWriter(opts, f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	closeFn := func() error {
		_ = sync()
		return f.Close()
	}
	return l, closeFn, nil
}

// NewWriter builds a logger over an arbitrary writer. The returned function
// flushes buffered entries.
func NewWriter(opts Options, w io.Writer) (Logger, func() error, error) {
	switch strings.ToLower(opts.Backend) {
	case "", "zap":
		lvl, err := zapcore.ParseLevel(levelOrDefault(opts.Level))
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
		zl := NewZapLogger(zap.New(core))
		return zl, zl.Sync, nil

	case "slog":
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(levelOrDefault(opts.Level))); err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
		return NewSlogLogger(slog.New(h)), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

func levelOrDefault(s string) string {
	if s == "" {
		return "info"
	}
	return s
}
