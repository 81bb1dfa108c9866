package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	slogmulti "github.com/samber/slog-multi"
)

type Options struct {
	Level string
	JSON  bool
	// File, when set, receives a copy of every record in JSON.
	File string
}

var (
	def    atomic.Value
	closer atomic.Value
)

func init() {
	cfg := &slog.HandlerOptions{Level: slog.LevelInfo}
	h := slog.NewTextHandler(os.Stderr, cfg)
	def.Store(slog.New(h))
}

func Configure(opts Options) error {
	return configure(os.Stderr, opts)
}

func configure(console io.Writer, opts Options) error {
	lvl := parseLevel(opts.Level)
	cfg := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(console, cfg)
	} else {
		h = slog.NewTextHandler(console, cfg)
	}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		h = slogmulti.Fanout(h, slog.NewJSONHandler(f, cfg))
		if prev, ok := closer.Swap(io.Closer(f)).(io.Closer); ok && prev != nil {
			_ = prev.Close()
		}
	}
	def.Store(slog.New(h))
	return nil
}

func parseLevel(s string) slog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func L() *slog.Logger {
	l, _ := def.Load().(*slog.Logger)
	return l
}

// Close releases the log file opened by Configure, if any.
func Close() error {
	if c, ok := closer.Load().(io.Closer); ok && c != nil {
		return c.Close()
	}
	return nil
}

func InitFromEnv() error {
	lvl := os.Getenv("UCICONV_LOG_LEVEL")
	jsonStr := os.Getenv("UCICONV_LOG_JSON")
	json := false
	if b, err := strconv.ParseBool(strings.TrimSpace(jsonStr)); err == nil {
		json = b
	}
	return Configure(Options{Level: lvl, JSON: json, File: os.Getenv("UCICONV_LOG_FILE")})
}
