// Package logging builds the CLI's slog logger and lets it be reconfigured at runtime.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes the desired logging configuration.
type Config struct {
	Level          string `yaml:"level" json:"level"`
	Format         string `yaml:"format" json:"format"`
	File           string `yaml:"file,omitempty" json:"file,omitempty"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb,omitempty" json:"file_max_size_mb,omitempty"`
	FileMaxFiles   int    `yaml:"file_max_files,omitempty" json:"file_max_files,omitempty"`
	FileMaxAgeDays int    `yaml:"file_max_age_days,omitempty" json:"file_max_age_days,omitempty"`
}

// DefaultConfig returns text logs at info level with no log file.
func DefaultConfig() Config {
	return Config{
		Level:          "info",
		Format:         "text",
		FileMaxSizeMB:  10,
		FileMaxFiles:   3,
		FileMaxAgeDays: 14,
	}
}

// Validate checks the level and format names.
func (c Config) Validate() error {
	if !ValidLevel(c.Level) {
		return fmt.Errorf("unknown log level %q (want debug, info, warn or error)", c.Level)
	}
	if !ValidFormat(c.Format) {
		return fmt.Errorf("unknown log format %q (want text or json)", c.Format)
	}
	return nil
}

// String returns a short summary of the config.
func (c Config) String() string {
	s := fmt.Sprintf("level=%s format=%s", c.Level, c.Format)
	if c.File != "" {
		s += fmt.Sprintf(" file=%s", c.File)
	}
	return s
}

// ValidLevel reports whether s names a log level.
func ValidLevel(s string) bool {
	_, ok := levels[strings.ToLower(s)]
	return ok
}

// ValidFormat reports whether s names a log format.
func ValidFormat(s string) bool {
	switch strings.ToLower(s) {
	case "text", "json":
		return true
	}
	return false
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func parseLevel(s string) slog.Level {
	if level, ok := levels[strings.ToLower(s)]; ok {
		return level
	}
	return slog.LevelInfo
}

// swapHandler forwards to a handler that can be replaced while loggers built
// on it stay in use. WithAttrs and WithGroup calls are replayed, in order, on
// whichever handler is current.
type swapHandler struct {
	current *atomic.Pointer[slog.Handler]
	derive  []func(slog.Handler) slog.Handler
}

func (h *swapHandler) resolve() slog.Handler {
	inner := *h.current.Load()
	for _, d := range h.derive {
		inner = d(inner)
	}
	return inner
}

func (h *swapHandler) with(d func(slog.Handler) slog.Handler) *swapHandler {
	derive := make([]func(slog.Handler) slog.Handler, len(h.derive), len(h.derive)+1)
	copy(derive, h.derive)
	return &swapHandler{current: h.current, derive: append(derive, d)}
}

func (h *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*h.current.Load()).Enabled(ctx, level)
}

func (h *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.resolve().Handle(ctx, r)
}

func (h *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(inner slog.Handler) slog.Handler {
		return inner.WithAttrs(attrs)
	})
}

func (h *swapHandler) WithGroup(name string) slog.Handler {
	return h.with(func(inner slog.Handler) slog.Handler {
		return inner.WithGroup(name)
	})
}

// Manager owns the CLI logger and supports runtime reconfiguration.
type Manager struct {
	mu      sync.Mutex
	config  Config
	level   *slog.LevelVar
	out     io.Writer
	current atomic.Pointer[slog.Handler]
	file    io.Closer
}

// NewManager creates a Manager writing to out (and to cfg.File, if set) and
// returns it with a ready-to-use logger.
func NewManager(cfg Config, out io.Writer) (*Manager, *slog.Logger) {
	m := &Manager{
		config: cfg,
		level:  &slog.LevelVar{},
		out:    out,
	}
	m.level.Set(parseLevel(cfg.Level))
	m.install(cfg)

	return m, slog.New(&swapHandler{current: &m.current})
}

func (m *Manager) install(cfg Config) {
	w := m.out
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    positiveOr(cfg.FileMaxSizeMB, 10),
			MaxBackups: positiveOr(cfg.FileMaxFiles, 3),
			MaxAge:     positiveOr(cfg.FileMaxAgeDays, 14),
		}
		m.file = file
		w = io.MultiWriter(m.out, file)
	}

	opts := &slog.HandlerOptions{Level: m.level}
	var h slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	m.current.Store(&h)
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

// Reconfigure applies cfg. A level change takes effect immediately; a format
// or file change rebuilds the handler.
func (m *Manager) Reconfigure(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.level.Set(parseLevel(cfg.Level))

	old := m.config
	if cfg.Format != old.Format || cfg.File != old.File ||
		cfg.FileMaxSizeMB != old.FileMaxSizeMB ||
		cfg.FileMaxFiles != old.FileMaxFiles ||
		cfg.FileMaxAgeDays != old.FileMaxAgeDays {
		if m.file != nil {
			m.file.Close() //nolint:errcheck
			m.file = nil
		}
		m.install(cfg)
	}

	m.config = cfg
}

// Config returns the current configuration.
func (m *Manager) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// Close releases the log file, if any.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file = nil
	return err
}
