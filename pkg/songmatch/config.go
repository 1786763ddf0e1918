package songmatch

import (
	"log/slog"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/cache"
)

// DefaultMaxComboArtists is the default number of artists combined with title forms.
const DefaultMaxComboArtists = 5

// Config is the configuration for a Matcher.
type Config struct {
	// Thresholds are the initial tier boundaries
	Thresholds ThresholdConfig
	// MaxComboArtists caps how many artists are combined with title forms (0 = no cap)
	MaxComboArtists int
	// FoldAccents strips diacritics from guesses and variants before scoring
	FoldAccents bool
	// Logger receives threshold changes and per-call verdicts
	Logger *slog.Logger
	// Cache memoizes best scores; nil disables caching
	Cache cache.Cache
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Thresholds:      DefaultThresholds(),
		MaxComboArtists: DefaultMaxComboArtists,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.MaxComboArtists < 0 {
		return &ConfigError{Field: "max_combo_artists", Details: "must not be negative"}
	}
	return nil
}

// Option is a functional option for configuring the Matcher.
type Option func(*Config)

// WithThresholds sets the initial tier boundaries.
func WithThresholds(t ThresholdConfig) Option {
	return func(c *Config) {
		c.Thresholds = t
	}
}

// WithMaxComboArtists sets how many artists are combined with title forms.
func WithMaxComboArtists(n int) Option {
	return func(c *Config) {
		c.MaxComboArtists = n
	}
}

// WithAccentFolding enables or disables diacritic folding.
func WithAccentFolding(enabled bool) Option {
	return func(c *Config) {
		c.FoldAccents = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithCache enables memoization of best scores in c.
func WithCache(c cache.Cache) Option {
	return func(cfg *Config) {
		cfg.Cache = c
	}
}
