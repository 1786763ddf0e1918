// Package config loads the songmatch CLI configuration from YAML and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/internal/logging"
	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/cache"
	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/songmatch"
)

// EnvConfigPath names the variable holding the default config file path.
const EnvConfigPath = "SONGMATCH_CONFIG"

// Config holds all CLI configuration.
type Config struct {
	Thresholds songmatch.ThresholdConfig `yaml:"thresholds"`
	Matcher    MatcherConfig             `yaml:"matcher"`
	Cache      CacheConfig               `yaml:"cache"`
	Evaluation EvaluationConfig          `yaml:"evaluation"`
	Logging    logging.Config            `yaml:"logging"`
}

// MatcherConfig holds variant generation and normalization settings.
type MatcherConfig struct {
	MaxComboArtists int  `yaml:"max_combo_artists"`
	FoldAccents     bool `yaml:"fold_accents"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxSize    int  `yaml:"max_size"`
	TTLSeconds int  `yaml:"ttl_seconds"`
}

// EvaluationConfig holds batch evaluation settings.
type EvaluationConfig struct {
	Workers int `yaml:"workers"`
}

// LoadOptions controls where Load reads from.
type LoadOptions struct {
	// Path is the config file. Empty means defaults plus environment only.
	Path string
	// Env replaces the process environment when non-nil.
	Env map[string]string
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Thresholds: songmatch.DefaultThresholds(),
		Matcher: MatcherConfig{
			MaxComboArtists: songmatch.DefaultMaxComboArtists,
		},
		Cache: CacheConfig{
			MaxSize:    10000,
			TTLSeconds: 3600,
		},
		Evaluation: EvaluationConfig{
			Workers: 4,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads config from a YAML file (if a path is given) and overrides it
// with environment variables. Environment variables take precedence.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(opts.Path); path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return Config{}, fmt.Errorf("loading config file: %w", err)
		}
	}

	env := opts.Env
	if env == nil {
		env = osEnvMap()
	}
	if err := cfg.loadFromEnv(env); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadFromEnv(env map[string]string) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"SONGMATCH_ACCEPTABLE", &c.Thresholds.Acceptable},
		{"SONGMATCH_GOOD", &c.Thresholds.Good},
		{"SONGMATCH_EXCELLENT", &c.Thresholds.Excellent},
		{"SONGMATCH_PERFECT", &c.Thresholds.Perfect},
	}
	for _, f := range floats {
		if v := env[f.key]; v != "" {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", f.key, v, err)
			}
			*f.dst = parsed
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"SONGMATCH_MAX_COMBO_ARTISTS", &c.Matcher.MaxComboArtists},
		{"SONGMATCH_WORKERS", &c.Evaluation.Workers},
	}
	for _, f := range ints {
		if v := env[f.key]; v != "" {
			parsed, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", f.key, v, err)
			}
			*f.dst = parsed
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"SONGMATCH_FOLD_ACCENTS", &c.Matcher.FoldAccents},
		{"SONGMATCH_CACHE", &c.Cache.Enabled},
	}
	for _, f := range bools {
		if v := env[f.key]; v != "" {
			parsed, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", f.key, v, err)
			}
			*f.dst = parsed
		}
	}

	if v := env["SONGMATCH_LOG_LEVEL"]; v != "" {
		c.Logging.Level = v
	}
	if v := env["SONGMATCH_LOG_FORMAT"]; v != "" {
		c.Logging.Format = v
	}
	if v := env["SONGMATCH_LOG_FILE"]; v != "" {
		c.Logging.File = v
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.Matcher.MaxComboArtists < 0 {
		return fmt.Errorf("matcher.max_combo_artists must not be negative, got %d", c.Matcher.MaxComboArtists)
	}
	if c.Cache.MaxSize < 0 {
		return fmt.Errorf("cache.max_size must not be negative, got %d", c.Cache.MaxSize)
	}
	if c.Evaluation.Workers < 1 {
		return fmt.Errorf("evaluation.workers must be at least 1, got %d", c.Evaluation.Workers)
	}
	return c.Logging.Validate()
}

// MatcherOptions translates the config into songmatch options.
func (c Config) MatcherOptions(logger *slog.Logger) []songmatch.Option {
	opts := []songmatch.Option{
		songmatch.WithThresholds(c.Thresholds),
		songmatch.WithMaxComboArtists(c.Matcher.MaxComboArtists),
		songmatch.WithAccentFolding(c.Matcher.FoldAccents),
		songmatch.WithLogger(logger),
	}
	if c.Cache.Enabled {
		opts = append(opts, songmatch.WithCache(c.NewCache()))
	}
	return opts
}

// NewCache builds the in-memory result cache described by the cache section.
// A non-positive TTL keeps entries until they are evicted.
func (c Config) NewCache() *cache.MemoryCache {
	ttl := time.Duration(c.Cache.TTLSeconds) * time.Second
	if c.Cache.TTLSeconds <= 0 {
		ttl = -1
	}
	return cache.NewMemoryCache(
		cache.WithMaxSize(c.Cache.MaxSize),
		cache.WithDefaultTTL(ttl),
	)
}

// NewMatcher builds a Matcher from the config.
func (c Config) NewMatcher(logger *slog.Logger) (*songmatch.Matcher, error) {
	return songmatch.NewMatcher(c.MatcherOptions(logger)...)
}

func osEnvMap() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok {
			env[key] = value
		}
	}
	return env
}
