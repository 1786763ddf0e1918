package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MXASoundNDEv/MxSpotyBrokenEyeTest-sub000/pkg/songmatch"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "songmatch.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Thresholds != songmatch.DefaultThresholds() {
		t.Errorf("Default thresholds = %+v", cfg.Thresholds)
	}
}

func TestLoadWithoutPath(t *testing.T) {
	cfg, err := Load(LoadOptions{Env: map[string]string{}})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, expected defaults", cfg)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
thresholds:
  acceptable: 0.6
  good: 0.7
  excellent: 0.85
  perfect: 0.97
matcher:
  max_combo_artists: 2
  fold_accents: true
cache:
  enabled: true
  max_size: 50
evaluation:
  workers: 8
logging:
  level: debug
  format: json
`)

	cfg, err := Load(LoadOptions{Path: path, Env: map[string]string{}})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	expected := songmatch.ThresholdConfig{Acceptable: 0.6, Good: 0.7, Excellent: 0.85, Perfect: 0.97}
	if cfg.Thresholds != expected {
		t.Errorf("Thresholds = %+v, expected %+v", cfg.Thresholds, expected)
	}
	if cfg.Matcher.MaxComboArtists != 2 || !cfg.Matcher.FoldAccents {
		t.Errorf("Matcher = %+v", cfg.Matcher)
	}
	if !cfg.Cache.Enabled || cfg.Cache.MaxSize != 50 || cfg.Cache.TTLSeconds != 3600 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Evaluation.Workers != 8 {
		t.Errorf("Workers = %d, expected 8", cfg.Evaluation.Workers)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" || cfg.Logging.FileMaxFiles != 3 {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "thresholds:\n  acceptable: 0.55\n")

	cfg, err := Load(LoadOptions{Path: path, Env: map[string]string{}})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Thresholds.Acceptable != 0.55 || cfg.Thresholds.Perfect != 0.95 {
		t.Errorf("Thresholds = %+v", cfg.Thresholds)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(LoadOptions{Path: writeConfig(t, ""), Env: map[string]string{}})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(empty) = %+v, expected defaults", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		errPart string
	}{
		{"unknown field", "matcher:\n  combos: 3\n", nil, "combos"},
		{"bad yaml", "thresholds: [", nil, "parse"},
		{"unordered thresholds", "thresholds:\n  good: 0.4\n", nil, "thresholds.good"},
		{"negative combo cap", "matcher:\n  max_combo_artists: -1\n", nil, "max_combo_artists"},
		{"zero workers", "evaluation:\n  workers: 0\n", nil, "workers"},
		{"bad log level", "logging:\n  level: loud\n", nil, "log level"},
		{"bad float env", "", map[string]string{"SONGMATCH_GOOD": "high"}, "SONGMATCH_GOOD"},
		{"bad int env", "", map[string]string{"SONGMATCH_WORKERS": "many"}, "SONGMATCH_WORKERS"},
		{"bad bool env", "", map[string]string{"SONGMATCH_CACHE": "maybe"}, "SONGMATCH_CACHE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := tt.env
			if env == nil {
				env = map[string]string{}
			}
			_, err := Load(LoadOptions{Path: writeConfig(t, tt.content), Env: env})
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q does not mention %q", err, tt.errPart)
			}
		})
	}
}

func TestLoadThresholdErrorIsConfigError(t *testing.T) {
	_, err := Load(LoadOptions{Path: writeConfig(t, "thresholds:\n  perfect: 1.5\n"), Env: map[string]string{}})
	if !errors.Is(err, songmatch.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(LoadOptions{Path: filepath.Join(t.TempDir(), "missing.yaml"), Env: map[string]string{}})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "thresholds:\n  acceptable: 0.55\nlogging:\n  level: warn\n")
	env := map[string]string{
		"SONGMATCH_ACCEPTABLE":        "0.6",
		"SONGMATCH_MAX_COMBO_ARTISTS": "0",
		"SONGMATCH_FOLD_ACCENTS":      "true",
		"SONGMATCH_CACHE":             "1",
		"SONGMATCH_WORKERS":           "2",
		"SONGMATCH_LOG_LEVEL":         "debug",
		"SONGMATCH_LOG_FORMAT":        "json",
		"SONGMATCH_LOG_FILE":          "/tmp/songmatch.log",
	}

	cfg, err := Load(LoadOptions{Path: path, Env: env})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Thresholds.Acceptable != 0.6 {
		t.Errorf("Acceptable = %v, expected 0.6", cfg.Thresholds.Acceptable)
	}
	if cfg.Matcher.MaxComboArtists != 0 || !cfg.Matcher.FoldAccents {
		t.Errorf("Matcher = %+v", cfg.Matcher)
	}
	if !cfg.Cache.Enabled || cfg.Evaluation.Workers != 2 {
		t.Errorf("Cache = %+v, Evaluation = %+v", cfg.Cache, cfg.Evaluation)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" || cfg.Logging.File != "/tmp/songmatch.log" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestNewMatcher(t *testing.T) {
	cfg := Default()
	cfg.Thresholds.Acceptable = 0.6
	cfg.Cache.Enabled = true

	matcher, err := cfg.NewMatcher(nil)
	if err != nil {
		t.Fatalf("NewMatcher() error: %v", err)
	}
	if matcher.Thresholds() != cfg.Thresholds {
		t.Errorf("Thresholds() = %+v, expected %+v", matcher.Thresholds(), cfg.Thresholds)
	}

	result := matcher.CheckMatch("bohemian rhapsody", songmatch.NewTrack("Bohemian Rhapsody", "Queen"))
	if !result.IsValid || result.Quality != songmatch.Perfect {
		t.Errorf("CheckMatch() = %+v", result)
	}
}

func TestNewCacheTTL(t *testing.T) {
	cfg := Default()
	cfg.Cache.MaxSize = 2
	cfg.Cache.TTLSeconds = 0

	c := cfg.NewCache()
	defer c.Close() //nolint:errcheck

	stats, err := c.Stats(t.Context())
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if stats.MaxSize != 2 {
		t.Errorf("MaxSize = %d, expected 2", stats.MaxSize)
	}
}
