package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewManager_DefaultConfig(t *testing.T) {
	var out bytes.Buffer
	mgr, logger := NewManager(DefaultConfig(), &out)
	defer mgr.Close() //nolint:errcheck

	if mgr.Config().Level != "info" {
		t.Errorf("expected level info, got %s", mgr.Config().Level)
	}

	logger.Info("thresholds updated", "acceptable", 0.5)
	if !strings.Contains(out.String(), "thresholds updated") || !strings.Contains(out.String(), "acceptable=0.5") {
		t.Errorf("unexpected text output %q", out.String())
	}

	logger.Debug("hidden")
	if strings.Contains(out.String(), "hidden") {
		t.Error("debug records should be dropped at info level")
	}
}

func TestManager_LevelSwap(t *testing.T) {
	var out bytes.Buffer
	mgr, logger := NewManager(Config{Level: "info", Format: "text"}, &out)
	defer mgr.Close() //nolint:errcheck

	ctx := context.Background()
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("expected debug to be disabled")
	}

	mgr.Reconfigure(Config{Level: "debug", Format: "text"})
	if !logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("expected debug to be enabled after reconfigure")
	}

	mgr.Reconfigure(Config{Level: "error", Format: "text"})
	if logger.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected info to be disabled when level is error")
	}
}

func TestManager_FormatSwapKeepsDerivedLoggers(t *testing.T) {
	var out bytes.Buffer
	mgr, logger := NewManager(Config{Level: "info", Format: "text"}, &out)
	defer mgr.Close() //nolint:errcheck

	component := logger.With("component", "reload").WithGroup("config")

	mgr.Reconfigure(Config{Level: "info", Format: "json"})
	out.Reset()
	component.Info("reloaded", "path", "songmatch.yaml")

	var record map[string]any
	if err := json.Unmarshal(out.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output after reconfigure, got %q: %v", out.String(), err)
	}
	if record["component"] != "reload" {
		t.Errorf("component = %v, expected reload", record["component"])
	}
	group, ok := record["config"].(map[string]any)
	if !ok || group["path"] != "songmatch.yaml" {
		t.Errorf("config group = %v, expected path attribute", record["config"])
	}
}

func TestManager_FileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "songmatch.log")

	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.File = logFile
	mgr, logger := NewManager(cfg, &out)

	logger.Info("written to file")
	if err := mgr.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file content %q missing record", data)
	}
	if !strings.Contains(out.String(), "written to file") {
		t.Error("record should also reach the primary writer")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"upper case", Config{Level: "WARN", Format: "JSON"}, false},
		{"bad level", Config{Level: "verbose", Format: "text"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
