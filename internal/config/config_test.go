package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/berth-dev/vibe/internal/tracker"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Stack = "react"
	cfg.Reminders["exploring"] = "45m"
	cfg.Cleanup.MaxAgeDays = 7

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.Stack != "react" {
		t.Errorf("Stack: got %q, want %q", loaded.Stack, "react")
	}
	if loaded.Reminders["exploring"] != "45m" {
		t.Errorf("Reminders.exploring: got %q, want %q", loaded.Reminders["exploring"], "45m")
	}
	if loaded.Cleanup.MaxAgeDays != 7 {
		t.Errorf("Cleanup.MaxAgeDays: got %d, want 7", loaded.Cleanup.MaxAgeDays)
	}
}

func TestDefaultConfigThresholdsMatchTracker(t *testing.T) {
	th, err := DefaultConfig().Thresholds()
	if err != nil {
		t.Fatalf("Thresholds: %v", err)
	}
	want := tracker.DefaultThresholds()
	if len(th) != len(want) {
		t.Fatalf("got %d thresholds, want %d", len(th), len(want))
	}
	for phase, d := range want {
		if th[phase] != d {
			t.Errorf("%s: got %v, want %v", phase, th[phase], d)
		}
	}
}

func TestThresholds_Errors(t *testing.T) {
	tests := []struct {
		name      string
		reminders map[string]string
		wantKey   string
	}{
		{"unknown phase", map[string]string{"deploying": "10m"}, "reminders.deploying"},
		{"bad duration", map[string]string{"validating": "soon"}, "reminders.validating"},
		{"negative", map[string]string{"reviewing": "-5m"}, "reminders.reviewing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Reminders: tt.reminders}
			_, err := cfg.Thresholds()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("error %q does not name %q", err, tt.wantKey)
			}
		})
	}
}

func TestThresholds_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	raw := `version: 1
stack: cpp
reminders:
  vibe: 90m
  structuring: 2h
`
	if err := os.MkdirAll(filepath.Join(tmpDir, Dir), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, Dir, "config.yaml"), []byte(raw), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	th, err := cfg.Thresholds()
	if err != nil {
		t.Fatalf("Thresholds: %v", err)
	}
	if th[tracker.Exploring] != 90*time.Minute || th[tracker.Structuring] != 2*time.Hour {
		t.Errorf("thresholds = %v", th)
	}
	if _, ok := th[tracker.Validating]; ok {
		t.Error("validating should be absent")
	}
}

func TestLoadOrDefault(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadOrDefault(tmpDir)
	if err != nil {
		t.Fatalf("LoadOrDefault on empty dir: %v", err)
	}
	if cfg.Cleanup.MaxAgeDays != 30 {
		t.Errorf("expected defaults, got %+v", cfg)
	}

	if err := os.MkdirAll(filepath.Join(tmpDir, Dir), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, Dir, "config.yaml"), []byte("reminders: [oops"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadOrDefault(tmpDir); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestResolvedPaths(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.StoragePath("/proj"); got != filepath.Join("/proj", ".vibe", "sessions.db") {
		t.Errorf("StoragePath = %q", got)
	}

	cfg.Reports.Dir = "/var/reports"
	if got := cfg.ReportsDir("/proj"); got != "/var/reports" {
		t.Errorf("ReportsDir = %q", got)
	}

	empty := &Config{}
	if got := empty.ReportsDir("/proj"); got != filepath.Join("/proj", ".vibe", "reports") {
		t.Errorf("ReportsDir fallback = %q", got)
	}
}
