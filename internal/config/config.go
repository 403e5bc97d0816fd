// Package config handles reading and writing .vibe/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/berth-dev/vibe/internal/tracker"
)

// Config is the top-level structure for .vibe/config.yaml.
type Config struct {
	Version   int               `yaml:"version"`
	Stack     string            `yaml:"stack"`
	Reminders map[string]string `yaml:"reminders"` // phase name -> duration, e.g. "45m"
	Storage   StorageConfig     `yaml:"storage"`
	Reports   ReportsConfig     `yaml:"reports"`
	Cleanup   CleanupConfig     `yaml:"cleanup"`
}

// StorageConfig controls where sessions are persisted between invocations.
type StorageConfig struct {
	Path string `yaml:"path"` // relative to the project root
}

// ReportsConfig controls where end-of-session reports are written.
type ReportsConfig struct {
	Dir string `yaml:"dir"`
}

// CleanupConfig controls pruning of old report directories.
type CleanupConfig struct {
	MaxAgeDays int `yaml:"max_age_days"`
}

// Dir is the project-local directory holding config, log, database and reports.
const Dir = ".vibe"

const configFile = "config.yaml"

// ReadConfig reads .vibe/config.yaml from the given project directory.
// dir is the project root (not .vibe/ itself).
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, Dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault reads the project config, falling back to DefaultConfig
// when no config file exists. Malformed files are still an error.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return nil, err
}

// WriteConfig writes cfg to .vibe/config.yaml in the given project directory.
// Creates the .vibe/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, Dir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	reminders := make(map[string]string)
	for phase, d := range tracker.DefaultThresholds() {
		reminders[phase.String()] = d.String()
	}

	return &Config{
		Version:   1,
		Reminders: reminders,
		Storage: StorageConfig{
			Path: filepath.Join(Dir, "sessions.db"),
		},
		Reports: ReportsConfig{
			Dir: filepath.Join(Dir, "reports"),
		},
		Cleanup: CleanupConfig{
			MaxAgeDays: 30,
		},
	}
}

// Thresholds converts the reminders section into tracker thresholds.
// Unknown phase names and unparsable durations are reported with the
// offending key.
func (c *Config) Thresholds() (tracker.Thresholds, error) {
	keys := make([]string, 0, len(c.Reminders))
	for k := range c.Reminders {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	th := make(tracker.Thresholds, len(keys))
	for _, k := range keys {
		phase, err := tracker.ParsePhase(k)
		if err != nil {
			return nil, fmt.Errorf("reminders.%s: %w", k, err)
		}
		d, err := time.ParseDuration(c.Reminders[k])
		if err != nil {
			return nil, fmt.Errorf("reminders.%s: %w", k, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("reminders.%s: negative duration %s", k, d)
		}
		th[phase] = d
	}
	return th, nil
}

// StoragePath returns the database path resolved against the project root.
func (c *Config) StoragePath(root string) string {
	return resolve(root, c.Storage.Path, filepath.Join(Dir, "sessions.db"))
}

// ReportsDir returns the reports directory resolved against the project root.
func (c *Config) ReportsDir(root string) string {
	return resolve(root, c.Reports.Dir, filepath.Join(Dir, "reports"))
}

func resolve(root, path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
