// Package config loads user configuration from a YAML file with
// environment-variable overrides (DISKSCOPE_* prefix).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/dhealth/diskscope/smart"
)

// BenchmarkConfig controls the read benchmark.
type BenchmarkConfig struct {
	BlockSize int `yaml:"block_size" envconfig:"BENCH_BLOCK_SIZE"`
	Samples   int `yaml:"samples" envconfig:"BENCH_SAMPLES"`
}

// LogConfig controls the zerolog output. The TUI owns the terminal, so
// logs go to a file.
type LogConfig struct {
	Path  string `yaml:"path" envconfig:"LOG_PATH"`
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`
}

// Config holds all user-configurable settings.
type Config struct {
	// ToolTimeoutSec bounds every lsblk/smartctl invocation.
	ToolTimeoutSec int `yaml:"tool_timeout_sec" envconfig:"TOOL_TIMEOUT_SEC"`

	Benchmark BenchmarkConfig `yaml:"benchmark"`

	// HistoryPath is the SQLite database for explicitly saved runs.
	HistoryPath string `yaml:"history_path" envconfig:"HISTORY_PATH"`

	Log LogConfig `yaml:"log"`

	// Rules overrides entries of the built-in classification table.
	Rules smart.RuleSet `yaml:"rules"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ToolTimeoutSec: 15,
		Benchmark: BenchmarkConfig{
			BlockSize: 4 * 1024 * 1024,
			Samples:   100,
		},
		HistoryPath: filepath.Join(dataDir(), "history.db"),
		Log: LogConfig{
			Path:  filepath.Join(dataDir(), "diskscope.log"),
			Level: "info",
		},
		Rules: smart.DefaultRules(),
	}
}

// Path returns ~/.config/diskscope/config.yaml (or XDG_CONFIG_HOME).
// Returns empty string when no home directory can be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "diskscope", "config.yaml")
}

func dataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "diskscope")
}

// Load reads the YAML file at path (missing file is fine), then applies
// DISKSCOPE_* environment overrides. YAML values overlay the defaults
// field by field, so a partial file keeps the rest of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults apply
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process("diskscope", &cfg); err != nil {
		return cfg, fmt.Errorf("process environment: %w", err)
	}
	return cfg, nil
}

// ToolTimeout returns the tool invocation deadline as a duration.
func (c Config) ToolTimeout() time.Duration {
	if c.ToolTimeoutSec <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.ToolTimeoutSec) * time.Second
}
