package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ToolTimeoutSec != 15 {
		t.Errorf("ToolTimeoutSec = %d", cfg.ToolTimeoutSec)
	}
	if cfg.Benchmark.BlockSize != 4*1024*1024 || cfg.Benchmark.Samples != 100 {
		t.Errorf("Benchmark = %+v", cfg.Benchmark)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Rules.NVMeSpareFloor != 10 || cfg.Rules.NVMeUsedCeiling != 80 {
		t.Errorf("Rules = %+v", cfg.Rules)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ToolTimeoutSec != 15 {
		t.Errorf("missing file should keep defaults, got timeout %d", cfg.ToolTimeoutSec)
	}
}

func TestLoadPartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `tool_timeout_sec: 30
benchmark:
  samples: 50
rules:
  nvme_spare_floor: 20
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ToolTimeoutSec != 30 {
		t.Errorf("ToolTimeoutSec = %d, want 30", cfg.ToolTimeoutSec)
	}
	if cfg.Benchmark.Samples != 50 {
		t.Errorf("Benchmark.Samples = %d, want 50", cfg.Benchmark.Samples)
	}
	// untouched fields keep their defaults
	if cfg.Benchmark.BlockSize != 4*1024*1024 {
		t.Errorf("Benchmark.BlockSize = %d, want default", cfg.Benchmark.BlockSize)
	}
	if cfg.Rules.NVMeSpareFloor != 20 {
		t.Errorf("Rules.NVMeSpareFloor = %d, want 20", cfg.Rules.NVMeSpareFloor)
	}
	if cfg.Rules.NVMeUsedCeiling != 80 {
		t.Errorf("Rules.NVMeUsedCeiling = %d, want default 80", cfg.Rules.NVMeUsedCeiling)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DISKSCOPE_TOOL_TIMEOUT_SEC", "60")
	t.Setenv("DISKSCOPE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ToolTimeoutSec != 60 {
		t.Errorf("ToolTimeoutSec = %d, want 60 (env override)", cfg.ToolTimeoutSec)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tool_timeout_sec: [not, a, number]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestToolTimeout(t *testing.T) {
	if got := (Config{ToolTimeoutSec: 5}).ToolTimeout(); got != 5*time.Second {
		t.Errorf("ToolTimeout = %v", got)
	}
	if got := (Config{}).ToolTimeout(); got != 15*time.Second {
		t.Errorf("zero ToolTimeout = %v, want fallback 15s", got)
	}
}
