package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PollIntervalMs <= 0 {
		t.Error("Expected positive poll interval")
	}
	if cfg.StepTimeoutMs < cfg.PollIntervalMs {
		t.Error("Step timeout must cover at least one poll")
	}
	if cfg.BridgeEventBatch <= 0 {
		t.Error("Expected positive bridge batch")
	}
	if cfg.SecPerStep != 0 {
		t.Errorf("SecPerStep default must defer to run meta, got %d", cfg.SecPerStep)
	}
}

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "no_such.yaml"))
	if err != nil {
		t.Fatalf("Missing config must not be an error, got %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Expected pure defaults, got %+v", cfg)
	}
}

func TestLoadConfig_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hq.yaml")
	yaml := "sec_per_step: 5\naddr: \":9090\"\nstorage_root: /data/runs\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.SecPerStep != 5 {
		t.Errorf("Expected sec_per_step 5, got %d", cfg.SecPerStep)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Expected addr :9090, got %q", cfg.Addr)
	}
	if cfg.StorageRoot != "/data/runs" {
		t.Errorf("Expected storage root override, got %q", cfg.StorageRoot)
	}
	// Незатронутые поля остаются дефолтными.
	if cfg.PollIntervalMs != DefaultConfig().PollIntervalMs {
		t.Errorf("Poll interval must keep its default, got %d", cfg.PollIntervalMs)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"negative poll":      "poll_interval_ms: -5\n",
		"timeout under poll": "poll_interval_ms: 500\nstep_timeout_ms: 100\n",
		"negative secs":      "sec_per_step: -1\n",
		"broken yaml":        "sec_per_step: [\n",
	}

	for name, yaml := range cases {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("Expected error for %s", name)
		}
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PollIntervalMs = 250
	cfg.StepTimeoutMs = 3000

	if got := cfg.PollInterval().String(); got != "250ms" {
		t.Errorf("Expected 250ms, got %s", got)
	}
	if got := cfg.StepTimeout().String(); got != "3s" {
		t.Errorf("Expected 3s, got %s", got)
	}
}

func TestLoadConfig_ErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hq.yaml")
	if err := os.WriteFile(path, []byte("poll_interval_ms: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "hq.yaml") {
		t.Errorf("Config error must name the file, got %v", err)
	}
}
