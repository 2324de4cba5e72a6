package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Limits.MaxDepth != 500 || cfg.Limits.MaxResults != 128 {
		t.Fatalf("defaults = %+v", cfg.Limits)
	}
}

func TestParseFillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("limits:\n  max_depth: 7\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Limits.MaxDepth != 7 {
		t.Errorf("max_depth = %d, want 7", cfg.Limits.MaxDepth)
	}
	if cfg.Limits.MaxResults != 128 {
		t.Errorf("max_results = %d, want the default 128", cfg.Limits.MaxResults)
	}
}

func TestParseDisabledBrains(t *testing.T) {
	cfg, err := Parse([]byte("disabled_brains:\n  - six-brain\n  - re-brain\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.DisabledBrains) != 2 || cfg.DisabledBrains[0] != "six-brain" {
		t.Fatalf("disabled_brains = %v", cfg.DisabledBrains)
	}
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("limits: [not a mapping")); err == nil {
		t.Fatal("invalid YAML should be rejected")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.yaml")
	data := "limits:\n  max_depth: 9\n  max_results: 3\ndisabled_brains: [six-brain]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Limits.MaxDepth != 9 || cfg.Limits.MaxResults != 3 {
		t.Errorf("limits = %+v", cfg.Limits)
	}
	if len(cfg.DisabledBrains) != 1 {
		t.Errorf("disabled_brains = %v", cfg.DisabledBrains)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should be reported")
	}
}
