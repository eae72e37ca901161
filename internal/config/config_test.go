package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ScopeID != "default" {
		t.Fatalf("scope_id = %q", cfg.ScopeID)
	}
	if cfg.List.EstimatedRowHeight != 2 || cfg.List.Overscan != 4 {
		t.Fatalf("unexpected list defaults: %+v", cfg.List)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("scope_id: engagement-7\nlist:\n  overscan: 8\n  plain_threshold: 50\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ScopeID != "engagement-7" {
		t.Fatalf("scope_id = %q", cfg.ScopeID)
	}
	if cfg.List.Overscan != 8 || cfg.List.PlainThreshold != 50 {
		t.Fatalf("list config = %+v", cfg.List)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
	// Unset file keys keep defaults.
	if cfg.List.EstimatedRowHeight != 2 {
		t.Fatalf("estimated_row_height = %d", cfg.List.EstimatedRowHeight)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scope_id: from-file\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REVY_SCOPE_ID", "from-env")
	t.Setenv("REVY_OVERSCAN", "12")
	t.Setenv("REVY_DEMO_SEED", "yes")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ScopeID != "from-env" {
		t.Fatalf("scope_id = %q", cfg.ScopeID)
	}
	if cfg.List.Overscan != 12 {
		t.Fatalf("overscan = %d", cfg.List.Overscan)
	}
	if !cfg.DemoSeed {
		t.Fatal("expected demo seed enabled")
	}
}

func TestEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("REVY_OVERSCAN", "lots")
	t.Setenv("REVY_DEMO_SEED", "maybe")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.List.Overscan != 4 {
		t.Fatalf("overscan = %d", cfg.List.Overscan)
	}
	if cfg.DemoSeed {
		t.Fatal("demo seed should stay off")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty db path", func(c *Config) { c.DBPath = "" }},
		{"empty scope", func(c *Config) { c.ScopeID = "" }},
		{"zero row height", func(c *Config) { c.List.EstimatedRowHeight = 0 }},
		{"negative overscan", func(c *Config) { c.List.Overscan = -1 }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
