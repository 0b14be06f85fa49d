package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/maps"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Num != 3 {
		t.Errorf("expected 3 attractors, got %d", cfg.Num)
	}
	if cfg.Params() != attractor.DefaultParams() {
		t.Errorf("expected default params, got %+v", cfg.Params())
	}
	if cfg.Sensitivity != 500 {
		t.Errorf("expected sensitivity 500, got %f", cfg.Sensitivity)
	}
	if cfg.Width != 800 || cfg.Height != 800 {
		t.Errorf("expected 800x800, got %dx%d", cfg.Width, cfg.Height)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must be valid: %v", err)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")
	data := "num: 5\nwarmup: 200\nbudget: 30s\nlyapunov_threshold: 1e4\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Num != 5 || cfg.Warmup != 200 {
		t.Errorf("expected num 5 warmup 200, got %d %d", cfg.Num, cfg.Warmup)
	}
	if cfg.Budget != 30*time.Second {
		t.Errorf("expected budget 30s, got %s", cfg.Budget)
	}
	if cfg.LyapunovThreshold != 1e4 {
		t.Errorf("expected threshold 1e4, got %g", cfg.LyapunovThreshold)
	}
	if cfg.Iterations != attractor.DefaultMaxIterations {
		t.Errorf("expected default iterations, got %d", cfg.Iterations)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Format = "pgm"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("num: [1, 2"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero iterations", func(c *Config) { c.Iterations = 0 }},
		{"negative warmup", func(c *Config) { c.Warmup = -1 }},
		{"iterations within warmup", func(c *Config) { c.Iterations = 1000 }},
		{"warmup consumes iterations", func(c *Config) { c.Warmup = c.Iterations - 1 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero sensitivity", func(c *Config) { c.Sensitivity = 0 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"negative attempts", func(c *Config) { c.MaxAttempts = -1 }},
		{"negative budget", func(c *Config) { c.Budget = -time.Second }},
		{"unknown format", func(c *Config) { c.Format = "bmp" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets(Presets)
	if len(names) == 0 {
		t.Fatal("expected presets")
	}

	for _, name := range names {
		p, err := GetPreset(Presets, name)
		if err != nil {
			t.Fatalf("preset %s listed but not found: %v", name, err)
		}
		if _, err := maps.Lookup(p.Map, p.Coefficients); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
		if p.Iterations <= 0 {
			t.Errorf("preset %s: expected positive iterations", name)
		}
	}

	_, err := GetPreset(Presets, "nonexistent")
	if err == nil || !strings.Contains(err.Error(), "clifford") {
		t.Errorf("expected unknown preset error listing the available ones, got %v", err)
	}
}

func TestLoadPresetsMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	data := "mine:\n  map: clifford\n  coefficients: [1.5, -1.8, 1.6, 0.9]\n  x: 0.2\n  y: -0.1\n  iterations: 1000\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	presets, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	p, ok := presets["mine"]
	if !ok {
		t.Fatal("expected preset mine")
	}
	if p.Coefficients[1] != -1.8 || p.Coefficients[4] != 0 {
		t.Errorf("unexpected coefficients %v", p.Coefficients)
	}
	if p.Initial != (attractor.Point{X: 0.2, Y: -0.1}) {
		t.Errorf("unexpected initial point %+v", p.Initial)
	}
	if _, err := GetPreset(presets, "clifford"); err != nil {
		t.Error("built-in presets must survive the merge")
	}
	if names := ListPresets(presets); len(names) != len(Presets)+1 {
		t.Errorf("expected %d merged presets, got %v", len(Presets)+1, names)
	}
}

func TestLoadPresetsTooManyCoefficients(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	data := "bad:\n  map: quadratic\n  coefficients: [0,0,0,0,0,0,0,0,0,0,0,0,0]\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadPresets(path); err == nil {
		t.Error("expected error for 13 coefficients")
	}
}
