package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/atlascore/physics"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
	if cfg.Source != "" {
		t.Errorf("Expected empty source for a missing file, got %q", cfg.Source)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	doc := "physics:\n  substeps: 8\nenvironment:\n  wind_x: 1.5\nrunner:\n  scenario: stacking\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Physics.Substeps != 8 {
		t.Errorf("Expected substeps 8, got %d", cfg.Physics.Substeps)
	}
	if cfg.Physics.PositionIterations != physics.DefaultSettings().PositionIterations {
		t.Errorf("Expected default position iterations, got %d", cfg.Physics.PositionIterations)
	}
	if cfg.Environment.WindX != 1.5 || cfg.Environment.GravityY != Default().Environment.GravityY {
		t.Errorf("Unexpected environment %+v", cfg.Environment)
	}
	if cfg.Runner.Scenario != "stacking" || cfg.Runner.FPS != 60 {
		t.Errorf("Unexpected runner %+v", cfg.Runner)
	}
	if cfg.Source != path {
		t.Errorf("Expected source %q, got %q", path, cfg.Source)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sim.yaml")
	cfg := Default()
	cfg.Runner.Scenario = "fluid"
	cfg.Runner.Headless = true
	cfg.Physics.PenetrationSlop = 0.02

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.Source = path
	if got != cfg {
		t.Errorf("Expected %+v, got %+v", cfg, got)
	}
}

func TestLoadErrorsCarryPath(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"malformed", "physics: [unclosed", "parse config"},
		{"invalid fps", "runner:\n  fps: 0\n", "runner.fps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.want) || !strings.Contains(err.Error(), path) {
				t.Errorf("Expected %q and path in error, got %v", tt.want, err)
			}
			if cfg != Default() {
				t.Error("Expected defaults on error")
			}
		})
	}
}
