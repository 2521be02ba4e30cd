package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mapforge/coursegen/internal/core"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig failed Validate: %v", err)
	}
	if err := cfg.ValidateGeometry(); err != nil {
		t.Errorf("DefaultConfig failed ValidateGeometry: %v", err)
	}
}

func TestDefaultSkipConfigValid(t *testing.T) {
	cfg := DefaultSkipConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultSkipConfig failed Validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GenerationConfig)
	}{
		{"probability above one", func(c *GenerationConfig) { c.InnerSizeMutProb = 1.5 }},
		{"negative probability", func(c *GenerationConfig) { c.MomentumProb = -0.1 }},
		{"wrong shift weight count", func(c *GenerationConfig) { c.ShiftWeights = []float64{1, 2, 3} }},
		{"zero shift weights", func(c *GenerationConfig) { c.ShiftWeights = []float64{0, 0, 0, 0} }},
		{"no inner sizes", func(c *GenerationConfig) { c.InnerSizeProbs = nil }},
		{"even inner size", func(c *GenerationConfig) {
			c.InnerSizeProbs = []WeightedInt{{Value: 4, Weight: 1}}
		}},
		{"odd outer margin", func(c *GenerationConfig) {
			c.OuterMarginProbs = []WeightedInt{{Value: 1, Weight: 1}}
		}},
		{"no circularities", func(c *GenerationConfig) { c.CircularityProbs = nil }},
		{"inverted skip bounds", func(c *GenerationConfig) { c.SkipMinLength = 9; c.SkipMaxLength = 3 }},
		{"inverted platform bounds", func(c *GenerationConfig) {
			c.PlatformMinDistance = 700
			c.PlatformMaxDistance = 200
		}},
		{"zero lock delay", func(c *GenerationConfig) { c.LockDelay = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidateGeometryRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GenerationConfig)
	}{
		{"zero width", func(c *GenerationConfig) { c.Width = 0 }},
		{"spawn outside", func(c *GenerationConfig) { c.Spawn = core.P(400, 50) }},
		{"no waypoints", func(c *GenerationConfig) { c.Waypoints = nil }},
		{"waypoint outside", func(c *GenerationConfig) {
			c.Waypoints = append(c.Waypoints, core.P(-1, 10))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.ValidateGeometry(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("ValidateGeometry() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestMaxInnerSize(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.MaxInnerSize(); got != 7 {
		t.Errorf("MaxInnerSize() = %d, want 7", got)
	}
}

func TestLoadRegistryEmbeddedPresets(t *testing.T) {
	registry, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry() failed: %v", err)
	}

	for _, name := range []string{"easy", "hard", "insane", "skips"} {
		cfg, err := registry.Get(name)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", name, err)
			continue
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("embedded preset %q invalid: %v", name, err)
		}
	}

	if _, err := registry.Get("nope"); err == nil {
		t.Error("Get() of unknown preset expected error")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	registry, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry() failed: %v", err)
	}

	names := registry.Names()
	if len(names) < 4 {
		t.Fatalf("expected at least 4 presets, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i] < names[i-1] {
			t.Fatalf("preset names not sorted: %v", names)
		}
	}
}

func TestLoadPresetOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")

	data := []byte(`
name: custom
width: 120
height: 80
spawn: {x: 10, y: 40}
waypoints:
  - {x: 100, y: 40}
momentum_prob: 0.05
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset() failed: %v", err)
	}

	if cfg.Width != 120 || cfg.Height != 80 {
		t.Errorf("dimensions = %dx%d, want 120x80", cfg.Width, cfg.Height)
	}
	if cfg.MomentumProb != 0.05 {
		t.Errorf("momentum_prob = %v, want 0.05", cfg.MomentumProb)
	}

	// unspecified fields keep the defaults
	def := DefaultConfig()
	if cfg.FadeSteps != def.FadeSteps {
		t.Errorf("fade_steps = %d, want default %d", cfg.FadeSteps, def.FadeSteps)
	}
	if len(cfg.ShiftWeights) != 4 {
		t.Errorf("shift_weights = %v, want defaults", cfg.ShiftWeights)
	}
}

func TestLoadPresetRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")

	data := []byte("momentum_prob: 3.0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := LoadPreset(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadPreset() error = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Name = "roundtrip"
	cfg.EnablePulse = true

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	var decoded GenerationConfig
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}

	if decoded.Name != "roundtrip" || !decoded.EnablePulse {
		t.Errorf("scalar fields lost: %+v", decoded)
	}
	if len(decoded.Waypoints) != len(cfg.Waypoints) || decoded.Waypoints[1] != cfg.Waypoints[1] {
		t.Errorf("waypoints lost: %v", decoded.Waypoints)
	}
	if len(decoded.InnerSizeProbs) != len(cfg.InnerSizeProbs) {
		t.Errorf("distributions lost: %v", decoded.InnerSizeProbs)
	}
}
