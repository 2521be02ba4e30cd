package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed presets/*.yaml
var embeddedPresets embed.FS

// Registry is the read-only set of named generation presets. It is
// built once at process start and passed by reference into every
// component that needs a named preset; callers must not mutate the
// configs it returns.
type Registry struct {
	presets map[string]*GenerationConfig
}

// LoadRegistry builds the preset registry. Embedded presets load
// first; YAML files in ./presets and ~/.coursegen/presets override
// them by name. Unreadable override directories are skipped
// silently.
func LoadRegistry() (*Registry, error) {
	r := &Registry{presets: make(map[string]*GenerationConfig)}

	entries, err := embeddedPresets.ReadDir("presets")
	if err != nil {
		return nil, fmt.Errorf("config: reading embedded presets: %w", err)
	}
	for _, entry := range entries {
		data, err := embeddedPresets.ReadFile("presets/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("config: reading embedded preset %s: %w", entry.Name(), err)
		}
		if err := r.addPreset(entry.Name(), data); err != nil {
			return nil, err
		}
	}

	// user overrides, best effort
	r.loadDir("presets")
	if home, err := os.UserHomeDir(); err == nil {
		r.loadDir(filepath.Join(home, ".coursegen", "presets"))
	}

	return r, nil
}

func (r *Registry) loadDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		// an invalid override must not shadow a working embedded preset
		_ = r.addPreset(entry.Name(), data)
	}
}

func (r *Registry) addPreset(filename string, data []byte) error {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("config: parsing preset %s: %w", filename, err)
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filename, ".yaml")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: preset %s: %w", filename, err)
	}
	r.presets[cfg.Name] = &cfg
	return nil
}

// Get returns the preset with the given name.
func (r *Registry) Get(name string) (*GenerationConfig, error) {
	cfg, ok := r.presets[name]
	if !ok {
		return nil, fmt.Errorf("config: unknown preset %q", name)
	}
	return cfg, nil
}

// Names returns all preset names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadPreset reads a single preset from an explicit YAML path,
// bypassing the registry.
func LoadPreset(path string) (*GenerationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}
