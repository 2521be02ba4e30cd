package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mapforge/coursegen/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List all named difficulty presets",
	Long: `Shows every preset the generator knows: the embedded defaults plus
any YAML files found in ./presets or ~/.coursegen/presets.`,
	RunE: runPresets,
}

func runPresets(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}

	names := registry.Names()
	if len(names) == 0 {
		fmt.Println("No presets available.")
		return nil
	}

	fmt.Println("Available presets:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, name := range names {
		if len(name) > maxNameLen {
			maxNameLen = len(name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-9s  %s\n", maxNameLen, "Name", "Size", "Waypoints")
	fmt.Printf("  %-*s  %-9s  %s\n", maxNameLen, "----", "----", "---------")

	for _, name := range names {
		cfg, err := registry.Get(name)
		if err != nil {
			return err
		}
		size := fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)
		fmt.Printf("  %-*s  %-9s  %d\n", maxNameLen, name, size, len(cfg.Waypoints))
	}

	fmt.Println()
	fmt.Println("Run 'coursegen generate --preset <name>' to use a preset.")
	return nil
}
