// coursegen generates 2D tile-grid obstacle-course maps from a seed
// and a named difficulty preset.
//
// Usage:
//
//	coursegen generate            - Generate a map
//	coursegen presets             - List available presets
//	coursegen runs                - Show recent generation runs
//	coursegen kernels             - Inspect valid kernel radii
//
// Global flags:
//
//	--db <path>     - Set run history database path (default: ~/.coursegen/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coursegen",
	Short: "Procedural obstacle-course map generator",
	Long: `coursegen carves playable obstacle-course maps into a solid tile
grid using a seeded random walker, then post-processes the result
into a finished course with start and finish rooms.

Available commands:
  generate - Generate a map from a preset and seed
  presets  - Show all named difficulty presets
  runs     - Show recent generation runs
  kernels  - Inspect the valid kernel radius table

Examples:
  coursegen generate --preset hard --seed 42
  coursegen generate --preset insane --seed "ice palace" --preview
  coursegen presets
  coursegen runs --limit 20
  coursegen kernels --max-size 9`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.coursegen/runs.db", "Path to run history database")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(kernelsCmd)
}
