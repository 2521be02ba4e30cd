package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mapforge/coursegen/internal/kernel"
)

var (
	flagKernelMaxSize int
	flagKernelDraw    bool
)

var kernelsCmd = &cobra.Command{
	Use:   "kernels",
	Short: "Inspect the valid kernel radius table",
	Long: `Prints the permissible squared radii per kernel size. These are the
radii whose footprints activate whole anti-diagonal rows at the
corners, so stamping them never leaves single-cell protrusions.

Examples:
  coursegen kernels
  coursegen kernels --max-size 13 --draw`,
	RunE: runKernels,
}

func init() {
	kernelsCmd.Flags().IntVar(&flagKernelMaxSize, "max-size", 9, "Largest kernel size to show (odd)")
	kernelsCmd.Flags().BoolVar(&flagKernelDraw, "draw", false, "Draw every valid footprint")
}

func runKernels(cmd *cobra.Command, args []string) error {
	if flagKernelMaxSize < 1 || flagKernelMaxSize%2 == 0 {
		return fmt.Errorf("--max-size must be a positive odd number, got %d", flagKernelMaxSize)
	}

	table := kernel.NewTable(flagKernelMaxSize)

	for size := 1; size <= flagKernelMaxSize; size += 2 {
		radii := table.ValidRadii(size)
		fmt.Printf("size %d: %d valid radii\n", size, len(radii))

		for _, radius := range radii {
			fmt.Printf("  r² = %g\n", radius)
			if flagKernelDraw {
				fmt.Println(drawKernel(kernel.NewWithRadius(size, radius)))
			}
		}
		fmt.Println()
	}

	return nil
}

// drawKernel renders the footprint mask, one rune per cell.
func drawKernel(k *kernel.Kernel) string {
	var sb strings.Builder
	for y := 0; y < k.Size; y++ {
		sb.WriteString("    ")
		for x := 0; x < k.Size; x++ {
			if k.Active(x, y) {
				sb.WriteRune('█')
			} else {
				sb.WriteRune('·')
			}
		}
		if y < k.Size-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
