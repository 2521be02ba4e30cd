package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mapforge/coursegen/internal/config"
	"github.com/mapforge/coursegen/internal/generator"
	"github.com/mapforge/coursegen/internal/preview"
	"github.com/mapforge/coursegen/internal/rnd"
	"github.com/mapforge/coursegen/internal/storage"
)

var (
	flagPreset   string
	flagConfig   string
	flagSeed     string
	flagMaxSteps int
	flagSkips    bool
	flagPreview  bool
	flagScale    int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a map from a preset and seed",
	Long: `Generates a complete obstacle-course map. The walker carves from
the spawn through every waypoint of the preset; the same preset and
seed always produce the identical map.

Seeds can be given as a number or as any text, which is hashed into
a numeric seed. Without --seed a random seed is drawn and reported.

Examples:
  coursegen generate --preset hard --seed 42
  coursegen generate --preset insane --seed "ice palace" --preview
  coursegen generate --config my-preset.yaml --skips=false`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&flagPreset, "preset", "hard", "Named difficulty preset")
	generateCmd.Flags().StringVar(&flagConfig, "config", "", "Preset YAML file (overrides --preset)")
	generateCmd.Flags().StringVar(&flagSeed, "seed", "", "Seed, numeric or free text (empty = random)")
	generateCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 30000, "Step budget before the run fails")
	generateCmd.Flags().BoolVar(&flagSkips, "skips", true, "Run the secondary skip-tunnel walker")
	generateCmd.Flags().BoolVar(&flagPreview, "preview", false, "Render the finished map to the terminal")
	generateCmd.Flags().IntVar(&flagScale, "scale", 4, "Preview downsample factor")
}

// parseSeed interprets the --seed flag: empty draws a fresh random
// seed, a numeric value is used directly, anything else is hashed.
func parseSeed(s string) rnd.Seed {
	if s == "" {
		return rnd.RandomSeed()
	}
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return rnd.SeedFromU64(v)
	}
	return rnd.SeedFromString(s)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "coursegen",
	})

	var cfg *config.GenerationConfig
	presetName := flagPreset
	if flagConfig != "" {
		loaded, err := config.LoadPreset(flagConfig)
		if err != nil {
			return fmt.Errorf("load config %s: %w", flagConfig, err)
		}
		cfg = loaded
		presetName = flagConfig
	} else {
		registry, err := config.LoadRegistry()
		if err != nil {
			return fmt.Errorf("load presets: %w", err)
		}
		cfg, err = registry.Get(flagPreset)
		if err != nil {
			return err
		}
	}

	var skipCfg *config.GenerationConfig
	if flagSkips {
		c := config.DefaultSkipConfig()
		skipCfg = &c
	}

	seed := parseSeed(flagSeed)
	logger.Info("generating", "preset", presetName, "seed", seed.Label,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))

	start := time.Now()
	g, err := generator.New(cfg, skipCfg, seed)
	if err != nil {
		return err
	}

	var stepErr error
	steps := 0
	for ; steps < flagMaxSteps && !g.Walker.Finished; steps++ {
		if stepErr = g.Step(); stepErr != nil {
			break
		}
	}

	if stepErr == nil && !g.Walker.Finished {
		stepErr = fmt.Errorf("step budget of %d exhausted", flagMaxSteps)
	}
	if stepErr == nil {
		stepErr = g.PostProcess()
	}
	elapsed := time.Since(start)

	record := storage.RunRecord{
		Preset:     presetName,
		SeedLabel:  seed.Label,
		SeedValue:  int64(seed.Value),
		Width:      cfg.Width,
		Height:     cfg.Height,
		Steps:      steps,
		DurationMs: elapsed.Milliseconds(),
		Success:    stepErr == nil,
	}
	if stepErr != nil {
		record.Error = stepErr.Error()
	}
	saveRun(logger, record)

	if stepErr != nil {
		logger.Error("generation failed", "steps", steps, "error", stepErr)
		return stepErr
	}

	logger.Info("finished", "steps", steps, "duration", elapsed.Round(time.Millisecond))

	if flagPreview {
		fmt.Println(preview.RenderScaled(g.Map, flagScale))
	}

	return nil
}

// saveRun records the run in the history database. History is best
// effort, a missing database never fails the generation itself.
func saveRun(logger *log.Logger, record storage.RunRecord) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history database", "error", err)
		return
	}
	defer store.Close()

	if _, err := store.SaveRun(record); err != nil {
		logger.Warn("could not save run", "error", err)
	}
}
