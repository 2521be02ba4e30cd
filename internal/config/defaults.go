package config

import "github.com/mapforge/coursegen/internal/core"

// DefaultConfig returns the baseline generation preset. It is the
// fallback when no embedded or on-disk preset can be loaded.
func DefaultConfig() GenerationConfig {
	return GenerationConfig{
		Name:        "default",
		Description: "balanced baseline preset",

		Width:  300,
		Height: 300,
		Spawn:  core.P(50, 250),
		Waypoints: []core.Position{
			core.P(250, 250),
			core.P(250, 50),
			core.P(50, 50),
		},

		InnerSizeMutProb: 0.25,
		OuterSizeMutProb: 0.25,
		InnerRadMutProb:  0.25,
		OuterRadMutProb:  0.25,

		InnerSizeProbs: []WeightedInt{
			{Value: 3, Weight: 0.25},
			{Value: 5, Weight: 0.5},
			{Value: 7, Weight: 0.25},
		},
		OuterMarginProbs: []WeightedInt{
			{Value: 0, Weight: 0.2},
			{Value: 2, Weight: 0.6},
			{Value: 4, Weight: 0.2},
		},
		CircularityProbs: []WeightedFloat{
			{Value: 0.0, Weight: 0.6},
			{Value: 0.5, Weight: 0.3},
			{Value: 1.0, Weight: 0.1},
		},

		ShiftWeights: []float64{12, 6, 3, 1},
		MomentumProb: 0.01,

		EnablePulse:        false,
		PulseStraightDelay: 10,
		PulseCornerDelay:   5,
		PulseMaxKernelSize: 5,

		FadeSteps: 60,

		PlatformMinDistance: 200,
		PlatformMaxDistance: 700,

		MaxDistance:         3.0,
		WaypointReachedDist: 250,

		SkipMinLength:     3,
		SkipMaxLength:     11,
		SkipMinSpacingSqr: 40,

		MinFreezeSize: 10,

		LockDelay:      100,
		LockWindowSize: 0,
	}
}

// DefaultSkipConfig returns the preset driving the secondary "skip"
// walker: small kernels and strong momentum carve long narrow tunnels
// next to the main path.
func DefaultSkipConfig() GenerationConfig {
	cfg := DefaultConfig()
	cfg.Name = "skips"
	cfg.Description = "secondary walker preset carving narrow skip tunnels"
	cfg.InnerSizeProbs = []WeightedInt{{Value: 3, Weight: 1.0}}
	cfg.OuterMarginProbs = []WeightedInt{{Value: 2, Weight: 1.0}}
	cfg.CircularityProbs = []WeightedFloat{{Value: 0.0, Weight: 1.0}}
	cfg.InnerSizeMutProb = 0.05
	cfg.OuterSizeMutProb = 0.05
	cfg.InnerRadMutProb = 0
	cfg.OuterRadMutProb = 0
	cfg.MomentumProb = 0.3
	cfg.ShiftWeights = []float64{10, 4, 1, 1}
	cfg.EnablePulse = false
	return cfg
}
