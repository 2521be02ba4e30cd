// Package config provides YAML-based generation presets and the
// read-only registry they are served from.
package config

import (
	"errors"
	"fmt"

	"github.com/mapforge/coursegen/internal/core"
)

// ErrInvalidConfig is returned when a preset fails validation.
var ErrInvalidConfig = errors.New("invalid generation config")

// WeightedInt is one outcome of a discrete integer distribution.
type WeightedInt struct {
	Value  int     `yaml:"value"`
	Weight float64 `yaml:"weight"`
}

// WeightedFloat is one outcome of a discrete float distribution.
type WeightedFloat struct {
	Value  float64 `yaml:"value"`
	Weight float64 `yaml:"weight"`
}

// GenerationConfig is the immutable input of one generation run. The
// engine never mutates it.
type GenerationConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Map geometry
	Width     int             `yaml:"width"`
	Height    int             `yaml:"height"`
	Spawn     core.Position   `yaml:"spawn"`
	Waypoints []core.Position `yaml:"waypoints"`

	// Kernel mutation probabilities, checked independently per step.
	InnerSizeMutProb float64 `yaml:"inner_size_mut_prob"`
	OuterSizeMutProb float64 `yaml:"outer_size_mut_prob"`
	InnerRadMutProb  float64 `yaml:"inner_rad_mut_prob"`
	OuterRadMutProb  float64 `yaml:"outer_rad_mut_prob"`

	// Kernel parameter distributions
	InnerSizeProbs   []WeightedInt   `yaml:"inner_size_probs"`
	OuterMarginProbs []WeightedInt   `yaml:"outer_margin_probs"`
	CircularityProbs []WeightedFloat `yaml:"circularity_probs"`

	// ShiftWeights holds one weight per desirability rank of the four
	// candidate shifts, best-first.
	ShiftWeights []float64 `yaml:"shift_weights"`

	// MomentumProb is the chance of repeating the previous step's
	// direction instead of the sampled one.
	MomentumProb float64 `yaml:"momentum_prob"`

	// Pulse settings: periodic wider carves along straight corridors.
	EnablePulse        bool `yaml:"enable_pulse"`
	PulseStraightDelay int  `yaml:"pulse_straight_delay"`
	PulseCornerDelay   int  `yaml:"pulse_corner_delay"`
	PulseMaxKernelSize int  `yaml:"pulse_max_kernel_size"`

	// FadeSteps is the initial step window in which carved void is
	// written as EmptyReserved instead of Empty.
	FadeSteps int `yaml:"fade_steps"`

	// Platform spacing in steps.
	PlatformMinDistance int `yaml:"platform_min_distance"`
	PlatformMaxDistance int `yaml:"platform_max_distance"`

	// MaxDistance bounds how far (Euclidean) an empty cell may be from
	// the nearest non-empty cell after the fill pass.
	MaxDistance float64 `yaml:"max_distance"`

	// WaypointReachedDist is the squared distance at which the current
	// waypoint counts as reached.
	WaypointReachedDist int `yaml:"waypoint_reached_dist"`

	// Skip generation bounds.
	SkipMinLength     int `yaml:"skip_min_length"`
	SkipMaxLength     int `yaml:"skip_max_length"`
	SkipMinSpacingSqr int `yaml:"skip_min_spacing_sqr"`

	// MinFreezeSize is the smallest unconnected freeze blob kept by
	// the blob-removal pass.
	MinFreezeSize int `yaml:"min_freeze_size"`

	// LockDelay is how many steps behind the walker the lock window
	// trails.
	LockDelay int `yaml:"lock_delay"`

	// LockWindowSize overrides the half-size of the locked
	// neighborhood; 0 derives it from the largest configured inner
	// kernel size.
	LockWindowSize int `yaml:"lock_window_size"`
}

// MaxInnerSize returns the largest inner kernel size the config can
// sample.
func (c *GenerationConfig) MaxInnerSize() int {
	maxSize := 0
	for _, wv := range c.InnerSizeProbs {
		if wv.Value > maxSize {
			maxSize = wv.Value
		}
	}
	return maxSize
}

// Validate checks the sampling parameters every walker needs,
// regardless of whether the config also carries map geometry.
func (c *GenerationConfig) Validate() error {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"inner_size_mut_prob", c.InnerSizeMutProb},
		{"outer_size_mut_prob", c.OuterSizeMutProb},
		{"inner_rad_mut_prob", c.InnerRadMutProb},
		{"outer_rad_mut_prob", c.OuterRadMutProb},
		{"momentum_prob", c.MomentumProb},
	} {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("%w: %s %v outside [0,1]", ErrInvalidConfig, p.name, p.value)
		}
	}

	if len(c.ShiftWeights) != 4 {
		return fmt.Errorf("%w: shift_weights needs exactly 4 entries, got %d", ErrInvalidConfig, len(c.ShiftWeights))
	}
	if err := positiveWeightSum(c.ShiftWeights); err != nil {
		return fmt.Errorf("%w: shift_weights: %v", ErrInvalidConfig, err)
	}

	if len(c.InnerSizeProbs) == 0 {
		return fmt.Errorf("%w: inner_size_probs is empty", ErrInvalidConfig)
	}
	for _, wv := range c.InnerSizeProbs {
		if wv.Value < 1 || wv.Value%2 == 0 {
			return fmt.Errorf("%w: inner kernel size %d must be odd and positive", ErrInvalidConfig, wv.Value)
		}
	}
	if len(c.OuterMarginProbs) == 0 {
		return fmt.Errorf("%w: outer_margin_probs is empty", ErrInvalidConfig)
	}
	for _, wv := range c.OuterMarginProbs {
		if wv.Value < 0 || wv.Value%2 != 0 {
			return fmt.Errorf("%w: outer kernel margin %d must be even and non-negative", ErrInvalidConfig, wv.Value)
		}
	}
	if len(c.CircularityProbs) == 0 {
		return fmt.Errorf("%w: circularity_probs is empty", ErrInvalidConfig)
	}

	if c.SkipMinLength < 0 || c.SkipMaxLength < c.SkipMinLength {
		return fmt.Errorf("%w: skip length bounds [%d,%d]", ErrInvalidConfig, c.SkipMinLength, c.SkipMaxLength)
	}
	if c.PlatformMaxDistance < c.PlatformMinDistance {
		return fmt.Errorf("%w: platform distance bounds [%d,%d]", ErrInvalidConfig, c.PlatformMinDistance, c.PlatformMaxDistance)
	}
	if c.LockDelay <= 0 {
		return fmt.Errorf("%w: lock_delay must be positive", ErrInvalidConfig)
	}

	return nil
}

// ValidateGeometry additionally checks the map geometry a primary
// walker needs. Presets that only drive a secondary walker may omit
// geometry.
func (c *GenerationConfig) ValidateGeometry() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: map dimensions %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if !c.Spawn.InBounds(c.Width, c.Height) {
		return fmt.Errorf("%w: spawn (%d,%d) outside map", ErrInvalidConfig, c.Spawn.X, c.Spawn.Y)
	}
	if len(c.Waypoints) == 0 {
		return fmt.Errorf("%w: no waypoints", ErrInvalidConfig)
	}
	for i, wp := range c.Waypoints {
		if !wp.InBounds(c.Width, c.Height) {
			return fmt.Errorf("%w: waypoint %d (%d,%d) outside map", ErrInvalidConfig, i, wp.X, wp.Y)
		}
	}
	return nil
}

func positiveWeightSum(weights []float64) error {
	var sum float64
	for i, w := range weights {
		if w < 0 {
			return fmt.Errorf("negative weight at index %d", i)
		}
		sum += w
	}
	if sum <= 0 {
		return errors.New("weights sum to zero")
	}
	return nil
}
