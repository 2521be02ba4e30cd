// Package generator drives one map generation run: it owns the grid,
// advances the carving walkers step by step, and sequences the
// post-processing passes that turn the raw carve into a playable
// course.
package generator

import (
	"fmt"

	"github.com/mapforge/coursegen/internal/config"
	"github.com/mapforge/coursegen/internal/grid"
	"github.com/mapforge/coursegen/internal/kernel"
	"github.com/mapforge/coursegen/internal/rnd"
	"github.com/mapforge/coursegen/internal/walker"
)

// Initial kernel pair for every walker; mutation takes over from the
// first step.
const (
	initInnerSize = 5
	initOuterSize = 7
)

// Generator owns the map and walkers of a single run. The grid is
// exclusively owned for the duration of the run; walkers receive
// sequenced mutable access per step, never concurrent handles.
type Generator struct {
	Map    *grid.Map
	Walker *walker.Walker

	// Walker2 is the optional secondary walker pre-carving narrow
	// skip tunnels with its own preset and a derived random stream.
	Walker2 *walker.Walker

	// EdgeBugs is the diagnostic mask of cells repaired by the
	// edge-bug pass, filled during post-processing.
	EdgeBugs []bool

	cfg     *config.GenerationConfig
	skipCfg *config.GenerationConfig
	rnd     *rnd.Random
	rnd2    *rnd.Random
}

// New derives the initial generator state from a validated config and
// a seed. A non-nil skipCfg adds the secondary walker; it shares the
// primary's map geometry and waypoints but carves with its own
// sampling parameters. The secondary stream is seeded from the
// primary so the whole run reproduces from one top-level seed.
func New(cfg *config.GenerationConfig, skipCfg *config.GenerationConfig, seed rnd.Seed) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateGeometry(); err != nil {
		return nil, err
	}

	m := grid.NewMap(cfg.Width, cfg.Height, grid.Hookable, cfg.Spawn)

	primaryRnd, err := rnd.New(seed, cfg)
	if err != nil {
		return nil, fmt.Errorf("generator: primary random: %w", err)
	}

	g := &Generator{
		Map: m,
		Walker: walker.New(cfg.Spawn, cfg.Waypoints,
			kernel.New(initInnerSize, 0.0), kernel.New(initOuterSize, 0.0), m),
		cfg: cfg,
		rnd: primaryRnd,
	}

	if skipCfg != nil {
		if err := skipCfg.Validate(); err != nil {
			return nil, fmt.Errorf("generator: skip config: %w", err)
		}
		g.skipCfg = skipCfg
		g.Walker2 = walker.New(cfg.Spawn, cfg.Waypoints,
			kernel.New(initInnerSize, 0.0), kernel.New(initOuterSize, 0.0), m)
		g.rnd2, err = rnd.New(rnd.SeedFromRandom(primaryRnd), skipCfg)
		if err != nil {
			return nil, fmt.Errorf("generator: secondary random: %w", err)
		}
	}

	return g, nil
}

// Step advances every unfinished walker by exactly one step. The
// per-step order is fixed and reproducibility-relevant: mutate
// primary, mutate secondary, step primary, step secondary, platform
// check primary. A primary failure aborts the step; secondary step
// failures are ignored, the skip walker is best effort.
func (g *Generator) Step() error {
	if g.Walker.IsGoalReached(g.cfg.WaypointReachedDist) {
		g.Walker.NextWaypoint()
	}
	if g.Walker2 != nil && g.Walker2.IsGoalReached(g.cfg.WaypointReachedDist) {
		g.Walker2.NextWaypoint()
	}

	if g.Walker.Finished {
		return nil
	}

	g.Walker.MutateKernel(g.cfg, g.rnd)
	if g.Walker2 != nil && !g.Walker2.Finished {
		g.Walker2.MutateKernel(g.skipCfg, g.rnd2)
	}

	if err := g.Walker.ProbabilisticStep(g.Map, g.cfg, g.rnd); err != nil {
		return err
	}
	if g.Walker2 != nil && !g.Walker2.Finished {
		// best effort; a stuck skip walker must not abort the run
		_ = g.Walker2.ProbabilisticStep(g.Map, g.skipCfg, g.rnd2)
	}

	return g.Walker.CheckPlatform(g.Map, g.cfg.PlatformMinDistance, g.cfg.PlatformMaxDistance)
}

// PostProcess runs the post-processing pipeline in its fixed order:
// edge-bug repair, start/finish room stamping, distance-based fill,
// skip generation, freeze-blob removal.
func (g *Generator) PostProcess() error {
	edgeBugs, err := FixEdgeBugs(g.Map)
	if err != nil {
		return fmt.Errorf("edge bug repair: %w", err)
	}
	g.EdgeBugs = edgeBugs

	startZone := grid.Start
	if err := g.Map.GenerateRoom(g.Map.Spawn, 4, 3, &startZone); err != nil {
		return fmt.Errorf("start room: %w", err)
	}
	finishZone := grid.Finish
	if err := g.Map.GenerateRoom(g.Walker.Pos, 4, 3, &finishZone); err != nil {
		return fmt.Errorf("finish room: %w", err)
	}

	FillOpenAreas(g.Map, g.cfg.MaxDistance)

	GenerateAllSkips(g.Map, g.cfg.SkipMinLength, g.cfg.SkipMaxLength, g.cfg.SkipMinSpacingSqr)

	RemoveFreezeBlobs(g.Map, g.cfg.MinFreezeSize)

	return nil
}

// Generate builds an entire map with a single call: it steps until
// the primary walker is finished or the step budget is exhausted,
// then post-processes. On failure no grid is returned; a run either
// completes all passes or reports the first unrecovered error.
func Generate(maxSteps int, seed rnd.Seed, cfg, skipCfg *config.GenerationConfig) (*grid.Map, error) {
	g, err := New(cfg, skipCfg, seed)
	if err != nil {
		return nil, err
	}

	for step := 0; step < maxSteps; step++ {
		if g.Walker.Finished {
			break
		}
		if err := g.Step(); err != nil {
			return nil, fmt.Errorf("step %d: %w", step, err)
		}
	}

	if err := g.PostProcess(); err != nil {
		return nil, err
	}

	return g.Map, nil
}
