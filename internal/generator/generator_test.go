package generator

import (
	"errors"
	"testing"

	"github.com/mapforge/coursegen/internal/config"
	"github.com/mapforge/coursegen/internal/core"
	"github.com/mapforge/coursegen/internal/grid"
	"github.com/mapforge/coursegen/internal/rnd"
)

// testConfig shrinks the default geometry so runs finish quickly while
// keeping the walker far from every border.
func testConfig() config.GenerationConfig {
	cfg := config.DefaultConfig()
	cfg.Width = 150
	cfg.Height = 150
	cfg.Spawn = core.P(40, 110)
	cfg.Waypoints = []core.Position{core.P(110, 110), core.P(110, 40)}
	cfg.WaypointReachedDist = 25
	return cfg
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 0

	if _, err := New(&cfg, nil, rnd.SeedFromU64(1)); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("New() with zero width: error = %v, want ErrInvalidConfig", err)
	}
}

func TestNewWithSkipConfig(t *testing.T) {
	cfg := testConfig()
	skipCfg := config.DefaultSkipConfig()

	g, err := New(&cfg, &skipCfg, rnd.SeedFromU64(1))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if g.Walker2 == nil {
		t.Error("skip config given but no secondary walker created")
	}

	g2, err := New(&cfg, nil, rnd.SeedFromU64(1))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if g2.Walker2 != nil {
		t.Error("secondary walker created without a skip config")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg1 := testConfig()
	cfg2 := testConfig()
	skip1 := config.DefaultSkipConfig()
	skip2 := config.DefaultSkipConfig()
	seed := rnd.SeedFromString("determinism")

	m1, err1 := Generate(30000, seed, &cfg1, &skip1)
	m2, err2 := Generate(30000, seed, &cfg2, &skip2)

	if (err1 == nil) != (err2 == nil) {
		t.Fatalf("runs diverged: err1 = %v, err2 = %v", err1, err2)
	}
	if err1 != nil {
		t.Fatalf("Generate() failed: %v", err1)
	}
	if !m1.Equal(m2) {
		t.Error("identical seed and config produced different maps")
	}
}

func TestGenerateDifferentSeedsDiverge(t *testing.T) {
	cfg1 := testConfig()
	cfg2 := testConfig()

	m1, err := Generate(30000, rnd.SeedFromU64(1), &cfg1, nil)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	m2, err := Generate(30000, rnd.SeedFromU64(2), &cfg2, nil)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if m1.Equal(m2) {
		t.Error("different seeds produced identical maps")
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	cfg := testConfig()

	g, err := New(&cfg, nil, rnd.SeedFromU64(42))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	const maxSteps = 30000
	steps := 0
	for ; steps < maxSteps && !g.Walker.Finished; steps++ {
		if err := g.Step(); err != nil {
			t.Fatalf("step %d failed: %v", steps, err)
		}
	}
	if !g.Walker.Finished {
		t.Fatalf("walker not finished after %d steps", maxSteps)
	}

	if err := g.PostProcess(); err != nil {
		t.Fatalf("PostProcess() failed: %v", err)
	}
	if g.EdgeBugs == nil {
		t.Error("edge bug mask not recorded")
	}

	counts := map[grid.Tile]int{}
	for _, tile := range g.Map.Tiles() {
		counts[tile]++
	}

	// one start and one finish room; a room zone is the 7x7 interior
	// minus the 3-cell platform strip
	const zoneCells = 7*7 - 3
	if counts[grid.Start] != zoneCells {
		t.Errorf("start zone covers %d cells, want %d", counts[grid.Start], zoneCells)
	}
	if counts[grid.Finish] != zoneCells {
		t.Errorf("finish zone covers %d cells, want %d", counts[grid.Finish], zoneCells)
	}
	if counts[grid.Empty] == 0 {
		t.Error("no corridor carved")
	}
	if counts[grid.Platform] < 6 {
		t.Errorf("only %d platform cells, want at least the two room strips", counts[grid.Platform])
	}

	// the finish room surrounds the walker's final position
	if got := g.Map.Get(g.Walker.Pos); got != grid.Finish {
		t.Errorf("tile at final position = %v, want finish zone", got)
	}
}

func TestStepAfterFinishIsNoOp(t *testing.T) {
	cfg := testConfig()

	g, err := New(&cfg, nil, rnd.SeedFromU64(7))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	g.Walker.Finished = true
	g.Walker.Goal = nil

	before := g.Map.Clone()
	if err := g.Step(); err != nil {
		t.Fatalf("Step() on finished walker failed: %v", err)
	}
	if !g.Map.Equal(before) {
		t.Error("finished walker still mutated the map")
	}
}
