package generator

import (
	"math"
	"testing"

	"github.com/mapforge/coursegen/internal/core"
	"github.com/mapforge/coursegen/internal/grid"
)

func TestFixEdgeBugs(t *testing.T) {
	m := grid.NewMap(10, 10, grid.Hookable, core.P(0, 0))

	// properly buffered void region
	if err := m.SetArea(core.P(1, 1), core.P(5, 5), grid.Freeze, grid.ReplaceAll); err != nil {
		t.Fatalf("SetArea() failed: %v", err)
	}
	if err := m.SetArea(core.P(2, 2), core.P(4, 4), grid.Empty, grid.ReplaceAll); err != nil {
		t.Fatalf("SetArea() failed: %v", err)
	}
	// stray void cell touching solid terrain directly
	m.SetXY(7, 7, grid.Empty)

	repaired, err := FixEdgeBugs(m)
	if err != nil {
		t.Fatalf("FixEdgeBugs() failed: %v", err)
	}

	if got := m.GetXY(7, 7); got != grid.Freeze {
		t.Errorf("stray cell = %v, want freeze", got)
	}
	if !repaired[7*m.W+7] {
		t.Error("stray cell not flagged in the repaired mask")
	}
	if got := m.GetXY(3, 3); got != grid.Empty {
		t.Errorf("buffered cell = %v, want untouched empty", got)
	}
	if repaired[3*m.W+3] {
		t.Error("buffered cell flagged in the repaired mask")
	}

	// the pass invariant must hold everywhere afterwards
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.GetXY(x, y) != grid.Empty {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= m.W || ny < 0 || ny >= m.H {
						continue
					}
					if m.GetXY(nx, ny) == grid.Hookable {
						t.Fatalf("empty cell (%d,%d) still touches hookable (%d,%d)", x, y, nx, ny)
					}
				}
			}
		}
	}
}

func TestFillOpenAreas(t *testing.T) {
	m := grid.NewMap(21, 21, grid.Empty, core.P(0, 0))
	m.SetXY(10, 10, grid.Hookable)

	distance := FillOpenAreas(m, 3.0)

	if got := distance[10*m.W+10]; got != 0 {
		t.Errorf("distance at occupied cell = %g, want 0", got)
	}
	if got := distance[10*m.W+13]; got != 3 {
		t.Errorf("distance three cells out = %g, want 3", got)
	}

	cases := []struct {
		name string
		x, y int
		want grid.Tile
	}{
		{"occupied cell untouched", 10, 10, grid.Hookable},
		{"within max distance", 13, 10, grid.Empty},
		{"diagonal within max", 12, 12, grid.Empty},
		{"inside freeze band", 14, 10, grid.Freeze},
		{"diagonal freeze band", 13, 13, grid.Freeze},
		{"beyond freeze band", 15, 10, grid.Hookable},
		{"far corner", 0, 0, grid.Hookable},
	}
	for _, tc := range cases {
		if got := m.GetXY(tc.x, tc.y); got != tc.want {
			t.Errorf("%s: (%d,%d) = %v, want %v", tc.name, tc.x, tc.y, got, tc.want)
		}
	}
}

func TestDistanceTransformTwoSeeds(t *testing.T) {
	// single row, occupied at both ends
	occupied := make([]bool, 7)
	occupied[0] = true
	occupied[6] = true

	distance := distanceTransform(occupied, 7, 1)

	want := []float64{0, 1, 2, 3, 2, 1, 0}
	for i := range want {
		if math.Abs(distance[i]-want[i]) > 1e-9 {
			t.Errorf("distance[%d] = %g, want %g", i, distance[i], want[i])
		}
	}
}
