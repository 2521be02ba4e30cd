package generator

import (
	"testing"

	"github.com/mapforge/coursegen/internal/core"
	"github.com/mapforge/coursegen/internal/grid"
)

// skipTestMap builds two horizontal corridors separated by a wall with
// a hookable core, with the upper corridor capped by a freeze cell at
// (11,5). The cap produces downward corner candidates at (10,5) and
// (12,5); each column through the wall reads Freeze, Hookable, Freeze,
// Empty top to bottom.
func skipTestMap(t *testing.T) *grid.Map {
	t.Helper()
	m := grid.NewMap(20, 15, grid.Empty, core.P(0, 0))

	for x := 0; x < m.W; x++ {
		m.SetXY(x, 6, grid.Freeze)
		m.SetXY(x, 7, grid.Hookable)
		m.SetXY(x, 8, grid.Freeze)
	}
	m.SetXY(11, 5, grid.Freeze)

	return m
}

func TestFindCorners(t *testing.T) {
	m := skipTestMap(t)

	candidates := FindCorners(m)

	if len(candidates) != 2 {
		t.Fatalf("found %d candidates, want 2: %v", len(candidates), candidates)
	}
	for _, c := range candidates {
		if c.Direction != core.DirDown {
			t.Errorf("candidate %v direction = %v, want down", c.Start, c.Direction)
		}
	}
	if candidates[0].Start != core.P(10, 5) || candidates[1].Start != core.P(12, 5) {
		t.Errorf("candidate starts = %v, %v, want (10,5) and (12,5)",
			candidates[0].Start, candidates[1].Start)
	}
}

func TestCheckCornerSkip(t *testing.T) {
	cases := []struct {
		name       string
		alter      func(m *grid.Map)
		minLength  int
		maxLength  int
		wantOK     bool
		wantLength int
	}{
		{
			name:       "valid tunnel",
			alter:      func(*grid.Map) {},
			minLength:  3,
			maxLength:  11,
			wantOK:     true,
			wantLength: 4,
		},
		{
			name:      "too short for minimum",
			alter:     func(*grid.Map) {},
			minLength: 4,
			maxLength: 11,
			wantOK:    false,
		},
		{
			name:      "budget runs out before the far side",
			alter:     func(*grid.Map) {},
			minLength: 1,
			maxLength: 3,
			wantOK:    false,
		},
		{
			name:      "void inside the wall breaks the sequence",
			alter:     func(m *grid.Map) { m.SetXY(10, 7, grid.Empty) },
			minLength: 3,
			maxLength: 11,
			wantOK:    false,
		},
		{
			name:      "missing hookable core",
			alter:     func(m *grid.Map) { m.SetXY(10, 7, grid.Freeze) },
			minLength: 3,
			maxLength: 11,
			wantOK:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := skipTestMap(t)
			tc.alter(m)

			candidate := Skip{Start: core.P(10, 5), Direction: core.DirDown}
			skip, ok := CheckCornerSkip(m, candidate, tc.minLength, tc.maxLength)

			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if skip.Length != tc.wantLength {
				t.Errorf("length = %d, want %d", skip.Length, tc.wantLength)
			}
			if skip.End != core.P(10, 9) {
				t.Errorf("end = %v, want (10,9)", skip.End)
			}
		})
	}
}

func TestCountSkipNeighbours(t *testing.T) {
	m := skipTestMap(t)
	skip := Skip{
		Start:     core.P(10, 5),
		End:       core.P(10, 9),
		Length:    4,
		Direction: core.DirDown,
	}

	// the hookable row crosses both lateral offsets once per column
	for _, offset := range []int{1, 2} {
		n, err := CountSkipNeighbours(m, skip, offset)
		if err != nil {
			t.Fatalf("CountSkipNeighbours(offset=%d) failed: %v", offset, err)
		}
		if n != 1 {
			t.Errorf("offset %d: count = %d, want 1", offset, n)
		}
	}
}

func TestGenerateAllSkipsCarvesAndSpacesOut(t *testing.T) {
	m := skipTestMap(t)

	carved := GenerateAllSkips(m, 3, 11, 9)

	if len(carved) != 1 {
		t.Fatalf("carved %d skips, want 1: %v", len(carved), carved)
	}
	skip := carved[0]
	if skip.Start != core.P(10, 5) || skip.End != core.P(10, 9) {
		t.Errorf("carved skip %v-%v, want (10,5)-(10,9)", skip.Start, skip.End)
	}

	// tunnel breached and padded
	for y := 6; y <= 8; y++ {
		if got := m.GetXY(10, y); got != grid.Empty {
			t.Errorf("tunnel cell (10,%d) = %v, want empty", y, got)
		}
	}
	if got := m.GetXY(9, 7); got != grid.Freeze {
		t.Errorf("left pad (9,7) = %v, want freeze", got)
	}
	if got := m.GetXY(11, 7); got != grid.Freeze {
		t.Errorf("right pad (11,7) = %v, want freeze", got)
	}

	// the nearby candidate at (12,5) was suppressed by spacing
	if got := m.GetXY(12, 7); got != grid.Hookable {
		t.Errorf("suppressed tunnel core (12,7) = %v, want untouched hookable", got)
	}
}

func TestGenerateAllSkipsFreezeOnlyDowngrade(t *testing.T) {
	m := skipTestMap(t)

	// confine the hookable core to the columns next to the first
	// tunnel so the offset-2 wall check fails but offset 1 still hits
	for x := 0; x < m.W; x++ {
		if x >= 9 && x <= 11 {
			continue
		}
		m.SetXY(x, 7, grid.Freeze)
	}

	carved := GenerateAllSkips(m, 3, 11, 9)

	if len(carved) != 1 {
		t.Fatalf("carved %d skips, want 1: %v", len(carved), carved)
	}

	// downgraded tunnel fills with freeze and leaves the sides alone
	for y := 6; y <= 8; y++ {
		if got := m.GetXY(10, y); got != grid.Freeze {
			t.Errorf("tunnel cell (10,%d) = %v, want freeze", y, got)
		}
	}
	if got := m.GetXY(9, 7); got != grid.Hookable {
		t.Errorf("side cell (9,7) = %v, want untouched hookable", got)
	}
	if got := m.GetXY(11, 7); got != grid.Hookable {
		t.Errorf("side cell (11,7) = %v, want untouched hookable", got)
	}
}
