package kernel

import "sort"

// Table precomputes, for every odd size up to a maximum, the squared
// radii that produce footprints without single-cell protrusions along
// the pruned corners. This is a correctness property of the mask, not
// a cache: a radius between two table entries cuts a corner
// anti-diagonal only partially, leaving a jagged single-cell step
// that the walker would carve into an inconsistent boundary.
//
// For a kernel of size s with center c = (s-1)/2, pruning the corner
// to depth d removes every cell (i, j) with i+j < d (measured from
// the corner). The largest squared center distance within the depth-d
// anti-diagonal is c^2 + (c-d)^2, so exactly these values cut whole
// anti-diagonals at once.
type Table struct {
	MaxSize int

	radiiBySize map[int][]float64
	allRadii    []float64 // ascending, deduplicated
}

// NewTable precomputes valid radii for all odd sizes up to maxSize.
func NewTable(maxSize int) *Table {
	t := &Table{
		MaxSize:     maxSize,
		radiiBySize: make(map[int][]float64),
	}

	seen := make(map[float64]bool)
	for size := 1; size <= maxSize; size += 2 {
		center := float64(size-1) / 2.0
		maxCorner := size/2 - 1
		if maxCorner < 0 {
			maxCorner = 0
		}

		radii := make([]float64, 0, maxCorner+1)
		for depth := 0; depth <= maxCorner; depth++ {
			r := center*center + (center-float64(depth))*(center-float64(depth))
			radii = append(radii, r)
			if !seen[r] {
				seen[r] = true
				t.allRadii = append(t.allRadii, r)
			}
		}
		t.radiiBySize[size] = radii
	}

	sort.Float64s(t.allRadii)
	return t
}

// ValidRadii returns the permissible squared radii for the given
// size, ordered from the full square (largest) to the most circular
// footprint. Returns nil for even or out-of-range sizes.
func (t *Table) ValidRadii(size int) []float64 {
	return t.radiiBySize[size]
}

// MaxValidInnerRadius returns the largest valid radius of any size
// that stays strictly inside the given outer radius. It keeps the
// inner void carve fully enclosed by the outer hazard carve. Returns
// 0 when no valid radius fits.
func (t *Table) MaxValidInnerRadius(outerRadius float64) float64 {
	// first entry >= outerRadius; everything before is strictly inside
	idx := sort.SearchFloat64s(t.allRadii, outerRadius)
	if idx == 0 {
		return 0
	}
	return t.allRadii[idx-1]
}
