package generator

import (
	"math"

	"github.com/mapforge/coursegen/internal/grid"
)

// FixEdgeBugs repairs void cells that touch solid terrain directly:
// certain inner/outer kernel combinations do not consistently leave
// the mandatory one-cell hazard buffer. Every Empty cell with a
// Hookable cell anywhere in its 8-neighborhood becomes Freeze.
// Returns the mask of repaired cells for diagnostics. After the pass,
// no Empty cell is 8-adjacent to a Hookable cell.
func FixEdgeBugs(m *grid.Map) ([]bool, error) {
	repaired := make([]bool, m.W*m.H)

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.GetXY(x, y) != grid.Empty {
				continue
			}
			for dy := -1; dy <= 1 && !repaired[y*m.W+x]; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= m.W || ny < 0 || ny >= m.H {
						continue
					}
					if m.GetXY(nx, ny) == grid.Hookable {
						repaired[y*m.W+x] = true
						break
					}
				}
			}
			if repaired[y*m.W+x] {
				m.SetXY(x, y, grid.Freeze)
			}
		}
	}

	return repaired, nil
}

// FillOpenAreas bounds the thickness of open areas: using a Euclidean
// distance transform over the non-empty mask, Empty cells further
// than maxDistance+sqrt(2) from any non-empty cell become Hookable
// and cells beyond maxDistance become Freeze. Returns the distance
// grid for diagnostics.
func FillOpenAreas(m *grid.Map, maxDistance float64) []float64 {
	occupied := make([]bool, m.W*m.H)
	for i, t := range m.Tiles() {
		occupied[i] = t != grid.Empty
	}

	distance := distanceTransform(occupied, m.W, m.H)

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			idx := y*m.W + x
			if m.GetXY(x, y) != grid.Empty {
				continue
			}
			switch {
			case distance[idx] > maxDistance+math.Sqrt2:
				m.SetXY(x, y, grid.Hookable)
			case distance[idx] > maxDistance:
				m.SetXY(x, y, grid.Freeze)
			}
		}
	}

	return distance
}

// distanceTransform computes the exact Euclidean distance from every
// cell to the nearest occupied cell, using the two-pass squared
// distance transform of Felzenszwalb and Huttenlocher (one 1D pass
// per axis over lower envelopes of parabolas).
func distanceTransform(occupied []bool, w, h int) []float64 {
	const inf = math.MaxFloat64 / 4

	sq := make([]float64, w*h)
	for i, occ := range occupied {
		if occ {
			sq[i] = 0
		} else {
			sq[i] = inf
		}
	}

	column := make([]float64, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			column[y] = sq[y*w+x]
		}
		transformed := dt1D(column)
		for y := 0; y < h; y++ {
			sq[y*w+x] = transformed[y]
		}
	}

	row := make([]float64, w)
	for y := 0; y < h; y++ {
		copy(row, sq[y*w:(y+1)*w])
		transformed := dt1D(row)
		for x := 0; x < w; x++ {
			sq[y*w+x] = math.Sqrt(transformed[x])
		}
	}

	return sq
}

// dt1D computes the 1D squared distance transform of f.
func dt1D(f []float64) []float64 {
	n := len(f)
	d := make([]float64, n)
	v := make([]int, n)       // locations of parabolas in the envelope
	z := make([]float64, n+1) // boundaries between parabolas

	const inf = math.MaxFloat64 / 4

	k := 0
	v[0] = 0
	z[0] = -inf
	z[1] = inf

	for q := 1; q < n; q++ {
		var s float64
		for {
			p := v[k]
			s = ((f[q] + float64(q*q)) - (f[p] + float64(p*p))) / float64(2*q-2*p)
			if s > z[k] {
				break
			}
			k--
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = inf
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		p := v[k]
		diff := float64(q - p)
		d[q] = diff*diff + f[p]
	}

	return d
}
