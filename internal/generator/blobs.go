package generator

import (
	"github.com/mapforge/coursegen/internal/core"
	"github.com/mapforge/coursegen/internal/grid"
)

// Per-cell flood-fill state. Valid cells belong to a provisionally
// unconnected blob; invalid cells touch solid terrain directly or
// through their blob.
type blobState uint8

const (
	blobUnknown blobState = iota
	blobValid
	blobInvalid
)

// RemoveFreezeBlobs removes isolated freeze debris: connected
// components of Freeze cells (4-neighbour reachability) that touch no
// Hookable cell anywhere in their 8-neighbourhoods and are smaller
// than minFreezeSize are converted to Empty. Larger components are
// kept even when unconnected, they still read as intentional
// geometry. Returns the positions of all removed cells.
func RemoveFreezeBlobs(m *grid.Map, minFreezeSize int) []core.Position {
	state := make([]blobState, m.W*m.H)
	var removed []core.Position

	for y := 1; y < m.H-1; y++ {
		for x := 1; x < m.W-1; x++ {
			if state[y*m.W+x] != blobUnknown {
				continue
			}

			// freeze next to hookable can never be blob debris, rule
			// out the whole neighbourhood up front
			if m.GetXY(x, y) == grid.Hookable {
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						state[(y+dy)*m.W+(x+dx)] = blobInvalid
					}
				}
				continue
			}

			if m.GetXY(x, y) != grid.Freeze {
				continue
			}

			visited, unconnected := collectBlob(m, state, core.P(x, y))

			if !unconnected {
				for _, pos := range visited {
					state[pos.Y*m.W+pos.X] = blobInvalid
				}
				continue
			}

			if len(visited) < minFreezeSize {
				for _, pos := range visited {
					m.Set(pos, grid.Empty)
					removed = append(removed, pos)
				}
			}
		}
	}

	return removed
}

// collectBlob flood-fills the freeze component containing start,
// marking cells valid as they are queued. It aborts early when the
// component touches solid terrain, reporting it connected; the
// partially visited cells are then invalidated by the caller.
func collectBlob(m *grid.Map, state []blobState, start core.Position) (visited []core.Position, unconnected bool) {
	state[start.Y*m.W+start.X] = blobValid
	stack := []core.Position{start}

	for len(stack) > 0 {
		pos := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visited = append(visited, pos)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := pos.X+dx, pos.Y+dy
				if nx < 0 || nx >= m.W || ny < 0 || ny >= m.H {
					continue
				}

				tile := m.GetXY(nx, ny)
				if tile.IsSolid() {
					return append(visited, stack...), false
				}

				// expansion itself is 4-neighbour, the full window
				// only feeds the solid check above
				if dx != 0 && dy != 0 {
					continue
				}
				if !tile.IsFreeze() {
					continue
				}

				switch state[ny*m.W+nx] {
				case blobInvalid:
					// neighbour already known to touch solid
					return append(visited, stack...), false
				case blobValid:
					continue
				}

				state[ny*m.W+nx] = blobValid
				stack = append(stack, core.P(nx, ny))
			}
		}
	}

	return visited, true
}
