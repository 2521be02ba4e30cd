package generator

import (
	"sort"

	"github.com/mapforge/coursegen/internal/core"
	"github.com/mapforge/coursegen/internal/grid"
)

// Skip is a candidate shortcut tunnel through a wall, found by corner
// detection and validated by walking the wall cross-section.
type Skip struct {
	Start     core.Position
	End       core.Position
	Length    int
	Direction core.Direction
}

// cornerShape is one of the fixed 5x5-window patterns that mark an
// Empty cell as a possible tunnel entrance. All five offsets must
// hold Freeze for the pattern to match.
type cornerShape struct {
	offsets   [5][2]int
	direction core.Direction
}

// Two patterns per direction, mirrored across the corridor axis.
var cornerShapes = [8]cornerShape{
	{[5][2]int{{0, 1}, {1, -2}, {1, -1}, {1, 0}, {1, 1}}, core.DirRight},
	{[5][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {1, 2}}, core.DirRight},
	{[5][2]int{{0, 1}, {-1, -2}, {-1, -1}, {-1, 0}, {-1, 1}}, core.DirLeft},
	{[5][2]int{{0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {-1, 2}}, core.DirLeft},
	{[5][2]int{{1, 0}, {-2, -1}, {-1, -1}, {0, -1}, {1, -1}}, core.DirUp},
	{[5][2]int{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {2, -1}}, core.DirUp},
	{[5][2]int{{1, 0}, {-2, 1}, {-1, 1}, {0, 1}, {1, 1}}, core.DirDown},
	{[5][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {2, 1}}, core.DirDown},
}

// FindCorners slides a 5x5 window over every interior cell and tests
// the eight corner patterns against it. Each match yields a candidate
// tunnel start position and the direction pointing into the wall.
func FindCorners(m *grid.Map) []Skip {
	var candidates []Skip

	const windowSize = 2
	for y := windowSize; y < m.H-windowSize; y++ {
		for x := windowSize; x < m.W-windowSize; x++ {
			if m.GetXY(x, y) != grid.Empty {
				continue
			}
			for _, shape := range cornerShapes {
				match := true
				for _, off := range shape.offsets {
					if m.GetXY(x+off[0], y+off[1]) != grid.Freeze {
						match = false
						break
					}
				}
				if match {
					candidates = append(candidates, Skip{
						Start:     core.P(x, y),
						Direction: shape.direction,
					})
				}
			}
		}
	}

	return candidates
}

// CheckCornerSkip walks from a corner candidate into the wall. The
// tile sequence must pass the stages Freeze, Hookable, Freeze, Empty
// in order; any other tile at any stage invalidates the candidate.
// A skip is returned only if the final stage is reached with a length
// inside (minLength, maxLength).
func CheckCornerSkip(m *grid.Map, candidate Skip, minLength, maxLength int) (Skip, bool) {
	pos := candidate.Start

	length := 0
	stage := 0
	for stage != 4 && length < maxLength {
		next, err := pos.ShiftInDirection(candidate.Direction, m.W, m.H)
		if err != nil {
			return Skip{}, false
		}
		pos = next

		switch tile := m.Get(pos); {
		case (stage == 0 || stage == 1) && tile == grid.Freeze:
			stage = 1
		case (stage == 1 || stage == 2) && tile == grid.Hookable:
			stage = 2
		case (stage == 2 || stage == 3) && tile == grid.Freeze:
			stage = 3
		case stage == 3 && tile == grid.Empty:
			stage = 4
		default:
			return Skip{}, false
		}

		length++
	}

	if stage != 4 || length <= minLength {
		return Skip{}, false
	}

	candidate.End = pos
	candidate.Length = length
	return candidate, true
}

// bounds returns the axis-aligned rectangle covered by the tunnel.
func (s Skip) bounds() (topLeft, botRight core.Position) {
	topLeft = core.P(min(s.Start.X, s.End.X), min(s.Start.Y, s.End.Y))
	botRight = core.P(max(s.Start.X, s.End.X), max(s.Start.Y, s.End.Y))
	return topLeft, botRight
}

// CountSkipNeighbours counts Hookable cells running parallel to the
// tunnel at the given lateral offset, taking the minimum of the two
// sides: a tunnel is only worth carving if it breaches an actual
// wall, not a thin spur.
func CountSkipNeighbours(m *grid.Map, s Skip, offset int) (int, error) {
	topLeft, botRight := s.bounds()

	dx, dy := 0, offset
	if s.Direction == core.DirUp || s.Direction == core.DirDown {
		dx, dy = offset, 0
	}

	countSide := func(sdx, sdy int) (int, error) {
		a, err := topLeft.ShiftedBy(sdx, sdy, m.W, m.H)
		if err != nil {
			return 0, err
		}
		b, err := botRight.ShiftedBy(sdx, sdy, m.W, m.H)
		if err != nil {
			return 0, err
		}
		return m.CountOccurrenceInArea(a, b, grid.Hookable)
	}

	first, err := countSide(dx, dy)
	if err != nil {
		return 0, err
	}
	second, err := countSide(-dx, -dy)
	if err != nil {
		return 0, err
	}

	return min(first, second), nil
}

// GenerateSkip carves the tunnel rectangle with the given tile over
// solid and freeze cells. Full skips additionally pad Freeze over
// solid cells on both lateral sides; freeze-only skips leave the
// sides alone.
func GenerateSkip(m *grid.Map, s Skip, tile grid.Tile) {
	topLeft, botRight := s.bounds()

	_ = m.SetArea(topLeft, botRight, tile, grid.ReplaceSolidFreeze)

	if tile.IsFreeze() {
		return
	}

	dx, dy := 0, 1
	if s.Direction == core.DirUp || s.Direction == core.DirDown {
		dx, dy = 1, 0
	}
	for _, side := range [2]int{-1, 1} {
		a, err := topLeft.ShiftedBy(side*dx, side*dy, m.W, m.H)
		if err != nil {
			continue
		}
		b, err := botRight.ShiftedBy(side*dx, side*dy, m.W, m.H)
		if err != nil {
			continue
		}
		_ = m.SetArea(a, b, grid.Freeze, grid.ReplaceSolidOnly)
	}
}

type skipStatus int

const (
	skipInvalid skipStatus = iota
	skipFreezeOnly
	skipValid
)

// GenerateAllSkips detects, selects, and carves shortcut tunnels.
// Candidates are processed shortest first; accepting one invalidates
// every later candidate whose endpoints come within the minimum
// squared spacing of its endpoints, so accepted skips never cluster.
// A candidate without a parallel wall at lateral offset 2 is either
// discarded or, if it still has direct Hookable neighbours at offset
// 1, downgraded to a freeze-only tunnel.
func GenerateAllSkips(m *grid.Map, minLength, maxLength, minSpacingSqr int) []Skip {
	var skips []Skip
	for _, candidate := range FindCorners(m) {
		if skip, ok := CheckCornerSkip(m, candidate, minLength, maxLength); ok {
			skips = append(skips, skip)
		}
	}

	sort.SliceStable(skips, func(i, j int) bool {
		return skips[i].Length < skips[j].Length
	})

	status := make([]skipStatus, len(skips))
	for i := range status {
		status[i] = skipValid
	}

	for i := range skips {
		if status[i] == skipInvalid {
			continue
		}
		skip := skips[i]

		if n, err := CountSkipNeighbours(m, skip, 2); err != nil || n <= 0 {
			if n, err := CountSkipNeighbours(m, skip, 1); err == nil && n >= 1 {
				status[i] = skipFreezeOnly
			} else {
				status[i] = skipInvalid
				continue
			}
		}

		for j := i + 1; j < len(skips); j++ {
			other := skips[j]
			if skip.Start.DistanceSquared(other.Start) < minSpacingSqr ||
				skip.Start.DistanceSquared(other.End) < minSpacingSqr ||
				skip.End.DistanceSquared(other.Start) < minSpacingSqr ||
				skip.End.DistanceSquared(other.End) < minSpacingSqr {
				status[j] = skipInvalid
			}
		}
	}

	var carved []Skip
	for i, skip := range skips {
		switch status[i] {
		case skipValid:
			GenerateSkip(m, skip, grid.Empty)
			carved = append(carved, skip)
		case skipFreezeOnly:
			GenerateSkip(m, skip, grid.Freeze)
			carved = append(carved, skip)
		}
	}

	return carved
}
