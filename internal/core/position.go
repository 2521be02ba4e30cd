// Package core provides the fundamental grid geometry types for the
// map generator. It contains no external dependencies to keep the
// engine logic pure and testable.
package core

import (
	"errors"
	"fmt"
	"sort"
)

// ErrOutOfBounds is returned when a shift or area operation would
// leave the grid.
var ErrOutOfBounds = errors.New("position out of bounds")

// Direction is one of the four axis-aligned shift directions.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Delta returns the coordinate offset of one step in the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Position is an integer cell coordinate on the grid.
// X grows rightwards, Y grows downwards.
type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// P is a shorthand constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// InBounds reports whether the position lies inside a w*h grid.
func (p Position) InBounds(w, h int) bool {
	return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h
}

// DistanceSquared returns the squared Euclidean distance to other.
func (p Position) DistanceSquared(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// ShiftedBy returns the position moved by an arbitrary signed offset.
// It fails with ErrOutOfBounds if the result would leave a w*h grid.
func (p Position) ShiftedBy(dx, dy, w, h int) (Position, error) {
	shifted := Position{X: p.X + dx, Y: p.Y + dy}
	if !shifted.InBounds(w, h) {
		return Position{}, fmt.Errorf("shift (%d,%d) from (%d,%d): %w", dx, dy, p.X, p.Y, ErrOutOfBounds)
	}
	return shifted, nil
}

// ShiftInDirection returns the position moved one cell in the given
// direction, failing with ErrOutOfBounds when leaving a w*h grid.
func (p Position) ShiftInDirection(dir Direction, w, h int) (Position, error) {
	dx, dy := dir.Delta()
	return p.ShiftedBy(dx, dy, w, h)
}

// RatedShifts returns all four shift directions ordered by how
// desirable they are for approaching goal: the first entry reduces the
// squared distance the most. Shifts that would leave the grid are
// ranked last. The sort is stable, so ties keep the fixed candidate
// order (left, up, right, down).
func (p Position) RatedShifts(goal Position, w, h int) [4]Direction {
	shifts := [4]Direction{DirLeft, DirUp, DirRight, DirDown}

	var ratings [4]int
	for _, dir := range shifts {
		shifted, err := p.ShiftInDirection(dir, w, h)
		if err != nil {
			// never pick an out-of-bounds shift over a valid one
			ratings[dir] = int(^uint(0) >> 1)
			continue
		}
		ratings[dir] = shifted.DistanceSquared(goal)
	}

	sort.SliceStable(shifts[:], func(i, j int) bool {
		return ratings[shifts[i]] < ratings[shifts[j]]
	})

	return shifts
}
