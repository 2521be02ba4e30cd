// Package grid implements the mutable tile map one generation run
// carves into: bounds-checked kernel application, rectangular area
// queries and fills, and room stamping. Grid dimensions never change
// after creation.
package grid

import (
	"fmt"

	"github.com/mapforge/coursegen/internal/core"
	"github.com/mapforge/coursegen/internal/kernel"
)

// Map is a dense W*H tile grid with a designated spawn cell. Tiles
// are stored row-major: index = y*W + x.
type Map struct {
	W, H  int
	Spawn core.Position

	tiles []Tile
}

// NewMap creates a map of the given dimensions with every cell set to
// fill.
func NewMap(w, h int, fill Tile, spawn core.Position) *Map {
	m := &Map{
		W:     w,
		H:     h,
		Spawn: spawn,
		tiles: make([]Tile, w*h),
	}
	if fill != Empty {
		for i := range m.tiles {
			m.tiles[i] = fill
		}
	}
	return m
}

func (m *Map) index(x, y int) int {
	return y*m.W + x
}

// PosInBounds reports whether p lies inside the grid.
func (m *Map) PosInBounds(p core.Position) bool {
	return p.InBounds(m.W, m.H)
}

// Get returns the tile at p. p must be in bounds.
func (m *Map) Get(p core.Position) Tile {
	return m.tiles[m.index(p.X, p.Y)]
}

// GetXY returns the tile at (x, y). The coordinate must be in bounds.
func (m *Map) GetXY(x, y int) Tile {
	return m.tiles[m.index(x, y)]
}

// Set writes the tile at p unconditionally. p must be in bounds.
func (m *Map) Set(p core.Position, t Tile) {
	m.tiles[m.index(p.X, p.Y)] = t
}

// SetXY writes the tile at (x, y) unconditionally.
func (m *Map) SetXY(x, y int, t Tile) {
	m.tiles[m.index(x, y)] = t
}

// Tiles exposes the raw tile slice for read-only bulk access, such as
// exporting or diffing finished grids.
func (m *Map) Tiles() []Tile {
	return m.tiles
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	tiles := make([]Tile, len(m.tiles))
	copy(tiles, m.tiles)
	return &Map{W: m.W, H: m.H, Spawn: m.Spawn, tiles: tiles}
}

// Equal reports whether two maps have identical dimensions, spawn and
// tile contents.
func (m *Map) Equal(other *Map) bool {
	if m.W != other.W || m.H != other.H || m.Spawn != other.Spawn {
		return false
	}
	for i, t := range m.tiles {
		if t != other.tiles[i] {
			return false
		}
	}
	return true
}

// ApplyKernel stamps a kernel footprint centered on center. If any
// active cell of the footprint would fall outside the grid the whole
// operation is rejected with ErrOutOfBounds before any write occurs.
// Writes go through the role's tile-transition rule: an inner stamp
// forces t onto every active cell, an outer stamp only promotes
// solid material to Freeze.
func (m *Map) ApplyKernel(center core.Position, k *kernel.Kernel, role KernelRole, t Tile) error {
	offset := k.Size / 2      // kernel extent left/up of the center
	extend := k.Size - offset // kernel extent right/down of the center

	if center.X < offset || center.Y < offset ||
		center.X+extend > m.W || center.Y+extend > m.H {
		return fmt.Errorf("kernel size %d at (%d,%d): %w", k.Size, center.X, center.Y, core.ErrOutOfBounds)
	}

	rootX := center.X - offset
	rootY := center.Y - offset
	for ky := 0; ky < k.Size; ky++ {
		for kx := 0; kx < k.Size; kx++ {
			if !k.Active(kx, ky) {
				continue
			}
			idx := m.index(rootX+kx, rootY+ky)
			m.tiles[idx] = kernelWrite(role, m.tiles[idx], t)
		}
	}

	return nil
}

// normalizeArea orders two corners into top-left and bottom-right and
// validates that the rectangle lies inside the grid.
func (m *Map) normalizeArea(a, b core.Position) (topLeft, botRight core.Position, err error) {
	topLeft = core.P(min(a.X, b.X), min(a.Y, b.Y))
	botRight = core.P(max(a.X, b.X), max(a.Y, b.Y))
	if !m.PosInBounds(topLeft) || !m.PosInBounds(botRight) {
		return topLeft, botRight, fmt.Errorf("area (%d,%d)-(%d,%d): %w",
			topLeft.X, topLeft.Y, botRight.X, botRight.Y, core.ErrOutOfBounds)
	}
	return topLeft, botRight, nil
}

// SetArea fills the rectangle spanned by a and b with t. Only cells
// the overwrite policy allows are replaced.
func (m *Map) SetArea(a, b core.Position, t Tile, policy Overwrite) error {
	topLeft, botRight, err := m.normalizeArea(a, b)
	if err != nil {
		return err
	}
	for y := topLeft.Y; y <= botRight.Y; y++ {
		for x := topLeft.X; x <= botRight.X; x++ {
			idx := m.index(x, y)
			if policy.allows(m.tiles[idx]) {
				m.tiles[idx] = t
			}
		}
	}
	return nil
}

// CheckAreaAll reports whether every cell in the rectangle spanned by
// a and b equals t.
func (m *Map) CheckAreaAll(a, b core.Position, t Tile) (bool, error) {
	topLeft, botRight, err := m.normalizeArea(a, b)
	if err != nil {
		return false, err
	}
	for y := topLeft.Y; y <= botRight.Y; y++ {
		for x := topLeft.X; x <= botRight.X; x++ {
			if m.tiles[m.index(x, y)] != t {
				return false, nil
			}
		}
	}
	return true, nil
}

// CountOccurrenceInArea counts the cells equal to t in the rectangle
// spanned by a and b.
func (m *Map) CountOccurrenceInArea(a, b core.Position, t Tile) (int, error) {
	topLeft, botRight, err := m.normalizeArea(a, b)
	if err != nil {
		return 0, err
	}
	count := 0
	for y := topLeft.Y; y <= botRight.Y; y++ {
		for x := topLeft.X; x <= botRight.X; x++ {
			if m.tiles[m.index(x, y)] == t {
				count++
			}
		}
	}
	return count, nil
}

// GenerateRoom carves a square room centered on pos: void of
// half-size roomSize, a Freeze border over surrounding solid, an
// optional zone fill (Start/Finish) inset by one cell, and a Platform
// strip along the bottom row inset by platformMargin on both sides.
func (m *Map) GenerateRoom(pos core.Position, roomSize, platformMargin int, zone *Tile) error {
	// whole footprint including border must fit
	if _, err := pos.ShiftedBy(roomSize+1, roomSize+1, m.W, m.H); err != nil {
		return err
	}
	if _, err := pos.ShiftedBy(-roomSize-1, -roomSize-1, m.W, m.H); err != nil {
		return err
	}

	carveTL := core.P(pos.X-roomSize, pos.Y-roomSize)
	carveBR := core.P(pos.X+roomSize, pos.Y+roomSize)
	if err := m.SetArea(carveTL, carveBR, Empty, ReplaceAll); err != nil {
		return err
	}

	borderTL := core.P(pos.X-roomSize-1, pos.Y-roomSize-1)
	borderBR := core.P(pos.X+roomSize+1, pos.Y+roomSize+1)
	if err := m.SetArea(borderTL, borderBR, Freeze, ReplaceSolidOnly); err != nil {
		return err
	}

	if zone != nil {
		zoneTL := core.P(pos.X-roomSize+1, pos.Y-roomSize+1)
		zoneBR := core.P(pos.X+roomSize-1, pos.Y+roomSize-1)
		if err := m.SetArea(zoneTL, zoneBR, *zone, ReplaceAll); err != nil {
			return err
		}
	}

	platTL := core.P(pos.X-roomSize+platformMargin, pos.Y+roomSize-1)
	platBR := core.P(pos.X+roomSize-platformMargin, pos.Y+roomSize-1)
	return m.SetArea(platTL, platBR, Platform, ReplaceAll)
}
