// Package kernel implements the square boolean footprints the walker
// stamps onto the map, plus the precomputed table of radii that
// produce well-formed footprints.
package kernel

import "fmt"

// Kernel is an immutable odd-sized square mask. A cell at offset
// (dx, dy) from the center is active iff its squared Euclidean
// distance from the center is within Radius. Circularity 0 yields a
// full square (radius reaches the corners), circularity 1 prunes the
// footprint down to a disc inscribed in the square. Kernels are value
// objects: once constructed they are never mutated, only replaced.
type Kernel struct {
	Size        int
	Circularity float64
	// Radius is the squared radius the footprint was built from.
	Radius float64

	active []bool
}

// RadiusBounds returns the smallest and largest meaningful squared
// radius for a kernel of the given size. The minimum reaches the edge
// midpoints (inscribed disc), the maximum reaches the corners (full
// square).
func RadiusBounds(size int) (minRadius, maxRadius float64) {
	center := float64(size-1) / 2.0
	return center * center, 2.0 * center * center
}

// New builds a kernel of the given odd size. Circularity outside
// [0, 1] is clamped; sizes up to 3 are forced to a full square, as
// sub-4 discs are indistinguishable from squares and their rounding
// artifacts would carve unreachable single-cell corners. Size must be
// odd and positive; violating that is a programming error.
func New(size int, circularity float64) *Kernel {
	if size < 1 || size%2 == 0 {
		panic(fmt.Sprintf("kernel: invalid size %d, must be odd and positive", size))
	}
	if circularity < 0 {
		circularity = 0
	}
	if circularity > 1 {
		circularity = 1
	}
	if size <= 3 {
		circularity = 0
	}

	minRadius, maxRadius := RadiusBounds(size)
	radius := circularity*minRadius + (1.0-circularity)*maxRadius

	return newWithRadius(size, circularity, radius)
}

// NewWithRadius builds a kernel from an explicit squared radius, as
// produced by Table.ValidRadii. Size constraints match New.
func NewWithRadius(size int, radius float64) *Kernel {
	if size < 1 || size%2 == 0 {
		panic(fmt.Sprintf("kernel: invalid size %d, must be odd and positive", size))
	}
	return newWithRadius(size, 0, radius)
}

func newWithRadius(size int, circularity, radius float64) *Kernel {
	k := &Kernel{
		Size:        size,
		Circularity: circularity,
		Radius:      radius,
		active:      make([]bool, size*size),
	}

	center := float64(size-1) / 2.0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			k.active[y*size+x] = dx*dx+dy*dy <= radius
		}
	}

	return k
}

// Active reports whether the cell at mask offset (x, y) is part of
// the footprint. Offsets are in [0, Size).
func (k *Kernel) Active(x, y int) bool {
	return k.active[y*k.Size+x]
}

// Center returns the index of the center cell along either axis.
func (k *Kernel) Center() int {
	return k.Size / 2
}

// ActiveCount returns how many cells of the mask are active.
func (k *Kernel) ActiveCount() int {
	count := 0
	for _, a := range k.active {
		if a {
			count++
		}
	}
	return count
}

// Equal reports whether two kernels have the same size and active
// pattern. Kernels with equal masks but different radii compare equal:
// only the footprint matters for carving.
func (k *Kernel) Equal(other *Kernel) bool {
	if k.Size != other.Size {
		return false
	}
	for i, a := range k.active {
		if a != other.active[i] {
			return false
		}
	}
	return true
}
