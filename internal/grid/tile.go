package grid

// Tile is the kind of block occupying one grid cell. Exactly one
// kind occupies each cell at any time.
type Tile uint8

const (
	// Empty is carved void the player moves through.
	Empty Tile = iota
	// Hookable is solid terrain.
	Hookable
	// Freeze is the hazard border padded around carved corridors.
	Freeze
	// Platform is a rest position placed inside corridors.
	Platform
	// EmptyReserved is carved void from the fade-in window near the
	// spawn. Most passes treat it like Empty, but it is distinguishable
	// for early-region heuristics and is never refilled.
	EmptyReserved
	// Start marks the start-room zone.
	Start
	// Finish marks the finish-room zone.
	Finish
)

func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case Hookable:
		return "hookable"
	case Freeze:
		return "freeze"
	case Platform:
		return "platform"
	case EmptyReserved:
		return "empty-reserved"
	case Start:
		return "start"
	case Finish:
		return "finish"
	}
	return "unknown"
}

// IsSolid reports whether the tile is solid terrain.
func (t Tile) IsSolid() bool {
	return t == Hookable
}

// IsFreeze reports whether the tile is hazard padding.
func (t Tile) IsFreeze() bool {
	return t == Freeze
}

// IsEmpty reports whether the tile is carved void, reserved or not.
func (t Tile) IsEmpty() bool {
	return t == Empty || t == EmptyReserved
}

// Overwrite selects which existing tiles a rectangular fill may
// replace. The directionality prevents platform and skip edits from
// erasing already-finalized hazard padding.
type Overwrite int

const (
	// ReplaceAll overwrites unconditionally.
	ReplaceAll Overwrite = iota
	// ReplaceEmptyOnly overwrites only carved void.
	ReplaceEmptyOnly
	// ReplaceSolidOnly overwrites only solid terrain.
	ReplaceSolidOnly
	// ReplaceSolidFreeze overwrites solid terrain and hazard padding.
	ReplaceSolidFreeze
)

func (o Overwrite) allows(t Tile) bool {
	switch o {
	case ReplaceAll:
		return true
	case ReplaceEmptyOnly:
		return t.IsEmpty()
	case ReplaceSolidOnly:
		return t.IsSolid()
	case ReplaceSolidFreeze:
		return t.IsSolid() || t.IsFreeze()
	}
	return false
}

// KernelRole distinguishes the two stamp semantics of a kernel
// application.
type KernelRole int

const (
	// RoleInner is the void-carving stamp: it forces the target tile
	// regardless of what is present.
	RoleInner KernelRole = iota
	// RoleOuter is the hazard-padding stamp: it only ever installs
	// Freeze over solid material, never overwriting emptiness.
	RoleOuter
)

// outerTransition maps the current tile to its replacement under an
// outer-kernel write. Tiles not listed are left untouched.
var outerTransition = map[Tile]Tile{
	Hookable: Freeze,
	Freeze:   Freeze,
}

// kernelWrite is the tile-transition rule for kernel stamps, keyed by
// kernel role and the tile currently present.
func kernelWrite(role KernelRole, current, requested Tile) Tile {
	if role == RoleInner {
		return requested
	}
	if replacement, ok := outerTransition[current]; ok {
		return replacement
	}
	return current
}
