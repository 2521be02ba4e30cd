// Package walker implements the biased random-walk agent that carves
// corridors into the map, one probabilistic step at a time.
package walker

import (
	"errors"
	"fmt"

	"github.com/mapforge/coursegen/internal/config"
	"github.com/mapforge/coursegen/internal/core"
	"github.com/mapforge/coursegen/internal/grid"
	"github.com/mapforge/coursegen/internal/kernel"
	"github.com/mapforge/coursegen/internal/rnd"
)

var (
	// ErrFinished is returned when a finished walker is stepped.
	ErrFinished = errors.New("walker is finished")
	// ErrNoGoal is returned when an active walker unexpectedly has no
	// goal.
	ErrNoGoal = errors.New("walker has no goal")
	// ErrStuck is returned when the resample retry budget is
	// exhausted because every sampled target cell is locked.
	ErrStuck = errors.New("walker got stuck")
)

// resampleLimit bounds the in-step retry loop for locked target
// cells. Exhausting it is a step failure, not silent recovery.
const resampleLimit = 100

// Walker is the stateful carving agent. It is active while it has a
// goal and finished once the last waypoint's reach radius has been
// entered; Goal is nil if and only if Finished is true.
type Walker struct {
	Pos   core.Position
	Steps int

	InnerKernel *kernel.Kernel
	OuterKernel *kernel.Kernel

	Goal      *core.Position
	GoalIndex int
	Waypoints []core.Position
	Finished  bool

	// StepsSincePlatform counts steps since the last placed platform.
	StepsSincePlatform int

	// LastShift is the direction of the previous committed step,
	// valid once HasLastShift is true.
	LastShift    core.Direction
	HasLastShift bool

	// PulseCounter counts consecutive same-direction steps with a
	// small enough kernel; it gates the periodic pulse carve.
	PulseCounter int

	// History holds every position the walker has occupied, in order,
	// excluding the current one.
	History []core.Position

	lockW, lockH int
	locked       []bool
}

// New creates a walker at initial targeting the given waypoint list.
// The lock mask is sized to the map the walker will carve.
func New(initial core.Position, waypoints []core.Position, inner, outer *kernel.Kernel, m *grid.Map) *Walker {
	w := &Walker{
		Pos:         initial,
		InnerKernel: inner,
		OuterKernel: outer,
		Waypoints:   waypoints,
		lockW:       m.W,
		lockH:       m.H,
		locked:      make([]bool, m.W*m.H),
	}
	if len(waypoints) > 0 {
		goal := waypoints[0]
		w.Goal = &goal
	} else {
		w.Finished = true
	}
	return w
}

// IsGoalReached reports whether the current goal lies within the
// squared reach distance. A finished walker never reports true.
func (w *Walker) IsGoalReached(reachedDistSqr int) bool {
	return w.Goal != nil && w.Goal.DistanceSquared(w.Pos) <= reachedDistSqr
}

// NextWaypoint advances to the next waypoint, transitioning to
// finished when none remain.
func (w *Walker) NextWaypoint() {
	if w.GoalIndex+1 < len(w.Waypoints) {
		w.GoalIndex++
		goal := w.Waypoints[w.GoalIndex]
		w.Goal = &goal
		return
	}
	w.Finished = true
	w.Goal = nil
}

// Locked reports whether the walker may no longer visit p. Locked
// cells never unlock within a run.
func (w *Walker) Locked(p core.Position) bool {
	return w.locked[p.Y*w.lockW+p.X]
}

// ProbabilisticStep performs one biased step: sample a rated shift
// (with optional momentum override), resample while the target is
// locked, commit the move, trail the lock window, and stamp the
// kernels, pulsing on long straight stretches.
func (w *Walker) ProbabilisticStep(m *grid.Map, cfg *config.GenerationConfig, random *rnd.Random) error {
	if w.Finished {
		return ErrFinished
	}
	if w.Goal == nil {
		return ErrNoGoal
	}

	// save the pre-move position before it is updated
	w.History = append(w.History, w.Pos)

	shifts := w.Pos.RatedShifts(*w.Goal, m.W, m.H)
	currentShift := random.SampleShift(shifts)

	// momentum: re-use the last direction with configured probability
	if w.HasLastShift && random.WithProbability(cfg.MomentumProb) {
		currentShift = w.LastShift
	}

	targetPos, err := w.Pos.ShiftInDirection(currentShift, m.W, m.H)
	if err != nil {
		return err
	}

	// resample while the target cell is locked
	for attempt := 0; w.Locked(targetPos); attempt++ {
		if attempt >= resampleLimit {
			return fmt.Errorf("%w after %d resamples at (%d,%d)", ErrStuck, resampleLimit, w.Pos.X, w.Pos.Y)
		}
		currentShift = random.SampleShift(shifts)
		targetPos, err = w.Pos.ShiftInDirection(currentShift, m.W, m.H)
		if err != nil {
			return err
		}
	}

	sameDir := w.HasLastShift && currentShift == w.LastShift

	w.Pos = targetPos
	w.Steps++

	w.lockPreviousLocation(cfg.LockDelay, m, cfg)

	performPulse := cfg.EnablePulse &&
		((sameDir && w.PulseCounter > cfg.PulseStraightDelay) ||
			(!sameDir && w.PulseCounter > cfg.PulseCornerDelay))

	if performPulse {
		w.PulseCounter = 0
		if err := m.ApplyKernel(w.Pos, kernel.New(w.InnerKernel.Size+4, 0.0), grid.RoleOuter, grid.Freeze); err != nil {
			return err
		}
		if err := m.ApplyKernel(w.Pos, kernel.New(w.InnerKernel.Size+2, 0.0), grid.RoleInner, grid.Empty); err != nil {
			return err
		}
	} else {
		if err := m.ApplyKernel(w.Pos, w.OuterKernel, grid.RoleOuter, grid.Freeze); err != nil {
			return err
		}
		voidTile := grid.Empty
		if w.Steps < cfg.FadeSteps {
			voidTile = grid.EmptyReserved
		}
		if err := m.ApplyKernel(w.Pos, w.InnerKernel, grid.RoleInner, voidTile); err != nil {
			return err
		}
	}

	if sameDir && w.InnerKernel.Size <= cfg.PulseMaxKernelSize {
		w.PulseCounter++
	} else {
		w.PulseCounter = 0
	}

	w.LastShift = currentShift
	w.HasLastShift = true

	return nil
}

// lockPreviousLocation locks a square neighborhood around the
// position the walker occupied delay steps ago, so it can never
// re-carve immediately behind itself. The window half-size defaults
// to the largest configured inner kernel size and can be overridden
// via the config.
func (w *Walker) lockPreviousLocation(delay int, m *grid.Map, cfg *config.GenerationConfig) {
	if len(w.History) <= delay {
		return
	}
	previous := w.History[len(w.History)-delay]

	window := cfg.LockWindowSize
	if window <= 0 {
		window = cfg.MaxInnerSize()
	}

	topLeft, err := previous.ShiftedBy(-window, -window, m.W, m.H)
	if err != nil {
		return
	}
	botRight, err := previous.ShiftedBy(window, window, m.W, m.H)
	if err != nil {
		return
	}

	for y := topLeft.Y; y <= botRight.Y; y++ {
		for x := topLeft.X; x <= botRight.X; x++ {
			w.locked[y*w.lockW+x] = true
		}
	}
}

// MutateKernel resamples the kernel parameters, each with its own
// configured probability. Every branch not taken still consumes the
// canonical two draws via SkipN so streams stay comparable across
// configs that toggle individual mutations. A mutated outer size
// smaller than the inner size is a fatal defect, never silently
// repaired.
func (w *Walker) MutateKernel(cfg *config.GenerationConfig, random *rnd.Random) {
	innerSize := w.InnerKernel.Size
	innerCirc := w.InnerKernel.Circularity
	outerCirc := w.OuterKernel.Circularity
	outerMargin := w.OuterKernel.Size - innerSize
	modified := false

	if random.WithProbability(cfg.InnerSizeMutProb) {
		innerSize = random.SampleInnerKernelSize()
		modified = true
	} else {
		random.SkipN(2)
	}

	if random.WithProbability(cfg.OuterSizeMutProb) {
		outerMargin = random.SampleOuterKernelMargin()
		modified = true
	} else {
		random.SkipN(2)
	}

	if random.WithProbability(cfg.InnerRadMutProb) {
		innerCirc = random.SampleCircularity()
		modified = true
	} else {
		random.SkipN(2)
	}

	if random.WithProbability(cfg.OuterRadMutProb) {
		outerCirc = random.SampleCircularity()
		modified = true
	} else {
		random.SkipN(2)
	}

	outerSize := innerSize + outerMargin

	// small kernels must stay fully rectangular
	if innerSize <= 3 {
		innerCirc = 0.0
	}
	if outerSize <= 3 {
		outerCirc = 0.0
	}

	if outerSize < innerSize {
		panic(fmt.Sprintf("walker: outer kernel size %d smaller than inner %d", outerSize, innerSize))
	}

	if modified {
		w.InnerKernel = kernel.New(innerSize, innerCirc)
		w.OuterKernel = kernel.New(outerSize, outerCirc)
	}
}

// CheckPlatform places a platform at the walker's position when due.
// Below minDistance steps since the last platform nothing happens;
// beyond maxDistance a small room is forced below the walker so no
// hazard corridor grows unreachably long; in between, a platform
// strip is placed only if a clearance rectangle around the walker is
// entirely empty.
func (w *Walker) CheckPlatform(m *grid.Map, minDistance, maxDistance int) error {
	w.StepsSincePlatform++

	if w.StepsSincePlatform < minDistance {
		return nil
	}

	if w.StepsSincePlatform > maxDistance {
		roomPos, err := w.Pos.ShiftedBy(0, 6, m.W, m.H)
		if err != nil {
			return err
		}
		if err := m.GenerateRoom(roomPos, 5, 3, nil); err != nil {
			return err
		}
		w.StepsSincePlatform = 0
		return nil
	}

	clearTL, err := w.Pos.ShiftedBy(-3, -3, m.W, m.H)
	if err != nil {
		return err
	}
	clearBR, err := w.Pos.ShiftedBy(3, 2, m.W, m.H)
	if err != nil {
		return err
	}
	areaEmpty, err := m.CheckAreaAll(clearTL, clearBR, grid.Empty)
	if err != nil {
		return err
	}
	if areaEmpty {
		stripTL, err := w.Pos.ShiftedBy(-1, 0, m.W, m.H)
		if err != nil {
			return err
		}
		stripBR, err := w.Pos.ShiftedBy(1, 0, m.W, m.H)
		if err != nil {
			return err
		}
		if err := m.SetArea(stripTL, stripBR, grid.Platform, grid.ReplaceEmptyOnly); err != nil {
			return err
		}
		w.StepsSincePlatform = 0
	}

	return nil
}
