package vortexje

import "github.com/baayen-heinz/vortexje-go/numerics"

// BoundaryLayer supplies a per-panel blowing velocity and friction force,
// and is given a chance to recompute both from the surface velocity field
// after every inner solve.
//
// Unlike the library this package is modeled on, "is this boundary layer
// real" is not decided by a runtime type check against a concrete null
// type. It is part of the interface: IsNontrivial reports whether the
// solver should keep iterating on this surface's boundary layer at all.
// NullBoundaryLayer (and anything embedding Trivial) answers false.
type BoundaryLayer interface {
	// Recalculate updates internal boundary-layer state from the current
	// surface velocity field, an n x 3 matrix of velocities in the same
	// panel order as the owning surface.
	Recalculate(surfaceVelocities numerics.Matrix)

	// BlowingVelocity returns the normal-velocity surrogate for panel i.
	BlowingVelocity(panel int) float64

	// Friction returns the friction force acting on panel i.
	Friction(panel int) numerics.Vector3

	// IsNontrivial reports whether the outer boundary-layer iteration
	// should keep calling Recalculate on this implementation.
	IsNontrivial() bool
}

// Trivial is an embeddable marker that answers IsNontrivial with false.
// Real boundary-layer implementations only embed it if they genuinely want
// to opt out of the outer iteration, which in practice only
// NullBoundaryLayer does.
type Trivial struct{}

func (Trivial) IsNontrivial() bool { return false }

// NullBoundaryLayer is the zero boundary layer: no blowing, no friction,
// recalculate is a no-op.
type NullBoundaryLayer struct {
	Trivial
}

func (NullBoundaryLayer) Recalculate(numerics.Matrix)        {}
func (NullBoundaryLayer) BlowingVelocity(panel int) float64  { return 0 }
func (NullBoundaryLayer) Friction(panel int) numerics.Vector3 { return numerics.Vector3{} }
