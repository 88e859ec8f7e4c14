package vortexje

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baayen-heinz/vortexje-go/config"
	"github.com/baayen-heinz/vortexje-go/meshes"
	"github.com/baayen-heinz/vortexje-go/numerics"
)

// constantFriction is a BoundaryLayer stub returning the same friction
// vector for every panel, used to check that Force/Moment actually fold
// the friction contribution in rather than only the pressure term.
type constantFriction struct {
	Trivial
	force numerics.Vector3
}

func (constantFriction) Recalculate(numerics.Matrix)     {}
func (constantFriction) BlowingVelocity(int) float64     { return 0 }
func (c constantFriction) Friction(int) numerics.Vector3 { return c.force }

// TestForceIncludesFriction checks that Force sums the boundary layer's
// per-panel friction alongside the pressure contribution.
func TestForceIncludesFriction(t *testing.T) {
	solver := NewSolver(t.TempDir())

	body := NewBody("sphere")
	surface := meshes.NewSphere(1.0, 8, 12)
	body.AddNonLiftingSurface(surface)
	solver.AddBody(body)
	solver.SetFreestreamVelocity(Vector3{})
	solver.SetFluidDensity(1.225)

	p := config.DefaultParameters()
	p.ConvectWake = false
	solver.InitializeWakes(0.01, p.ConvectWake, p.StaticWakeLength)
	ok := solver.Solve(0.01, true, p)
	if !ok {
		t.Fatal("solve did not converge")
	}
	fNoFriction := solver.Force(body)

	// Swap in a per-panel friction force after the solve, directly on the
	// already-registered entry, and recompute.
	friction := Vector3{0.01, 0, 0}
	for i := range solver.nonWakeSurfaces {
		if solver.nonWakeSurfaces[i].surface.ID() == surface.ID() {
			solver.nonWakeSurfaces[i].boundaryLayer = constantFriction{force: friction}
		}
	}
	fWithFriction := solver.Force(body)

	expected := fNoFriction.Add(friction.Scale(float64(surface.NPanels())))
	assert.InDelta(t, expected[0], fWithFriction[0], 1e-9)
	assert.InDelta(t, expected[1], fWithFriction[1], 1e-9)
	assert.InDelta(t, expected[2], fWithFriction[2], 1e-9)
}

// TestMomentLeverArm checks that moving the moment reference point by an
// offset perpendicular to the (x-aligned) friction force changes Moment by
// the expected cross product of the offset with the total force.
func TestMomentLeverArm(t *testing.T) {
	solver := NewSolver(t.TempDir())

	body := NewBody("plate")
	surface := meshes.NewSphere(1.0, 4, 6)
	body.AddNonLiftingSurface(surface)
	solver.AddBody(body)
	solver.SetFreestreamVelocity(Vector3{})
	solver.SetFluidDensity(1.225)

	friction := Vector3{1, 0, 0}
	for i := range solver.nonWakeSurfaces {
		solver.nonWakeSurfaces[i].boundaryLayer = constantFriction{force: friction}
	}

	p := config.DefaultParameters()
	p.ConvectWake = false
	solver.InitializeWakes(0.01, p.ConvectWake, p.StaticWakeLength)
	ok := solver.Solve(0.01, true, p)
	if !ok {
		t.Fatal("solve did not converge")
	}

	mOrigin := solver.Moment(body, Vector3{})
	mOffset := solver.Moment(body, Vector3{0, 1, 0})

	// Moment(x) = sum (r_i - x) x F_i = Moment(0) - x X (sum F_i), so moving
	// the reference point by d changes the moment by -d x (total force).
	d := Vector3{0, 1, 0}
	diff := mOffset.Sub(mOrigin)
	expected := d.Cross(solver.Force(body)).Scale(-1)

	assert.InDelta(t, expected[0], diff[0], 1e-6)
	assert.InDelta(t, expected[1], diff[1], 1e-6)
	assert.InDelta(t, expected[2], diff[2], 1e-6)
}

// TestForceIdempotenceAcrossMoment checks that calling Force and Moment
// repeatedly, in either order, never mutates the solved state: every call
// after the solve must return the same values.
func TestForceIdempotenceAcrossMoment(t *testing.T) {
	solver := NewSolver(t.TempDir())
	body := NewBody("sphere")
	body.AddNonLiftingSurface(meshes.NewSphere(1.0, 8, 12))
	solver.AddBody(body)
	solver.SetFreestreamVelocity(Vector3{10, 0, 0})
	solver.SetFluidDensity(1.225)

	p := config.DefaultParameters()
	p.ConvectWake = false
	solver.InitializeWakes(0.01, p.ConvectWake, p.StaticWakeLength)
	ok := solver.Solve(0.01, true, p)
	if !ok {
		t.Fatal("solve did not converge")
	}

	f1 := solver.Force(body)
	m1 := solver.Moment(body, Vector3{})
	f2 := solver.Force(body)
	m2 := solver.Moment(body, Vector3{})

	assert.Equal(t, f1, f2)
	assert.Equal(t, m1, m2)
}
