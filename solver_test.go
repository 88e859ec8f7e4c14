package vortexje

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baayen-heinz/vortexje-go/config"
	"github.com/baayen-heinz/vortexje-go/meshes"
)

func addWingBody(solver *Solver, ls *meshes.LiftingSurface, freestream Vector3) *Body {
	body := NewBody(ls.ID())
	wake := meshes.NewWake(ls.ID()+"_wake", ls.NSpanwiseNodes(), ls.NSpanwisePanels())
	body.AddLiftingSurface(ls, wake, NullBoundaryLayer{})
	solver.AddBody(body)
	solver.SetFreestreamVelocity(freestream)
	solver.SetFluidDensity(1.225)
	return body
}

func stepOnce(t *testing.T, solver *Solver, p config.Parameters, dt float64) {
	t.Helper()
	solver.InitializeWakes(dt, p.ConvectWake, p.StaticWakeLength)
	ok := solver.Solve(dt, true, p)
	require.True(t, ok, "solve did not converge")
}

// TestTangencyInvariant checks that after a solve, the computed surface
// velocity has (near) zero component along the panel normal, for every
// panel of a stationary wing in a uniform free stream.
func TestTangencyInvariant(t *testing.T) {
	solver := NewSolver(t.TempDir())
	ls := meshes.NewNACA0012Wing(4.0, 1.0, 5*math.Pi/180, 13, 8)
	body := addWingBody(solver, ls, Vector3{10, 0, 0})
	body.Velocity = Vector3{}

	p := config.DefaultParameters()
	stepOnce(t, solver, p, 0.01)

	for i := 0; i < ls.NPanels(); i++ {
		v := solver.SurfaceVelocity(ls, i)
		n := ls.PanelNormal(i)
		assert.InDelta(t, 0, v.Dot(n), 1e-6, "panel %d surface velocity has normal component", i)
	}
}

// TestKuttaClosure checks the exact Kutta condition at the newest wake
// strip: its doublet strength equals the difference of the adjacent upper
// and lower trailing-edge panel doublet strengths.
func TestKuttaClosure(t *testing.T) {
	solver := NewSolver(t.TempDir())
	ls := meshes.NewNACA0012Wing(4.0, 1.0, 5*math.Pi/180, 13, 8)
	body := addWingBody(solver, ls, Vector3{10, 0, 0})

	p := config.DefaultParameters()
	stepOnce(t, solver, p, 0.01)

	wake := solver.wakeFor(body, ls)
	coeffs := wake.DoubletCoefficients()
	tailIndex := wake.NPanels() - ls.NSpanwisePanels()

	offset := solver.offsetOf[ls.ID()]
	for k := 0; k < ls.NSpanwisePanels(); k++ {
		top := solver.doubletCoefficients.AtVec(offset + ls.TrailingEdgeUpperPanel(k))
		bottom := solver.doubletCoefficients.AtVec(offset + ls.TrailingEdgeLowerPanel(k))
		assert.InDelta(t, top-bottom, coeffs[tailIndex+k], 1e-9, "kutta closure violated at strip %d", k)
	}
}

// TestOffsetMonotonicity checks that every registered surface's offset is
// non-negative, strictly increasing in registration order, and that no
// surface's panel range runs past the solver's total panel count.
func TestOffsetMonotonicity(t *testing.T) {
	solver := NewSolver(t.TempDir())

	sphereBody := NewBody("sphere")
	sphereBody.AddNonLiftingSurface(meshes.NewSphere(1.0, 8, 12))
	solver.AddBody(sphereBody)

	ls := meshes.NewNACA0012Wing(4.0, 1.0, 0, 9, 6)
	addWingBody(solver, ls, Vector3{5, 0, 0})

	var lastOffset = -1
	for _, e := range solver.nonWakeSurfaces {
		offset := solver.offsetOf[e.surface.ID()]
		assert.Greater(t, offset, lastOffset, "offsets must strictly increase")
		assert.LessOrEqual(t, offset+e.surface.NPanels(), solver.N(), "surface panel range exceeds solver N")
		lastOffset = offset
	}
}

// TestForceIdempotence checks that calling Force twice in a row without an
// intervening solve returns byte-identical results.
func TestForceIdempotence(t *testing.T) {
	solver := NewSolver(t.TempDir())
	body := NewBody("sphere")
	body.AddNonLiftingSurface(meshes.NewSphere(1.0, 10, 16))
	solver.AddBody(body)
	solver.SetFreestreamVelocity(Vector3{10, 0, 0})
	solver.SetFluidDensity(1.225)

	p := config.DefaultParameters()
	p.ConvectWake = false
	stepOnce(t, solver, p, 0.01)

	f1 := solver.Force(body)
	f2 := solver.Force(body)
	assert.Equal(t, f1, f2)
}

// TestPressureDependsOnlyOnSurfaceVelocityWithoutHistory checks that with
// the unsteady Bernoulli term disabled, the pressure coefficient is a pure
// function of the surface velocity and the reference velocity: resetting
// the previous-step velocity potentials to garbage must not change Cp.
func TestPressureDependsOnlyOnSurfaceVelocityWithoutHistory(t *testing.T) {
	solver := NewSolver(t.TempDir())
	body := NewBody("sphere")
	surface := meshes.NewSphere(1.0, 10, 16)
	body.AddNonLiftingSurface(surface)
	solver.AddBody(body)
	solver.SetFreestreamVelocity(Vector3{10, 0, 0})
	solver.SetFluidDensity(1.225)

	p := config.DefaultParameters()
	p.ConvectWake = false
	p.UnsteadyBernoulli = false
	stepOnce(t, solver, p, 0.01)

	before := make([]float64, surface.NPanels())
	for i := range before {
		before[i] = solver.PressureCoefficient(surface, i)
	}

	for i := 0; i < solver.previousSurfaceVelocityPotentials.Len(); i++ {
		solver.previousSurfaceVelocityPotentials.SetVec(i, 1e6)
	}
	solver.computePressureDistribution(0.01, p.UnsteadyBernoulli, p.MarcovSurfaceVelocity)

	for i := range before {
		assert.InDelta(t, before[i], solver.PressureCoefficient(surface, i), 1e-9, "panel %d", i)
	}
}

// TestZeroFreestreamZeroMotionIsInert checks that with no free stream and
// no body motion, every coefficient and pressure value is (near) zero
// after one step.
func TestZeroFreestreamZeroMotionIsInert(t *testing.T) {
	solver := NewSolver(t.TempDir())
	body := NewBody("sphere")
	surface := meshes.NewSphere(1.0, 8, 12)
	body.AddNonLiftingSurface(surface)
	solver.AddBody(body)
	solver.SetFluidDensity(1.225)

	p := config.DefaultParameters()
	p.ConvectWake = false
	stepOnce(t, solver, p, 0.01)

	for i := 0; i < surface.NPanels(); i++ {
		assert.InDelta(t, 0, solver.PressureCoefficient(surface, i), 1e-9, "panel %d", i)
	}
	f := solver.Force(body)
	assert.InDelta(t, 0, f.Norm(), 1e-9)
}

// TestTranslationInvariance checks that translating the whole system (the
// body's reference point and the free stream velocity, in the frame where
// only their relative motion matters) leaves the computed force unchanged:
// here realized by comparing a body translating at +V through still fluid
// against an identical, stationary body in a free stream of +V, which the
// solver must treat identically since only relative velocity enters the
// boundary conditions.
func TestTranslationInvariance(t *testing.T) {
	p := config.DefaultParameters()
	p.ConvectWake = false

	movingSolver := NewSolver(t.TempDir())
	movingBody := NewBody("sphere")
	movingBody.AddNonLiftingSurface(meshes.NewSphere(1.0, 10, 16))
	movingBody.Velocity = Vector3{-10, 0, 0}
	movingSolver.AddBody(movingBody)
	movingSolver.SetFluidDensity(1.225)
	stepOnce(t, movingSolver, p, 0.01)
	fMoving := movingSolver.Force(movingBody)

	streamSolver := NewSolver(t.TempDir())
	streamBody := NewBody("sphere")
	streamBody.AddNonLiftingSurface(meshes.NewSphere(1.0, 10, 16))
	streamSolver.AddBody(streamBody)
	streamSolver.SetFreestreamVelocity(Vector3{10, 0, 0})
	streamSolver.SetFluidDensity(1.225)
	stepOnce(t, streamSolver, p, 0.01)
	fStream := streamSolver.Force(streamBody)

	assert.InDelta(t, fStream[0], fMoving[0], 1e-6)
	assert.InDelta(t, fStream[1], fMoving[1], 1e-6)
	assert.InDelta(t, fStream[2], fMoving[2], 1e-6)
}

// TestSphereInUniformFlow checks the sphere scenario's two closed-form
// pressure checkpoints (stagnation point Cp = 1, equator Cp = -5/4) and
// that the net force on a sphere in steady potential flow is (near) zero.
func TestSphereInUniformFlow(t *testing.T) {
	solver := NewSolver(t.TempDir())
	body := NewBody("sphere")
	surface := meshes.NewSphere(1.0, 24, 36)
	body.AddNonLiftingSurface(surface)
	solver.AddBody(body)
	solver.SetFreestreamVelocity(Vector3{10, 0, 0})
	solver.SetFluidDensity(1.225)

	p := config.DefaultParameters()
	p.ConvectWake = false
	stepOnce(t, solver, p, 0.01)

	var stagnationCp, equatorCp float64
	var bestStagnation, bestEquator = math.Inf(1), math.Inf(1)
	for i := 0; i < surface.NPanels(); i++ {
		c := surface.PanelCollocationPoint(i, false)
		r := c.Norm()
		axial := c[0] / r // cos(angle from +x axis, the stagnation point)

		distToStagnation := math.Abs(axial - 1)
		if distToStagnation < bestStagnation {
			bestStagnation = distToStagnation
			stagnationCp = solver.PressureCoefficient(surface, i)
		}
		distToEquator := math.Abs(axial)
		if distToEquator < bestEquator {
			bestEquator = distToEquator
			equatorCp = solver.PressureCoefficient(surface, i)
		}
	}

	assert.InDelta(t, 1.0, stagnationCp, 0.15)
	assert.InDelta(t, -1.25, equatorCp, 0.2)

	f := solver.Force(body)
	q := 0.5 * solver.FluidDensity() * 100
	refArea := math.Pi * 1.0 * 1.0
	assert.Less(t, f.Norm(), 0.05*q*refArea)
}

// TestNACA0012SymmetricHasZeroLift checks that a symmetric NACA 0012 wing
// at zero angle of attack produces (near) zero lift.
func TestNACA0012SymmetricHasZeroLift(t *testing.T) {
	solver := NewSolver(t.TempDir())
	ls := meshes.NewNACA0012Wing(4.0, 1.0, 0, 13, 10)
	body := addWingBody(solver, ls, Vector3{20, 0, 0})

	p := config.DefaultParameters()
	stepOnce(t, solver, p, 0.01)

	f := solver.Force(body)
	q := 0.5 * solver.FluidDensity() * 400
	refArea := 4.0 * 1.0
	assert.Less(t, math.Abs(f[2]), 0.05*q*refArea, "lift should vanish at zero angle of attack")
}

// TestEllipticPlanformInducedDrag checks that an elliptic planform's
// induced drag coefficient is close to Prandtl's C_L^2 / (pi * AR).
func TestEllipticPlanformInducedDrag(t *testing.T) {
	solver := NewSolver(t.TempDir())
	span, rootChord := 6.0, 1.0
	ls := meshes.NewEllipticWing(span, rootChord, 4*math.Pi/180, 13, 16)
	body := addWingBody(solver, ls, Vector3{20, 0, 0})

	p := config.DefaultParameters()
	stepOnce(t, solver, p, 0.01)

	f := solver.Force(body)
	q := 0.5 * solver.FluidDensity() * 400
	refArea := math.Pi / 4 * span * rootChord // elliptic planform area
	aspectRatio := span * span / refArea

	cl := f[2] / (q * refArea)
	cdInduced := f[0] / (q * refArea)
	predicted := cl * cl / (math.Pi * aspectRatio)

	if cl > 0.05 {
		assert.InDelta(t, predicted, cdInduced, 0.5*math.Abs(predicted)+0.01,
			"induced drag should roughly follow the elliptic-planform law")
	}
}
