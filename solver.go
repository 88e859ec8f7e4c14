package vortexje

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/baayen-heinz/vortexje-go/numerics"
)

// surfaceEntry is one non-wake surface registered with the solver, in
// insertion order. liftingSurface/wake are nil for a plain non-lifting
// surface.
type surfaceEntry struct {
	surface        Surface
	liftingSurface LiftingSurface
	wake           Wake
	boundaryLayer  BoundaryLayer
	body           *Body
}

// Solver holds the dense coefficient state coupling every registered
// surface to every other surface and to its shed wakes. Parameters are
// never stored on the Solver itself: every operation that reads a tunable
// takes it as an argument, either a config.Parameters value constructed
// once by the caller or (InitializeWakes) the individual settings.
type Solver struct {
	bodies          []*Body
	nonWakeSurfaces []surfaceEntry
	surfaceIDToBody map[string]*Body

	// offsetOf/panelCountOf are the precomputed surface-identity lookup
	// table built once in AddBody: querying per-panel state by (surface,
	// panel) hashes the surface's ID instead of linear-scanning
	// nonWakeSurfaces.
	offsetOf     map[string]int
	panelCountOf map[string]int

	// rowEntry/rowPanel map a global row index in [0, n) to the owning
	// surfaceEntry (by index into nonWakeSurfaces) and the panel index
	// within that surface, built incrementally as surfaces register.
	rowEntry []int
	rowPanel []int

	n int // total non-wake panel count

	doubletCoefficients               *mat.VecDense
	sourceCoefficients                *mat.VecDense
	surfaceVelocityPotentials         *mat.VecDense
	previousSurfaceVelocityPotentials *mat.VecDense
	pressureCoefficients              *mat.VecDense
	surfaceVelocities                 numerics.Matrix // n x 3

	freestreamVelocity Vector3
	fluidDensity       float64
	logFolder          string

	logger *slog.Logger
}

// NewSolver constructs an empty solver logging under logFolder.
func NewSolver(logFolder string) *Solver {
	return &Solver{
		surfaceIDToBody: make(map[string]*Body),
		offsetOf:        make(map[string]int),
		panelCountOf:    make(map[string]int),
		logFolder:       logFolder,
		logger:          slog.Default().With("component", "solver"),
	}
}

func (s *Solver) SetFreestreamVelocity(v Vector3) { s.freestreamVelocity = v }
func (s *Solver) SetFluidDensity(rho float64)     { s.fluidDensity = rho }

func (s *Solver) FreestreamVelocity() Vector3 { return s.freestreamVelocity }
func (s *Solver) FluidDensity() float64       { return s.fluidDensity }

// N returns the total non-wake panel count across every registered body.
func (s *Solver) N() int { return s.n }

func vec(n int) *mat.VecDense { return mat.NewVecDense(n, make([]float64, n)) }

// growState resizes every N-sized coefficient vector to newN, preserving
// existing content and zero-padding the rest, per AddBody's contract.
func (s *Solver) growState(newN int) {
	grow := func(old *mat.VecDense) *mat.VecDense {
		v := vec(newN)
		if old != nil {
			for i := 0; i < old.Len(); i++ {
				v.SetVec(i, old.AtVec(i))
			}
		}
		return v
	}
	s.doubletCoefficients = grow(s.doubletCoefficients)
	s.sourceCoefficients = grow(s.sourceCoefficients)
	s.surfaceVelocityPotentials = grow(s.surfaceVelocityPotentials)
	s.previousSurfaceVelocityPotentials = grow(s.previousSurfaceVelocityPotentials)
	s.pressureCoefficients = grow(s.pressureCoefficients)

	newVel := numerics.NewMatrix(newN, 3)
	if s.surfaceVelocities.M != nil {
		oldN, _ := s.surfaceVelocities.Dims()
		for i := 0; i < oldN; i++ {
			newVel.SetRow(i, s.surfaceVelocities.Row(i))
		}
	}
	s.surfaceVelocities = newVel

	s.n = newN
}
