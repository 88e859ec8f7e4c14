package vortexje

import (
	"context"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/baayen-heinz/vortexje-go/config"
	"github.com/baayen-heinz/vortexje-go/numerics"
)

// Solve computes new source, doublet and pressure distributions for the
// current body kinematics and free stream, iterating the inviscid solve
// against any non-trivial boundary layers until the doublet vector
// converges or the iteration budget is exhausted. If propagate is true,
// the current surface velocity potentials become the "previous" snapshot
// used by the unsteady Bernoulli term on the next call.
//
// On failure (the linear solve diverges or exhausts its budget) Solve
// returns false; the caller must discard the step, as upstream state is
// not rolled back.
func (s *Solver) Solve(dt float64, propagate bool, p config.Parameters) bool {
	var converged bool

	for iteration := 0; ; iteration++ {
		s.computeSourceDistribution(true, p.ConvectWake)

		a, sigmaInfluence := s.assemble()

		b := vec(s.n)
		b.MulVec(sigmaInfluence.M, s.sourceCoefficients)

		newDoublets, result := numerics.SolveBiCGSTAB(a, b, s.doubletCoefficients, p.LinearSolverMaxIterations, p.LinearSolverTolerance)
		if !result.Converged {
			s.logger.Error("doublet distribution solve failed", "result", result.String())
			return false
		}
		if numerics.HasNaN(newDoublets.RawVector().Data) {
			s.logger.Error("doublet distribution solve produced NaN", "result", result.String())
			return false
		}
		if s.logger.Enabled(context.Background(), slog.LevelDebug) {
			s.logger.Debug("doublet distribution solved", "result", result.String(), "condition_number", a.ConditionNumber(), "mem", numerics.MemUsage())
		}

		if iteration > 0 {
			diff := vec(s.n)
			diff.SubVec(newDoublets, s.doubletCoefficients)
			if mat.Norm(diff, 2) < p.BoundaryLayerIterationTolerance {
				converged = true
			}
		}
		s.doubletCoefficients = newDoublets

		s.closeKutta()
		s.computeSurfaceVelocities(p.MarcovSurfaceVelocity)

		if converged {
			s.logger.Debug("boundary layer iteration converged")
			break
		}
		if iteration > p.MaxBoundaryLayerIterations {
			s.logger.Warn("maximum boundary layer iterations reached, aborting iteration")
			break
		}

		haveBoundaryLayer := false
		for _, e := range s.nonWakeSurfaces {
			if e.boundaryLayer.IsNontrivial() {
				haveBoundaryLayer = true
				offset := s.offsetOf[e.surface.ID()]
				n := e.surface.NPanels()
				block := numerics.NewMatrix(n, 3)
				for i := 0; i < n; i++ {
					block.SetRow(i, s.surfaceVelocities.Row(offset+i))
				}
				e.boundaryLayer.Recalculate(block)
			}
		}
		if !haveBoundaryLayer {
			break
		}
	}

	if p.ConvectWake {
		s.computeSourceDistribution(false, true)
	}

	s.computePressureDistribution(dt, p.UnsteadyBernoulli, p.MarcovSurfaceVelocity)

	if propagate {
		s.propagate()
	}

	return true
}

func (s *Solver) computeSourceDistribution(includeWakeInfluence, convectWake bool) {
	numerics.ParallelFor(len(s.nonWakeSurfaces), func(lo, hi int) {
		for idx := lo; idx < hi; idx++ {
			e := s.nonWakeSurfaces[idx]
			offset := s.offsetOf[e.surface.ID()]
			for i := 0; i < e.surface.NPanels(); i++ {
				v := s.computeSourceCoefficient(e.body, e.surface, i, e.boundaryLayer, includeWakeInfluence, convectWake)
				s.sourceCoefficients.SetVec(offset+i, v)
			}
		}
	})
}

// closeKutta writes, for every lifting surface, the newest wake-strip
// doublet coefficients from the trailing-edge jump in the just-solved
// doublet distribution.
func (s *Solver) closeKutta() {
	for _, body := range s.bodies {
		for _, ls := range body.LiftingSurfaces() {
			wake := s.wakeFor(body, ls)
			offset := s.offsetOf[ls.ID()]
			coeffs := wake.DoubletCoefficients()
			tailIndex := wake.NPanels() - ls.NSpanwisePanels()
			for k := 0; k < ls.NSpanwisePanels(); k++ {
				top := s.doubletCoefficients.AtVec(offset + ls.TrailingEdgeUpperPanel(k))
				bottom := s.doubletCoefficients.AtVec(offset + ls.TrailingEdgeLowerPanel(k))
				coeffs[tailIndex+k] = top - bottom
			}
		}
	}
}

func (s *Solver) propagate() {
	s.previousSurfaceVelocityPotentials.CopyVec(s.surfaceVelocityPotentials)
}
