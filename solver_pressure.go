package vortexje

import "github.com/baayen-heinz/vortexje-go/numerics"

// computePressureDistribution fills the surface velocity potential and
// pressure coefficient state for every registered panel, per body: the
// velocity potential first (so its time derivative can be formed against
// the previous step's snapshot), then the Giesing unsteady Bernoulli
// pressure coefficient.
func (s *Solver) computePressureDistribution(dt float64, unsteadyBernoulli, marcov bool) {
	for _, body := range s.bodies {
		vRefSquared := s.computeReferenceVelocitySquared(body)

		entries := s.entriesOf(body)
		numerics.ParallelFor(len(entries), func(lo, hi int) {
			for idx := lo; idx < hi; idx++ {
				e := entries[idx]
				offset := s.offsetOf[e.surface.ID()]
				for i := 0; i < e.surface.NPanels(); i++ {
					phi := s.computeSurfaceVelocityPotential(body, e.surface, offset, i, marcov)
					s.surfaceVelocityPotentials.SetVec(offset+i, phi)

					dphidt := s.computeSurfaceVelocityPotentialTimeDerivative(offset, i, dt, unsteadyBernoulli)
					v := s.SurfaceVelocity(e.surface, i)
					cp := s.computePressureCoefficient(v, dphidt, vRefSquared)
					s.pressureCoefficients.SetVec(offset+i, cp)
				}
			}
		})
	}
}

// entriesOf returns the nonWakeSurfaces entries owned by body, in
// registration order.
func (s *Solver) entriesOf(body *Body) []surfaceEntry {
	var out []surfaceEntry
	for _, e := range s.nonWakeSurfaces {
		if e.body == body {
			out = append(out, e)
		}
	}
	return out
}

func (s *Solver) computeSurfaceVelocityPotentialTimeDerivative(offset, i int, dt float64, unsteadyBernoulli bool) float64 {
	if !unsteadyBernoulli || dt <= 0 {
		return 0
	}
	return (s.surfaceVelocityPotentials.AtVec(offset+i) - s.previousSurfaceVelocityPotentials.AtVec(offset+i)) / dt
}

func (s *Solver) computeReferenceVelocitySquared(body *Body) float64 {
	d := body.Velocity.Sub(s.freestreamVelocity)
	return d.Dot(d)
}

func (s *Solver) computePressureCoefficient(surfaceVelocity Vector3, dphidt, vRefSquared float64) float64 {
	if vRefSquared == 0 {
		return 0
	}
	return 1 - (surfaceVelocity.Dot(surfaceVelocity)+2*dphidt)/vRefSquared
}
