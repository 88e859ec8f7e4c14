package vortexje

import "github.com/baayen-heinz/vortexje-go/numerics"

// computeSurfaceVelocities fills s.surfaceVelocities with the tangential
// panel velocity of every registered non-wake panel.
func (s *Solver) computeSurfaceVelocities(marcov bool) {
	numerics.ParallelFor(len(s.nonWakeSurfaces), func(lo, hi int) {
		for idx := lo; idx < hi; idx++ {
			e := s.nonWakeSurfaces[idx]
			offset := s.offsetOf[e.surface.ID()]
			for i := 0; i < e.surface.NPanels(); i++ {
				v := s.computeSurfaceVelocity(e.body, e.surface, offset, i, marcov)
				s.surfaceVelocities.SetRow(offset+i, []float64{v[0], v[1], v[2]})
			}
		}
	})
}

// computeSurfaceVelocity evaluates the tangential flow velocity at panel i
// of surface: either minus the local doublet-strength gradient, or (when
// marcov is set) N. Marcov's formula combining the disturbance velocity at
// the collocation point with half the gradient, then removes the apparent
// kinematic velocity and any residual normal component (implicitly
// accounted for by the source term).
func (s *Solver) computeSurfaceVelocity(body *Body, surface Surface, offset, i int, marcov bool) Vector3 {
	var tangential Vector3
	if marcov {
		x := surface.PanelCollocationPoint(i, false)
		tangential = s.computeDisturbanceVelocity(x).Sub(surface.ScalarFieldGradient(s.doubletSlice(), offset, i).Scale(0.5))
	} else {
		tangential = surface.ScalarFieldGradient(s.doubletSlice(), offset, i).Scale(-1)
	}

	apparent := body.PanelKinematicVelocity(surface, i).Sub(s.freestreamVelocity)
	tangential = tangential.Sub(apparent)

	normal := surface.PanelNormal(i)
	tangential = tangential.Sub(normal.Scale(tangential.Dot(normal)))

	return tangential
}

func (s *Solver) doubletSlice() []float64 {
	return s.doubletCoefficients.RawVector().Data
}

// computeSurfaceVelocityPotential returns the velocity potential at panel i
// of surface, either evaluated directly at the collocation point (Marcov
// mode) or from minus the doublet strength plus the apparent-velocity flow
// potential.
func (s *Solver) computeSurfaceVelocityPotential(body *Body, surface Surface, offset, i int, marcov bool) float64 {
	if marcov {
		return s.VelocityPotential(surface.PanelCollocationPoint(i, false))
	}
	phi := -s.doubletCoefficients.AtVec(offset + i)
	apparent := body.PanelKinematicVelocity(surface, i).Sub(s.freestreamVelocity)
	phi -= apparent.Dot(surface.PanelCollocationPoint(i, false))
	return phi
}

// VelocityPotential returns the total velocity potential at x: the
// disturbance potential plus the free stream contribution.
func (s *Solver) VelocityPotential(x Vector3) float64 {
	return s.computeDisturbanceVelocityPotential(x) + s.freestreamVelocity.Dot(x)
}

// Velocity returns the total flow velocity at x.
func (s *Solver) Velocity(x Vector3) Vector3 {
	return s.computeDisturbanceVelocity(x).Add(s.freestreamVelocity)
}

func (s *Solver) computeDisturbanceVelocityPotential(x Vector3) float64 {
	var phi float64
	for _, e := range s.nonWakeSurfaces {
		offset := s.offsetOf[e.surface.ID()]
		for i := 0; i < e.surface.NPanels(); i++ {
			sigma, mu := e.surface.SourceAndDoubletInfluenceAt(x, i)
			phi += mu * s.doubletCoefficients.AtVec(offset+i)
			phi += sigma * s.sourceCoefficients.AtVec(offset+i)
		}
	}

	for _, body := range s.bodies {
		for _, ls := range body.LiftingSurfaces() {
			wake := s.wakeFor(body, ls)
			coeffs := wake.DoubletCoefficients()
			for i := 0; i < wake.NPanels(); i++ {
				phi += wake.DoubletInfluenceAt(x, i) * coeffs[i]
			}
		}
	}

	return phi
}

func (s *Solver) computeDisturbanceVelocity(x Vector3) Vector3 {
	var gradient Vector3
	for _, e := range s.nonWakeSurfaces {
		offset := s.offsetOf[e.surface.ID()]
		for i := 0; i < e.surface.NPanels(); i++ {
			gradient = gradient.Add(e.surface.VortexRingUnitVelocityAt(x, i).Scale(s.doubletCoefficients.AtVec(offset + i)))
			gradient = gradient.Add(e.surface.SourceUnitVelocity(x, i).Scale(s.sourceCoefficients.AtVec(offset + i)))
		}
	}

	for _, body := range s.bodies {
		for _, ls := range body.LiftingSurfaces() {
			wake := s.wakeFor(body, ls)
			if wake.NPanels() < ls.NSpanwisePanels() {
				continue
			}
			coeffs := wake.DoubletCoefficients()
			for i := 0; i < wake.NPanels(); i++ {
				gradient = gradient.Add(wake.VortexRingUnitVelocityAt(x, i).Scale(coeffs[i]))
			}
		}
	}

	return gradient
}

// SurfaceVelocityPotential returns the last-solved velocity potential for
// panel i of surface, or zero (with a logged warning) if surface was never
// registered with the solver.
func (s *Solver) SurfaceVelocityPotential(surface Surface, i int) float64 {
	offset, ok := s.offsetOf[surface.ID()]
	if !ok {
		s.logger.Warn("panel not found on surface", "surface", surface.ID(), "panel", i)
		return 0
	}
	return s.surfaceVelocityPotentials.AtVec(offset + i)
}

// SurfaceVelocity returns the last-solved surface velocity for panel i of
// surface, or zero (with a logged warning) if surface was never registered.
func (s *Solver) SurfaceVelocity(surface Surface, i int) Vector3 {
	offset, ok := s.offsetOf[surface.ID()]
	if !ok {
		s.logger.Warn("panel not found on surface", "surface", surface.ID(), "panel", i)
		return Vector3{}
	}
	row := s.surfaceVelocities.Row(offset + i)
	return Vector3{row[0], row[1], row[2]}
}

// PressureCoefficient returns the last-solved pressure coefficient for
// panel i of surface, or zero (with a logged warning) if surface was never
// registered.
func (s *Solver) PressureCoefficient(surface Surface, i int) float64 {
	offset, ok := s.offsetOf[surface.ID()]
	if !ok {
		s.logger.Warn("panel not found on surface", "surface", surface.ID(), "panel", i)
		return 0
	}
	return s.pressureCoefficients.AtVec(offset + i)
}
