package vortexje

// computeSourceCoefficient evaluates the source strength for panel i of
// surface, owned by body:
//
//  1. start from the apparent panel velocity (kinematic minus freestream);
//  2. if wake convection is enabled and includeWakeInfluence is set,
//     subtract the contribution of every pre-existing wake panel (all but
//     the latest strip of each lifting surface);
//  3. project onto the panel normal and subtract the blowing velocity.
//
// includeWakeInfluence distinguishes the inviscid-solve RHS (true) from
// the post-solve recomputation used for pressure (false) — the
// contemporaneous wake is already accounted for by the new trailing strip,
// matching the Giesing unsteady formulation.
func (s *Solver) computeSourceCoefficient(body *Body, surface Surface, i int, bl BoundaryLayer, includeWakeInfluence, convectWake bool) float64 {
	v := body.PanelKinematicVelocity(surface, i).Sub(s.freestreamVelocity)

	if convectWake && includeWakeInfluence {
		for _, b := range s.bodies {
			for _, ls := range b.LiftingSurfaces() {
				wake := s.wakeFor(b, ls)
				oldPanels := wake.NPanels() - ls.NSpanwisePanels()
				coeffs := wake.DoubletCoefficients()
				for k := 0; k < oldPanels; k++ {
					v = v.Sub(wake.VortexRingUnitVelocity(surface, i, k).Scale(coeffs[k]))
				}
			}
		}
	}

	normal := surface.PanelNormal(i)
	return v.Dot(normal) - bl.BlowingVelocity(i)
}
