package vortexje

// Force returns the total pressure and friction force on body, using the
// pressure coefficients and boundary layer friction from the last solve.
func (s *Solver) Force(body *Body) Vector3 {
	q := 0.5 * s.fluidDensity * s.computeReferenceVelocitySquared(body)

	var f Vector3
	for _, e := range s.entriesOf(body) {
		offset := s.offsetOf[e.surface.ID()]
		for i := 0; i < e.surface.NPanels(); i++ {
			normal := e.surface.PanelNormal(i)
			area := e.surface.PanelSurfaceArea(i)
			cp := s.pressureCoefficients.AtVec(offset + i)
			f = f.Add(normal.Scale(q * area * cp))
			f = f.Add(e.boundaryLayer.Friction(i))
		}
	}
	return f
}

// Moment returns the moment of body's pressure and friction force about
// point x.
func (s *Solver) Moment(body *Body, x Vector3) Vector3 {
	q := 0.5 * s.fluidDensity * s.computeReferenceVelocitySquared(body)

	var m Vector3
	for _, e := range s.entriesOf(body) {
		offset := s.offsetOf[e.surface.ID()]
		for i := 0; i < e.surface.NPanels(); i++ {
			normal := e.surface.PanelNormal(i)
			area := e.surface.PanelSurfaceArea(i)
			cp := s.pressureCoefficients.AtVec(offset + i)
			f := normal.Scale(q * area * cp).Add(e.boundaryLayer.Friction(i))
			r := e.surface.PanelCollocationPoint(i, false).Sub(x)
			m = m.Add(r.Cross(f))
		}
	}
	return m
}
