package vortexje

// AddBody appends body's non-lifting and lifting surfaces (in that order)
// to the solver's internal list, records each surface id (including wake
// ids) to body, and resizes all N-sized state to accommodate the new
// panels, zero-initializing the newly added entries.
//
// Idempotency is not a contract: calling AddBody twice with the same body
// duplicates its entries, exactly as the library this solver reimplements.
func (s *Solver) AddBody(body *Body) {
	s.bodies = append(s.bodies, body)

	for _, surf := range body.NonLiftingSurfaces() {
		s.registerSurface(surfaceEntry{surface: surf, boundaryLayer: NullBoundaryLayer{}, body: body})
	}

	liftingSurfaces := body.LiftingSurfaces()
	wakes := body.Wakes()
	boundaryLayers := body.BoundaryLayers()
	for i, ls := range liftingSurfaces {
		entry := surfaceEntry{surface: ls, liftingSurface: ls, wake: wakes[i], boundaryLayer: boundaryLayers[i], body: body}
		s.registerSurface(entry)
		s.surfaceIDToBody[wakes[i].ID()] = body
	}

	s.logger.Debug("added body", "body", body.ID, "n_panels", s.n)
}

func (s *Solver) registerSurface(e surfaceEntry) {
	s.offsetOf[e.surface.ID()] = s.n
	s.panelCountOf[e.surface.ID()] = e.surface.NPanels()
	s.surfaceIDToBody[e.surface.ID()] = e.body

	entryIdx := len(s.nonWakeSurfaces)
	s.nonWakeSurfaces = append(s.nonWakeSurfaces, e)
	for p := 0; p < e.surface.NPanels(); p++ {
		s.rowEntry = append(s.rowEntry, entryIdx)
		s.rowPanel = append(s.rowPanel, p)
	}
	s.growState(s.n + e.surface.NPanels())
}

// InitializeWakes performs the equivalent of one static positioning (or
// one displacement step in convecting mode) and then appends an empty
// layer to every lifting surface's wake, establishing the two-layer
// invariant required before the first solve.
func (s *Solver) InitializeWakes(dt float64, convectWake bool, staticWakeLength float64) {
	for _, body := range s.bodies {
		for _, ls := range body.LiftingSurfaces() {
			wake := s.wakeFor(body, ls)

			seed := make([]Vector3, ls.NSpanwiseNodes())
			for i := range seed {
				seed[i] = ls.NodePosition(ls.TrailingEdgeNode(i))
			}
			wake.AddLayer(seed)

			nodes := wake.Nodes()
			for i := 0; i < ls.NSpanwiseNodes(); i++ {
				if convectWake {
					d := s.trailingEdgeVortexDisplacement(body, ls, i, dt, false, 1)
					nodes[i] = nodes[i].Add(d)
				} else {
					apparent := body.Velocity.Sub(s.freestreamVelocity)
					dir := apparent.Normalize()
					nodes[i] = nodes[i].Sub(dir.Scale(staticWakeLength))
				}
			}
			wake.AddLayer(seed)
			wake.ComputeGeometry()
		}
	}
}

func (s *Solver) wakeFor(body *Body, ls LiftingSurface) Wake {
	wakes := body.Wakes()
	for i, l := range body.LiftingSurfaces() {
		if l.ID() == ls.ID() {
			return wakes[i]
		}
	}
	panic("vortexje: lifting surface not found on its own body")
}
