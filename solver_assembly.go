package vortexje

import "github.com/baayen-heinz/vortexje-go/numerics"

// assemble builds the N x N left-hand side A and the N x N auxiliary
// sourceInfluence such that A * mu = sourceInfluence * sigma.
//
// For every (observer panel i, source panel j) pair,
// source.SourceAndDoubletInfluence yields sourceInfluence[i,j] and a base
// doublet influence into A[i,j]. Then, for each lifting surface and each
// spanwise station k, the influence of the newest wake strip panel is
// folded into the columns of its upper and lower adjacent surface panels:
// the doublet strength of that strip panel is unknown but tied to the
// trailing-edge jump by the Kutta condition, so its column contribution is
// split across the two panels whose difference determines it.
func (s *Solver) assemble() (a, sourceInfluence numerics.Matrix) {
	n := s.n
	a = numerics.NewMatrix(n, n)
	sourceInfluence = numerics.NewMatrix(n, n)

	numerics.ParallelFor(n, func(lo, hi int) {
		for row := lo; row < hi; row++ {
			rowEntry := s.nonWakeSurfaces[s.rowEntry[row]]
			i := s.rowPanel[row]

			for _, colEntry := range s.nonWakeSurfaces {
				colOffset := s.offsetOf[colEntry.surface.ID()]
				for j := 0; j < colEntry.surface.NPanels(); j++ {
					sigma, mu := colEntry.surface.SourceAndDoubletInfluence(rowEntry.surface, i, j)
					sourceInfluence.Set(row, colOffset+j, sigma)
					a.Set(row, colOffset+j, mu)
				}
			}

			s.addKuttaColumns(a, rowEntry.surface, row)
		}
	})

	return a, sourceInfluence
}

// addKuttaColumns adds, for every lifting surface's newest wake strip, the
// influence of that strip's panels on observer row into the columns of
// the strip's upper and lower adjacent trailing-edge panels, encoding
// mu_wake = mu_upper - mu_lower.
func (s *Solver) addKuttaColumns(a numerics.Matrix, observer Surface, row int) {
	for _, body := range s.bodies {
		for _, ls := range body.LiftingSurfaces() {
			wake := s.wakeFor(body, ls)
			liftingOffset := s.offsetOf[ls.ID()]
			wakePanelOffset := wake.NPanels() - ls.NSpanwisePanels()

			for k := 0; k < ls.NSpanwisePanels(); k++ {
				pa := ls.TrailingEdgeUpperPanel(k)
				pb := ls.TrailingEdgeLowerPanel(k)

				// Find the observer's row index within its own panel set
				// to call back into wake influence; row already is the
				// global index, but wake influence needs (observer, local
				// panel index).
				localPanel := row - s.offsetOf[observer.ID()]
				infl := wake.DoubletInfluence(observer, localPanel, wakePanelOffset+k)

				a.Set(row, liftingOffset+pa, a.At(row, liftingOffset+pa)+infl)
				a.Set(row, liftingOffset+pb, a.At(row, liftingOffset+pb)-infl)
			}
		}
	}
}
