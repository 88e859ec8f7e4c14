package vortexje

import (
	"github.com/baayen-heinz/vortexje-go/config"
	"github.com/baayen-heinz/vortexje-go/numerics"
)

// trailingEdgeVortexDisplacement returns the vector by which a newly shed
// wake node at trailing-edge station index is offset from the trailing
// edge: either along the bisector, scaled by the apparent speed, or
// directly opposite the apparent velocity, in both cases scaled by the
// configured distance factor and the time step.
func (s *Solver) trailingEdgeVortexDisplacement(body *Body, ls LiftingSurface, index int, dt float64, followBisector bool, distanceFactor float64) Vector3 {
	apparent := body.NodeKinematicVelocity(ls, ls.TrailingEdgeNode(index)).Sub(s.freestreamVelocity)

	var wakeVelocity Vector3
	if followBisector {
		wakeVelocity = ls.TrailingEdgeBisector(index).Scale(apparent.Norm())
	} else {
		wakeVelocity = apparent.Scale(-1)
	}

	return wakeVelocity.Scale(distanceFactor * dt)
}

// UpdateWakes convects existing wake nodes and emits a new trailing-edge
// strip on every lifting surface's wake, or (when wake convection is
// disabled) re-positions the static two-layer wake along the body's
// apparent velocity direction.
func (s *Solver) UpdateWakes(dt float64, p config.Parameters) {
	if p.ConvectWake {
		s.convectWakes(dt, p)
		return
	}
	s.repositionStaticWakes(p.StaticWakeLength)
}

func (s *Solver) convectWakes(dt float64, p config.Parameters) {
	type wakeJob struct {
		body     *Body
		ls       LiftingSurface
		velocity []Vector3
	}

	var jobs []wakeJob
	for _, body := range s.bodies {
		for _, ls := range body.LiftingSurfaces() {
			wake := s.wakeFor(body, ls)
			nodes := wake.Nodes()
			velocity := make([]Vector3, len(nodes))
			numerics.ParallelFor(len(nodes), func(lo, hi int) {
				for i := lo; i < hi; i++ {
					velocity[i] = s.Velocity(nodes[i])
				}
			})
			jobs = append(jobs, wakeJob{body: body, ls: ls, velocity: velocity})
		}
	}

	for _, job := range jobs {
		wake := s.wakeFor(job.body, job.ls)
		nodes := wake.Nodes()
		teCount := job.ls.NSpanwiseNodes()

		for i := 0; i < teCount; i++ {
			d := s.trailingEdgeVortexDisplacement(job.body, job.ls, i, dt, p.WakeEmissionFollowBisector, p.WakeEmissionDistanceFactor)
			nodes[len(nodes)-teCount+i] = nodes[len(nodes)-teCount+i].Add(d)
		}

		velocity := job.velocity
		numerics.ParallelFor(len(nodes)-teCount, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				nodes[i] = nodes[i].Add(velocity[i].Scale(dt))
			}
		})

		wake.UpdateProperties(dt)

		seed := make([]Vector3, teCount)
		for i := range seed {
			seed[i] = job.ls.NodePosition(job.ls.TrailingEdgeNode(i))
		}
		wake.AddLayer(seed)
	}
}

func (s *Solver) repositionStaticWakes(staticWakeLength float64) {
	for _, body := range s.bodies {
		apparent := body.Velocity.Sub(s.freestreamVelocity)
		dir := apparent.Normalize()

		for _, ls := range body.LiftingSurfaces() {
			wake := s.wakeFor(body, ls)
			nodes := wake.Nodes()
			n := ls.NSpanwiseNodes()

			for i := 0; i < n; i++ {
				te := ls.NodePosition(ls.TrailingEdgeNode(i))
				nodes[n+i] = te
				nodes[i] = te.Sub(dir.Scale(staticWakeLength))
			}

			wake.ComputeGeometry()
		}
	}
}
