package meshes

import (
	"math"

	vortexje "github.com/baayen-heinz/vortexje-go"
)

// This file implements the elementary unit-strength source/doublet/vortex
// influence kernels for a planar constant-strength quadrilateral panel.
//
// Off-panel influence is evaluated with the classical point-singularity
// approximation (panel strength concentrated at its centroid) rather than
// the full analytic flat-polygon integral — adequate for the panel
// densities used by the worked examples and test fixtures this package
// exists to build, and considerably shorter than the exact quadrilateral
// formula. The one place the approximation would be wrong by construction
// — a panel's influence on itself — is handled exactly: the self-induced
// doublet potential of a constant-strength panel on its own collocation
// point is -1/2 regardless of panel shape (the solid angle subtended by a
// flat panel at a point on its own surface is -2*pi, divided by the same
// 4*pi that normalizes the off-panel kernel below), which is what keeps
// the assembled system's diagonal well-conditioned.
const fourPi = 4 * math.Pi

func (s *Surface) sourceInfluence(x vortexje.Vector3, j int, self bool) float64 {
	if self {
		// Constant-strength flat-panel self-induced potential, exact in
		// the thin-panel limit: phi = -sigma * sqrt(area) / (2*sqrt(pi)).
		return -math.Sqrt(s.panels[j].area/math.Pi) / 2
	}
	r := x.Sub(s.panels[j].centroid)
	dist := r.Norm()
	if dist == 0 {
		dist = 1e-9
	}
	return -s.panels[j].area / (fourPi * dist)
}

func (s *Surface) doubletInfluence(x vortexje.Vector3, j int, self bool) float64 {
	if self {
		return -0.5
	}
	pan := s.panels[j]
	r := x.Sub(pan.centroid)
	dist := r.Norm()
	if dist == 0 {
		dist = 1e-9
	}
	return pan.area * r.Dot(pan.normal) / (fourPi * dist * dist * dist)
}

// sourceVelocity is the velocity induced by a unit-strength point source
// of the given panel area located at center, evaluated at x.
func sourceVelocity(x, center vortexje.Vector3, area float64) vortexje.Vector3 {
	r := x.Sub(center)
	dist := r.Norm()
	if dist == 0 {
		return vortexje.Vector3{}
	}
	return r.Scale(area / (fourPi * dist * dist * dist))
}

// vortexRingVelocity is the velocity induced by a unit-circulation vortex
// ring following the four edges of a planar quad panel (nodes in order),
// evaluated by Biot-Savart on each straight segment with a small-core
// regularization to keep the near-panel field finite. This is the usual
// equivalence between a constant-strength doublet panel and a vortex ring
// bound to its edges.
func vortexRingVelocity(x vortexje.Vector3, nodes [4]vortexje.Vector3) vortexje.Vector3 {
	var v vortexje.Vector3
	for e := 0; e < 4; e++ {
		a := nodes[e]
		b := nodes[(e+1)%4]
		v = v.Add(segmentBiotSavart(x, a, b))
	}
	return v
}

const vortexCoreRadius = 1e-6

func segmentBiotSavart(x, a, b vortexje.Vector3) vortexje.Vector3 {
	r0 := b.Sub(a)
	r1 := x.Sub(a)
	r2 := x.Sub(b)

	cross := r1.Cross(r2)
	crossNorm2 := cross.Dot(cross)
	if crossNorm2 < vortexCoreRadius*vortexCoreRadius {
		return vortexje.Vector3{}
	}

	r1n := r1.Norm()
	r2n := r2.Norm()
	if r1n < vortexCoreRadius || r2n < vortexCoreRadius {
		return vortexje.Vector3{}
	}

	k := r0.Dot(r1)/r1n - r0.Dot(r2)/r2n
	return cross.Scale(k / (fourPi * crossNorm2))
}
