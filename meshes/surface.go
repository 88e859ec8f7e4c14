// Package meshes provides a minimal in-memory quadrilateral-panel
// implementation of the Surface/LiftingSurface/Wake contracts declared at
// the repository root. It exists purely so the worked examples and the
// test suite are runnable without pulling in an external mesh library —
// mesh generation itself stays out of scope for the solver.
package meshes

import (
	"fmt"
	"math"

	vortexje "github.com/baayen-heinz/vortexje-go"
)

type quadPanel struct {
	nodes    [4]int
	normal   vortexje.Vector3
	area     float64
	centroid vortexje.Vector3
	// neighbors holds, for each of the panel's four edges, the index of
	// the panel sharing that edge, or -1 at a mesh boundary. Used by
	// ScalarFieldGradient's tangent-plane reconstruction.
	neighbors [4]int
}

// Surface is a quadrilateral-paneled mesh with stable node storage.
type Surface struct {
	id     string
	nodes  []vortexje.Vector3
	panels []quadPanel
}

// NewSurfaceFromGrid builds a structured nu x nv quad mesh from a node
// position function, optionally wrapping around in the u direction (used
// for bodies of revolution such as the sphere fixture).
func NewSurfaceFromGrid(id string, nu, nv int, pos func(i, j int) vortexje.Vector3, closedU bool) *Surface {
	s := &Surface{id: id}
	for j := 0; j < nv; j++ {
		for i := 0; i < nu; i++ {
			s.nodes = append(s.nodes, pos(i, j))
		}
	}
	idx := func(i, j int) int {
		if closedU {
			i = i % nu
		}
		return j*nu + i
	}
	uSpan := nu - 1
	if closedU {
		uSpan = nu
	}
	for j := 0; j < nv-1; j++ {
		for i := 0; i < uSpan; i++ {
			p := quadPanel{nodes: [4]int{idx(i, j), idx(i + 1, j), idx(i + 1, j + 1), idx(i, j + 1)}}
			s.panels = append(s.panels, p)
		}
	}
	s.linkNeighbors(uSpan, nv-1, closedU)
	s.ComputeGeometry()
	return s
}

// linkNeighbors wires up shared-edge adjacency for a structured uSpan x
// vSpan panel grid, used only by ScalarFieldGradient.
func (s *Surface) linkNeighbors(uSpan, vSpan int, closedU bool) {
	at := func(i, j int) int {
		if i < 0 || j < 0 || i >= uSpan || j >= vSpan {
			return -1
		}
		return j*uSpan + i
	}
	for j := 0; j < vSpan; j++ {
		for i := 0; i < uSpan; i++ {
			p := j*uSpan + i
			left, right := i-1, i+1
			if closedU {
				left = (i - 1 + uSpan) % uSpan
				right = (i + 1) % uSpan
			}
			s.panels[p].neighbors = [4]int{
				at(i, j-1), // below
				at(right, j),
				at(i, j+1), // above
				at(left, j),
			}
		}
	}
}

// ComputeGeometry recomputes every panel's normal (cross product of
// diagonals), area (sum of the two constituent triangles) and collocation
// point (vertex average) from the current node positions.
func (s *Surface) ComputeGeometry() {
	for p := range s.panels {
		s.recomputePanel(p)
	}
}

func (s *Surface) recomputePanel(p int) {
	pan := &s.panels[p]
	v0, v1, v2, v3 := s.nodes[pan.nodes[0]], s.nodes[pan.nodes[1]], s.nodes[pan.nodes[2]], s.nodes[pan.nodes[3]]

	diag1 := v2.Sub(v0)
	diag2 := v3.Sub(v1)
	n := diag1.Cross(diag2)
	nNorm := n.Norm()
	if nNorm > 0 {
		pan.normal = n.Scale(1 / nNorm)
	}

	tri1 := triangleArea(v0, v1, v2)
	tri2 := triangleArea(v0, v2, v3)
	pan.area = tri1 + tri2

	pan.centroid = v0.Add(v1).Add(v2).Add(v3).Scale(0.25)
}

func triangleArea(a, b, c vortexje.Vector3) float64 {
	return 0.5 * b.Sub(a).Cross(c.Sub(a)).Norm()
}

func (s *Surface) ID() string    { return s.id }
func (s *Surface) NPanels() int  { return len(s.panels) }
func (s *Surface) NNodes() int   { return len(s.nodes) }

func (s *Surface) NodePosition(i int) vortexje.Vector3 { return s.nodes[i] }
func (s *Surface) PanelNormal(i int) vortexje.Vector3  { return s.panels[i].normal }
func (s *Surface) PanelSurfaceArea(i int) float64      { return s.panels[i].area }

func (s *Surface) PanelCollocationPoint(i int, above bool) vortexje.Vector3 {
	c := s.panels[i].centroid
	if !above {
		return c
	}
	eps := 1e-6 * math.Sqrt(s.panels[i].area)
	return c.Add(s.panels[i].normal.Scale(eps))
}

func (s *Surface) SourceAndDoubletInfluence(observer vortexje.Surface, i, j int) (sigma, mu float64) {
	x := observer.PanelCollocationPoint(i, false)
	self := observer.ID() == s.id && i == j
	return s.sourceInfluence(x, j, self), s.doubletInfluence(x, j, self)
}

func (s *Surface) SourceAndDoubletInfluenceAt(x vortexje.Vector3, j int) (sigma, mu float64) {
	return s.sourceInfluence(x, j, false), s.doubletInfluence(x, j, false)
}

func (s *Surface) SourceUnitVelocity(x vortexje.Vector3, j int) vortexje.Vector3 {
	return sourceVelocity(x, s.panels[j].centroid, s.panels[j].area)
}

func (s *Surface) VortexRingUnitVelocityAt(x vortexje.Vector3, j int) vortexje.Vector3 {
	return vortexRingVelocity(x, s.panelNodes(j))
}

func (s *Surface) VortexRingUnitVelocity(observer vortexje.Surface, i, j int) vortexje.Vector3 {
	x := observer.PanelCollocationPoint(i, false)
	return s.VortexRingUnitVelocityAt(x, j)
}

func (s *Surface) panelNodes(j int) [4]vortexje.Vector3 {
	pan := s.panels[j]
	return [4]vortexje.Vector3{s.nodes[pan.nodes[0]], s.nodes[pan.nodes[1]], s.nodes[pan.nodes[2]], s.nodes[pan.nodes[3]]}
}

// ScalarFieldGradient reconstructs the tangential gradient of a per-panel
// scalar field at panel using a Green-Gauss-style average over
// edge-adjacent neighbors, projected onto the panel's tangent plane.
// Boundary panels (fewer than four live neighbors) average over whichever
// neighbors exist.
func (s *Surface) ScalarFieldGradient(coeffs []float64, offset, panel int) vortexje.Vector3 {
	pan := s.panels[panel]
	phi0 := coeffs[offset+panel]

	var grad vortexje.Vector3
	count := 0
	for _, nb := range pan.neighbors {
		if nb < 0 {
			continue
		}
		d := s.panels[nb].centroid.Sub(pan.centroid)
		dist2 := d.Dot(d)
		if dist2 == 0 {
			continue
		}
		phiN := coeffs[offset+nb]
		grad = grad.Add(d.Scale((phiN - phi0) / dist2))
		count++
	}
	if count == 0 {
		return vortexje.Vector3{}
	}
	grad = grad.Scale(1 / float64(count))

	// Project out the component along the panel normal.
	n := pan.normal
	return grad.Sub(n.Scale(grad.Dot(n)))
}

func (s *Surface) String() string {
	return fmt.Sprintf("meshes.Surface(%s, %d panels)", s.id, len(s.panels))
}

var _ vortexje.Surface = (*Surface)(nil)
