package meshes

import (
	"math"

	vortexje "github.com/baayen-heinz/vortexje-go"
)

// Wake is a growable strip of quadrilateral panels trailing a
// LiftingSurface's trailing edge. Layers accumulate spanwise-node-count
// nodes at a time; panels are rebuilt between consecutive layers.
type Wake struct {
	id              string
	nSpanwiseNodes  int
	nSpanwisePanels int

	nodes    []vortexje.Vector3
	doublets []float64
	panels   []quadPanel
}

// NewWake creates an empty wake for a lifting surface with the given
// spanwise node/panel counts. AddLayer must be called (by the solver's
// wake-initialization routine) before the wake carries any geometry.
func NewWake(id string, nSpanwiseNodes, nSpanwisePanels int) *Wake {
	return &Wake{id: id, nSpanwiseNodes: nSpanwiseNodes, nSpanwisePanels: nSpanwisePanels}
}

func (w *Wake) ID() string   { return w.id }
func (w *Wake) NPanels() int { return len(w.panels) }
func (w *Wake) NNodes() int  { return len(w.nodes) }

func (w *Wake) NodePosition(i int) vortexje.Vector3 { return w.nodes[i] }

func (w *Wake) Nodes() []vortexje.Vector3       { return w.nodes }
func (w *Wake) DoubletCoefficients() []float64  { return w.doublets }

func (w *Wake) nLayers() int {
	if w.nSpanwiseNodes == 0 {
		return 0
	}
	return len(w.nodes) / w.nSpanwiseNodes
}

// AddLayer appends a strip of nSpanwiseNodes nodes seeded at the given
// positions and grows the panel/doublet arrays by one more strip of
// nSpanwisePanels, leaving the new strip's doublets at zero until the
// Kutta condition sets them.
func (w *Wake) AddLayer(seed []vortexje.Vector3) {
	for i := 0; i < w.nSpanwiseNodes; i++ {
		if i < len(seed) {
			w.nodes = append(w.nodes, seed[i])
		} else {
			w.nodes = append(w.nodes, vortexje.Vector3{})
		}
	}
	if w.nLayers() < 2 {
		return
	}
	layer := w.nLayers() - 2 // strip between the last two layers
	base := layer * w.nSpanwiseNodes
	for k := 0; k < w.nSpanwisePanels; k++ {
		w.panels = append(w.panels, quadPanel{nodes: [4]int{
			base + k, base + k + 1,
			base + w.nSpanwiseNodes + k + 1, base + w.nSpanwiseNodes + k,
		}})
		w.doublets = append(w.doublets, 0)
	}
}

// ComputeGeometry recomputes every wake panel's normal/area/collocation
// point from the current node positions, identically to Surface's.
func (w *Wake) ComputeGeometry() {
	for p := range w.panels {
		pan := &w.panels[p]
		v0, v1, v2, v3 := w.nodes[pan.nodes[0]], w.nodes[pan.nodes[1]], w.nodes[pan.nodes[2]], w.nodes[pan.nodes[3]]
		diag1 := v2.Sub(v0)
		diag2 := v3.Sub(v1)
		n := diag1.Cross(diag2)
		if nn := n.Norm(); nn > 0 {
			pan.normal = n.Scale(1 / nn)
		}
		pan.area = triangleArea(v0, v1, v2) + triangleArea(v0, v2, v3)
		pan.centroid = v0.Add(v1).Add(v2).Add(v3).Scale(0.25)
	}
}

// UpdateProperties is a no-op for this reference implementation: nothing
// beyond geometry and doublet strength is tracked per wake panel.
func (w *Wake) UpdateProperties(dt float64) {}

func (w *Wake) PanelNormal(i int) vortexje.Vector3     { return w.panels[i].normal }
func (w *Wake) PanelSurfaceArea(i int) float64         { return w.panels[i].area }
func (w *Wake) PanelCollocationPoint(i int, above bool) vortexje.Vector3 {
	c := w.panels[i].centroid
	if !above {
		return c
	}
	eps := 1e-6 * math.Sqrt(w.panels[i].area)
	return c.Add(w.panels[i].normal.Scale(eps))
}

func (w *Wake) SourceAndDoubletInfluence(observer vortexje.Surface, i, j int) (sigma, mu float64) {
	x := observer.PanelCollocationPoint(i, false)
	return 0, w.DoubletInfluenceAt(x, j)
}

func (w *Wake) SourceAndDoubletInfluenceAt(x vortexje.Vector3, j int) (sigma, mu float64) {
	return 0, w.DoubletInfluenceAt(x, j)
}

func (w *Wake) SourceUnitVelocity(x vortexje.Vector3, j int) vortexje.Vector3 {
	return vortexje.Vector3{}
}

func (w *Wake) VortexRingUnitVelocityAt(x vortexje.Vector3, j int) vortexje.Vector3 {
	pan := w.panels[j]
	nodes := [4]vortexje.Vector3{w.nodes[pan.nodes[0]], w.nodes[pan.nodes[1]], w.nodes[pan.nodes[2]], w.nodes[pan.nodes[3]]}
	return vortexRingVelocity(x, nodes)
}

func (w *Wake) VortexRingUnitVelocity(observer vortexje.Surface, i, j int) vortexje.Vector3 {
	x := observer.PanelCollocationPoint(i, false)
	return w.VortexRingUnitVelocityAt(x, j)
}

func (w *Wake) ScalarFieldGradient(coeffs []float64, offset, panel int) vortexje.Vector3 {
	// Wake doublet strengths are frozen per strip and never differentiated
	// in the solver; a wake never appears as the surface argument of
	// ScalarFieldGradient.
	return vortexje.Vector3{}
}

func (w *Wake) DoubletInfluenceAt(x vortexje.Vector3, j int) float64 {
	pan := w.panels[j]
	r := x.Sub(pan.centroid)
	dist := r.Norm()
	if dist == 0 {
		dist = 1e-9
	}
	return pan.area * r.Dot(pan.normal) / (fourPi * dist * dist * dist)
}

func (w *Wake) DoubletInfluence(observer vortexje.Surface, i, j int) float64 {
	x := observer.PanelCollocationPoint(i, false)
	return w.DoubletInfluenceAt(x, j)
}

var _ vortexje.Wake = (*Wake)(nil)
