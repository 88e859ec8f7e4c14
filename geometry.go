package vortexje

import "github.com/baayen-heinz/vortexje-go/numerics"

// Vector3 is the fixed-size geometric triple used throughout the solver;
// see numerics.Vector3 for the arithmetic it carries.
type Vector3 = numerics.Vector3

// PanelRef addresses a single panel by the surface it belongs to and its
// index within that surface, the pair every external caller uses to query
// per-panel solver state.
type PanelRef struct {
	Surface Surface
	Index   int
}

// Surface is the geometry and elementary-influence contract the solver
// requires of every mesh it is handed: mesh construction itself is out of
// scope (see meshes/ for a reference implementation used by the examples
// and tests).
type Surface interface {
	// ID returns a value that uniquely and stably identifies this surface
	// for the lifetime of a solve; used as the key of the solver's
	// surface-to-body and offset tables.
	ID() string

	NPanels() int
	NNodes() int

	// NodePosition returns the position of node i.
	NodePosition(i int) Vector3

	PanelNormal(i int) Vector3
	PanelSurfaceArea(i int) float64
	// PanelCollocationPoint returns the panel's control point, optionally
	// displaced slightly off the surface (used when evaluating a point's
	// own influence on itself).
	PanelCollocationPoint(i int, above bool) Vector3

	// SourceAndDoubletInfluence returns the (sigma, mu) unit-strength
	// influence that source panel j of this surface exerts on observer
	// panel i of observerSurface.
	SourceAndDoubletInfluence(observerSurface Surface, i, j int) (sigma, mu float64)
	// SourceAndDoubletInfluenceAt is the free-field form, evaluated at an
	// arbitrary point x rather than another panel's collocation point.
	SourceAndDoubletInfluenceAt(x Vector3, j int) (sigma, mu float64)

	SourceUnitVelocity(x Vector3, j int) Vector3
	VortexRingUnitVelocityAt(x Vector3, j int) Vector3
	VortexRingUnitVelocity(observerSurface Surface, i, j int) Vector3

	// ScalarFieldGradient returns the tangential gradient, at panel, of a
	// per-panel scalar field whose values for this surface occupy
	// coeffs[offset:offset+NPanels()]. It is the sole geometric operator
	// the solver uses to turn a doublet distribution into a surface
	// velocity.
	ScalarFieldGradient(coeffs []float64, offset, panel int) Vector3
}

// LiftingSurface is a Surface with spanwise topology connecting its
// trailing edge to a Wake. Invariant: for each spanwise station there is
// exactly one upper and one lower adjacent panel.
type LiftingSurface interface {
	Surface

	NSpanwisePanels() int
	NSpanwiseNodes() int

	TrailingEdgeUpperPanel(k int) int
	TrailingEdgeLowerPanel(k int) int
	TrailingEdgeNode(k int) int
	TrailingEdgeBisector(k int) Vector3
}

// Wake is a Surface of frozen-doublet panels that convects with the flow.
// Invariant: after every update, NPanels() is a non-negative multiple of
// the owning lifting surface's NSpanwisePanels(); the last strip is the
// one whose coefficients the current solve determines via the Kutta
// condition, all earlier strips are frozen.
type Wake interface {
	Surface

	// Nodes returns the mutable node buffer, convectable in place.
	Nodes() []Vector3
	// DoubletCoefficients returns the dense array of per-panel doublet
	// strengths, parallel to the panel index.
	DoubletCoefficients() []float64

	// AddLayer appends a fresh spanwise strip of nodes, seeded at the
	// given positions (one per spanwise node, ordered as the owning
	// lifting surface's trailing edge), and the panels connecting it to
	// the previous strip.
	AddLayer(seed []Vector3)
	// UpdateProperties recomputes any internal per-panel bookkeeping
	// (e.g. vortex core radii) after nodes have moved, given the elapsed
	// time step.
	UpdateProperties(dt float64)
	// ComputeGeometry recomputes panel normals, areas and collocation
	// points from the current node positions.
	ComputeGeometry()

	// DoubletInfluenceAt is the free-field doublet-only influence of wake
	// panel j on an arbitrary point x.
	DoubletInfluenceAt(x Vector3, j int) float64
	// DoubletInfluence is the doublet-only influence of wake panel j on
	// observer panel i of observerSurface.
	DoubletInfluence(observerSurface Surface, i, j int) float64
}
