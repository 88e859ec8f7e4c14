package vortexje

// liftingSurfaceBundle groups a lifting surface with the wake shed from its
// trailing edge and the boundary layer recalculated from its surface
// velocities, the three always moving together through a solve.
type liftingSurfaceBundle struct {
	Surface        LiftingSurface
	Wake           Wake
	BoundaryLayer  BoundaryLayer
}

// Body is a kinematic frame with a linear velocity and per-panel/per-node
// kinematic velocities, owning a list of non-lifting surfaces and a list of
// lifting-surface bundles. Ownership is exclusive: a Body owns its
// surfaces, wakes and boundary layers for its lifetime; the solver only
// ever holds non-owning references into an added Body.
type Body struct {
	ID string

	// Velocity is the body's current linear velocity in the global frame.
	Velocity Vector3
	// AngularVelocity is the body's current angular velocity (axis-scaled
	// by rate, rad/s) about its own reference point.
	AngularVelocity Vector3
	// ReferencePoint is the point AngularVelocity is taken about, also the
	// centre used to derive panel/node kinematic velocities under rigid
	// rotation.
	ReferencePoint Vector3

	nonLifting []Surface
	lifting    []liftingSurfaceBundle
}

// NewBody constructs an empty body at rest.
func NewBody(id string) *Body {
	return &Body{ID: id}
}

// AddNonLiftingSurface registers a plain surface with the body.
func (b *Body) AddNonLiftingSurface(s Surface) {
	b.nonLifting = append(b.nonLifting, s)
}

// AddLiftingSurface registers a lifting surface together with its wake and
// boundary layer (pass NullBoundaryLayer{} if none is modeled).
func (b *Body) AddLiftingSurface(s LiftingSurface, w Wake, bl BoundaryLayer) {
	if bl == nil {
		bl = NullBoundaryLayer{}
	}
	b.lifting = append(b.lifting, liftingSurfaceBundle{Surface: s, Wake: w, BoundaryLayer: bl})
}

// NonLiftingSurfaces returns the body's non-lifting surfaces, in addition
// order.
func (b *Body) NonLiftingSurfaces() []Surface {
	return b.nonLifting
}

// LiftingSurfaces returns the body's lifting surfaces, in addition order.
func (b *Body) LiftingSurfaces() []LiftingSurface {
	out := make([]LiftingSurface, len(b.lifting))
	for i, d := range b.lifting {
		out[i] = d.Surface
	}
	return out
}

// Wakes returns the body's wakes, parallel to LiftingSurfaces.
func (b *Body) Wakes() []Wake {
	out := make([]Wake, len(b.lifting))
	for i, d := range b.lifting {
		out[i] = d.Wake
	}
	return out
}

// BoundaryLayers returns the body's boundary layers, parallel to
// LiftingSurfaces.
func (b *Body) BoundaryLayers() []BoundaryLayer {
	out := make([]BoundaryLayer, len(b.lifting))
	for i, d := range b.lifting {
		out[i] = d.BoundaryLayer
	}
	return out
}

// PanelKinematicVelocity returns the velocity, under this body's rigid
// motion, of the collocation point of panel i of surface s.
func (b *Body) PanelKinematicVelocity(s Surface, i int) Vector3 {
	x := s.PanelCollocationPoint(i, false)
	return b.velocityAt(x)
}

// NodeKinematicVelocity returns the velocity, under this body's rigid
// motion, of node i of surface s.
func (b *Body) NodeKinematicVelocity(s Surface, i int) Vector3 {
	return b.velocityAt(s.NodePosition(i))
}

// NodeKinematicVelocityAt returns the velocity, under this body's rigid
// motion, of an arbitrary point x (typically a wake node position that has
// already convected away from any surface's node buffer).
func (b *Body) NodeKinematicVelocityAt(x Vector3) Vector3 {
	return b.velocityAt(x)
}

func (b *Body) velocityAt(x Vector3) Vector3 {
	r := x.Sub(b.ReferencePoint)
	return b.Velocity.Add(b.AngularVelocity.Cross(r))
}
