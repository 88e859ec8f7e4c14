package meshes

import (
	"math"

	vortexje "github.com/baayen-heinz/vortexje-go"
)

// NewSphere builds a unit-radius-scalable sphere surface of nLat latitude
// bands and nLon longitude divisions, used by the sphere-in-uniform-flow
// test scenario.
func NewSphere(radius float64, nLat, nLon int) *Surface {
	nv := nLat + 1
	pos := func(i, j int) vortexje.Vector3 {
		theta := math.Pi * float64(j) / float64(nLat) // 0 at north pole, pi at south
		phi := 2 * math.Pi * float64(i) / float64(nLon)
		return vortexje.Vector3{
			radius * math.Sin(theta) * math.Cos(phi),
			radius * math.Sin(theta) * math.Sin(phi),
			radius * math.Cos(theta),
		}
	}
	return NewSurfaceFromGrid("sphere", nLon, nv, pos, true)
}

// naca0012HalfThickness returns the NACA 0012 half-thickness at chordwise
// station x/c in [0,1].
func naca0012HalfThickness(xOverC float64) float64 {
	const t = 0.12
	x := xOverC
	return 5 * t * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x - 0.1015*x*x*x*x)
}

// NewNACA0012Wing builds a straight, untapered NACA 0012 lifting surface
// of the given span, chord, angle of attack (radians) and paneling
// density. nChordwise counts nodes from leading to trailing edge along one
// side (so nChordwise-1 panels per side, per spanwise station).
func NewNACA0012Wing(span, chord float64, alpha float64, nChordwise, nSpanwise int) *LiftingSurface {
	cosA, sinA := math.Cos(alpha), math.Sin(alpha)

	chordPos := func(chordIdx int, upper bool) (x, z float64) {
		xOverC := float64(chordIdx) / float64(nChordwise-1)
		t := naca0012HalfThickness(xOverC)
		if upper {
			return xOverC * chord, t * chord
		}
		return xOverC * chord, -t * chord
	}

	rotate := func(x, z float64) (float64, float64) {
		return x*cosA + z*sinA, -x*sinA + z*cosA
	}

	upper := func(spanIdx, chordIdx int) vortexje.Vector3 {
		x, z := chordPos(chordIdx, true)
		x, z = rotate(x, z)
		y := span * (float64(spanIdx)/float64(nSpanwise) - 0.5)
		return vortexje.Vector3{x, y, z}
	}
	lower := func(spanIdx, chordIdx int) vortexje.Vector3 {
		x, z := chordPos(chordIdx, false)
		x, z = rotate(x, z)
		y := span * (float64(spanIdx)/float64(nSpanwise) - 0.5)
		return vortexje.Vector3{x, y, z}
	}

	return NewLiftingSurfaceFromGrid("naca0012", nChordwise, nSpanwise, upper, lower)
}

// NewEllipticWing builds a NACA 0012-section lifting surface with an
// elliptic chord distribution along the span, for the elliptic-planform
// induced-drag scenario.
func NewEllipticWing(span, rootChord, alpha float64, nChordwise, nSpanwise int) *LiftingSurface {
	cosA, sinA := math.Cos(alpha), math.Sin(alpha)
	halfSpan := span / 2

	chordAt := func(y float64) float64 {
		r := y / halfSpan
		if r > 1 {
			r = 1
		} else if r < -1 {
			r = -1
		}
		return rootChord * math.Sqrt(1-r*r)
	}

	rotate := func(x, z float64) (float64, float64) {
		return x*cosA + z*sinA, -x*sinA + z*cosA
	}

	surfaceAt := func(spanIdx, chordIdx int, thicknessSign float64) vortexje.Vector3 {
		y := span*(float64(spanIdx)/float64(nSpanwise)-0.5)
		c := chordAt(y)
		xOverC := float64(chordIdx) / float64(nChordwise-1)
		t := naca0012HalfThickness(xOverC) * thicknessSign
		x, z := rotate(xOverC*c, t*c)
		return vortexje.Vector3{x, y, z}
	}

	upper := func(spanIdx, chordIdx int) vortexje.Vector3 { return surfaceAt(spanIdx, chordIdx, 1) }
	lower := func(spanIdx, chordIdx int) vortexje.Vector3 { return surfaceAt(spanIdx, chordIdx, -1) }

	return NewLiftingSurfaceFromGrid("elliptic", nChordwise, nSpanwise, upper, lower)
}

// NewVAWTBlade builds a straight NACA 0012 blade of a vertical-axis rotor:
// the blade spans the rotor height along z, offset radially by radius and
// tangentially rotated by azimuth around the rotor's own (z) axis, for use
// as a lifting surface on a Body whose kinematics schedule spins it about
// that axis.
func NewVAWTBlade(id string, radius, chord, height, azimuth float64, nChordwise, nSpanwise int) *LiftingSurface {
	cosAz, sinAz := math.Cos(azimuth), math.Sin(azimuth)

	// Local blade frame: u points radially outward, v is tangential
	// (chordwise travel direction); the blade is pitched so its chord lies
	// along -v, a common fixed-pitch VAWT layout.
	place := func(xOverC, thickness float64) vortexje.Vector3 {
		u := radius + thickness*chord
		v := -xOverC * chord
		return vortexje.Vector3{
			u*cosAz - v*sinAz,
			u*sinAz + v*cosAz,
			0,
		}
	}

	surfaceAt := func(spanIdx, chordIdx int, thicknessSign float64) vortexje.Vector3 {
		xOverC := float64(chordIdx) / float64(nChordwise-1)
		t := naca0012HalfThickness(xOverC) * thicknessSign
		p := place(xOverC, t)
		p[2] = height * (float64(spanIdx)/float64(nSpanwise) - 0.5)
		return p
	}

	upper := func(spanIdx, chordIdx int) vortexje.Vector3 { return surfaceAt(spanIdx, chordIdx, 1) }
	lower := func(spanIdx, chordIdx int) vortexje.Vector3 { return surfaceAt(spanIdx, chordIdx, -1) }

	return NewLiftingSurfaceFromGrid(id, nChordwise, nSpanwise, upper, lower)
}
