package trackgeom

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Hermite evaluates the cubic Hermite curve between p0 and p1 with tangent
// directions t0 and t1, both scaled by the tangent magnitude scale, at
// parameter t in [0,1].
func Hermite(p0, t0, p1, t1 r3.Vec, scale, t float64) r3.Vec {
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	p := r3.Scale(h00, p0)
	p = r3.Add(p, r3.Scale(h10*scale, t0))
	p = r3.Add(p, r3.Scale(h01, p1))
	p = r3.Add(p, r3.Scale(h11*scale, t1))
	return p
}

// HermiteTangent evaluates the derivative of the Hermite curve at t.
// The result is not normalized.
func HermiteTangent(p0, t0, p1, t1 r3.Vec, scale, t float64) r3.Vec {
	t2 := t * t
	h00 := 6*t2 - 6*t
	h10 := 3*t2 - 4*t + 1
	h01 := -6*t2 + 6*t
	h11 := 3*t2 - 2*t
	d := r3.Scale(h00, p0)
	d = r3.Add(d, r3.Scale(h10*scale, t0))
	d = r3.Add(d, r3.Scale(h01, p1))
	d = r3.Add(d, r3.Scale(h11*scale, t1))
	return d
}

// HermiteScale is the standard tangent-magnitude heuristic for a Hermite
// segment: half the distance between the endpoints. It keeps curvature
// proportional to the span of the segment.
func HermiteScale(p0, p1 r3.Vec) float64 {
	return 0.5 * r3.Norm(r3.Sub(p1, p0))
}
