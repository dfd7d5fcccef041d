// Package spline derives a continuous rail path from discrete track
// waypoints. It implements a uniform Catmull-Rom-class interpolating
// spline: the curve passes through every waypoint in order, open or
// closed, and exposes uniform-parameter sampling of position and tangent
// for rendering and ride traversal.
package spline

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/coasterworks/trackgeom"
)

// tracer writes to trace with key 'spline'
func tracer() tracing.Trace {
	return tracing.Select("spline")
}

// tension is the fixed Catmull-Rom tangent factor: tangent at a knot is
// tension x (next - prev).
const tension = 0.5

// minimum sample resolution, independent of point count
const minSamples = 100

// samples per waypoint
const samplesPerPoint = 20

// Curve is an interpolating spline through a fixed list of positions.
// It is an ephemeral derivation of a waypoint sequence: rebuild it
// whenever the sequence changes. Curves are immutable and therefore safe
// to share.
type Curve struct {
	points []r3.Vec
	closed bool
}

// Sample is one evaluated curve point. Tangent is a unit vector.
type Sample struct {
	Pos     r3.Vec
	Tangent r3.Vec
}

// BuildCurve constructs the interpolating curve through the given
// positions in order, wrapping last to first iff closed is set. Fewer
// than 2 positions yield no curve: the result is nil, not an error, per
// the engine's degenerate-geometry policy.
func BuildCurve(points []r3.Vec, closed bool) *Curve {
	if len(points) < 2 {
		tracer().Debugf("curve needs at least 2 points, got %d", len(points))
		return nil
	}
	pts := make([]r3.Vec, len(points))
	copy(pts, points)
	return &Curve{points: pts, closed: closed}
}

// N returns the number of interpolated positions.
func (c *Curve) N() int {
	return len(c.points)
}

// Closed is a predicate: does the curve wrap last to first?
func (c *Curve) Closed() bool {
	return c.closed
}

// PositionAt evaluates the curve position at parameter t in [0,1].
// The parameter maps uniformly across the point sequence, not by arc
// length. Open curves clamp t; closed curves wrap it modulo 1.
func (c *Curve) PositionAt(t float64) r3.Vec {
	seg, u := c.locate(t)
	p0, p1, p2, p3 := c.segment(seg)
	m1 := r3.Sub(p2, p0)
	m2 := r3.Sub(p3, p1)
	return trackgeom.Hermite(p1, m1, p2, m2, tension, u)
}

// TangentAt evaluates the unit tangent at parameter t in [0,1]. A
// degenerate derivative (coincident control points) falls back to +X
// rather than producing NaN components.
func (c *Curve) TangentAt(t float64) r3.Vec {
	seg, u := c.locate(t)
	p0, p1, p2, p3 := c.segment(seg)
	m1 := r3.Sub(p2, p0)
	m2 := r3.Sub(p3, p1)
	d := trackgeom.HermiteTangent(p1, m1, p2, m2, tension, u)
	return trackgeom.UnitOr(d, trackgeom.XAxis)
}

// SampleCount is the rendering/traversal resolution heuristic:
// proportional to point density, never below a floor.
func (c *Curve) SampleCount() int {
	n := samplesPerPoint * len(c.points)
	if n < minSamples {
		n = minSamples
	}
	return n
}

// Samples evaluates the curve at SampleCount uniform parameters. Open
// curves include both endpoints; closed curves stop short of the wrap
// point so that no sample is duplicated.
func (c *Curve) Samples() []Sample {
	count := c.SampleCount()
	samples := make([]Sample, count)
	den := float64(count)
	if !c.closed {
		den = float64(count - 1)
	}
	for i := 0; i < count; i++ {
		t := float64(i) / den
		samples[i] = Sample{Pos: c.PositionAt(t), Tangent: c.TangentAt(t)}
	}
	return samples
}

// locate maps the global parameter t to a segment index and a local
// parameter u in [0,1].
func (c *Curve) locate(t float64) (int, float64) {
	n := len(c.points)
	if c.closed {
		t = t - math.Floor(t)
		u := t * float64(n)
		seg := int(u)
		if seg >= n {
			seg = n - 1
		}
		return seg, u - float64(seg)
	}
	if t <= 0 {
		return 0, 0
	}
	if t >= 1 {
		return n - 2, 1
	}
	u := t * float64(n-1)
	seg := int(u)
	if seg > n-2 {
		seg = n - 2
	}
	return seg, u - float64(seg)
}

// segment returns the four control positions for a segment: the two
// interpolated endpoints and their neighbors. Closed curves wrap the
// indices; open curves reflect the terminal point through its neighbor to
// fabricate the missing outer control.
func (c *Curve) segment(seg int) (p0, p1, p2, p3 r3.Vec) {
	n := len(c.points)
	at := func(i int) r3.Vec {
		return c.points[((i%n)+n)%n]
	}
	if c.closed {
		return at(seg - 1), at(seg), at(seg + 1), at(seg + 2)
	}
	p1 = c.points[seg]
	p2 = c.points[seg+1]
	if seg == 0 {
		p0 = reflect(c.points[0], c.points[1])
	} else {
		p0 = c.points[seg-1]
	}
	if seg+2 >= n {
		p3 = reflect(c.points[n-1], c.points[n-2])
	} else {
		p3 = c.points[seg+2]
	}
	return p0, p1, p2, p3
}

// reflect mirrors b through a.
func reflect(a, b r3.Vec) r3.Vec {
	return r3.Sub(r3.Scale(2, a), b)
}
