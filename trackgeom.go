/*
Package trackgeom implements the math primitives for the coaster track
geometry engine: guarded 3D vector helpers, local reference frames, and
cubic Hermite interpolation.

# BSD License

# Copyright (c) the trackgeom authors

All rights reserved.

Please refer to the license file for more information.
*/
package trackgeom

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'trackgeom'
func tracer() tracing.Trace {
	return tracing.Select("trackgeom")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// DegenerateLength is the threshold under which a direction vector is
// treated as degenerate and replaced by a fallback, rather than normalized.
// Normalizing a near-zero vector would leak NaN coordinates into stored
// geometry.
var DegenerateLength float64 = 0.1

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Round to ε.
func Round(n float64) float64 {
	return math.Round(n/Epsilon) * Epsilon
}

// Smoothstep is the cubic ease 3t²−2t³, clamped to [0,1].
func Smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// === Vectors ===============================================================

// Canonical axes and the world up direction.
var (
	XAxis   = r3.Vec{X: 1}
	YAxis   = r3.Vec{Y: 1}
	ZAxis   = r3.Vec{Z: 1}
	WorldUp = YAxis
)

// V is a quick notation for constructing a vector from floats.
func V(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

// VecString is a debug Stringer for vectors.
func VecString(v r3.Vec) string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

// VecIs0 is a predicate: does v collapse to the zero vector?
func VecIs0(v r3.Vec) bool {
	return Is0(r3.Norm(v))
}

// VecEqual compares two vectors componentwise to ε.
func VecEqual(v, w r3.Vec) bool {
	d := r3.Sub(v, w)
	return Is0(d.X) && Is0(d.Y) && Is0(d.Z)
}

// UnitOr normalizes v, falling back to deflt for degenerate input
// (|v| < DegenerateLength).
func UnitOr(v, deflt r3.Vec) r3.Vec {
	if r3.Norm(v) < DegenerateLength {
		tracer().Debugf("degenerate direction %s, falling back to %s",
			VecString(v), VecString(deflt))
		return deflt
	}
	return r3.Unit(v)
}

// Horizontal projects v onto the ground plane (zeroes the y-part).
func Horizontal(v r3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Z: v.Z}
}

// === Local Reference Frames ================================================

// Frame is a local reference frame at a track point. Forward is horizontal,
// Up is the world up direction, Right completes the frame.
type Frame struct {
	Forward r3.Vec
	Up      r3.Vec
	Right   r3.Vec
}

// FrameAlong derives a frame from a travel direction. The direction is
// horizontalized first; a degenerate direction yields the default frame
// along +X.
func FrameAlong(dir r3.Vec) Frame {
	fwd := UnitOr(Horizontal(dir), XAxis)
	return Frame{
		Forward: fwd,
		Up:      WorldUp,
		Right:   UnitOr(r3.Cross(fwd, WorldUp), ZAxis),
	}
}
