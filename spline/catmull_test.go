package spline

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/coasterworks/trackgeom"
)

func TestBuildCurveNeedsTwoPoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if BuildCurve(nil, false) != nil {
		t.Fail()
	}
	if BuildCurve([]r3.Vec{trackgeom.V(1, 2, 3)}, false) != nil {
		t.Fail()
	}
	if BuildCurve([]r3.Vec{trackgeom.V(0, 0, 0), trackgeom.V(1, 0, 0)}, false) == nil {
		t.Fail()
	}
}

func TestCurveInterpolatesKnots(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	knots := []r3.Vec{
		trackgeom.V(0, 0, 0),
		trackgeom.V(5, 2, 0),
		trackgeom.V(10, 0, 3),
		trackgeom.V(15, 1, 1),
	}
	c := BuildCurve(knots, false)
	n := len(knots)
	for k, want := range knots {
		got := c.PositionAt(float64(k) / float64(n-1))
		assert.True(t, trackgeom.VecEqual(got, want),
			"knot %d: got %s, want %s", k, trackgeom.VecString(got), trackgeom.VecString(want))
	}
}

func TestClosedCurveWraps(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	knots := []r3.Vec{
		trackgeom.V(0, 0, 0),
		trackgeom.V(5, 0, 0),
		trackgeom.V(5, 0, 5),
		trackgeom.V(0, 0, 5),
	}
	c := BuildCurve(knots, true)
	assert.True(t, trackgeom.VecEqual(c.PositionAt(0), c.PositionAt(1)), "t=0 and t=1 coincide")
	assert.True(t, trackgeom.VecEqual(c.PositionAt(0), knots[0]), "t=0 is the first knot")
	assert.True(t, trackgeom.VecEqual(c.PositionAt(0.25), knots[1]), "uniform parameter hits knots")
	assert.True(t, trackgeom.VecEqual(c.PositionAt(1.25), c.PositionAt(0.25)), "parameter wraps modulo 1")
}

func TestStraightTrackStaysStraight(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := BuildCurve([]r3.Vec{
		trackgeom.V(0, 1, 0),
		trackgeom.V(5, 1, 0),
		trackgeom.V(10, 1, 0),
	}, false)
	for _, tt := range []float64{0, 0.1, 0.35, 0.5, 0.77, 1} {
		p := c.PositionAt(tt)
		assert.InDelta(t, 1, p.Y, 1e-9, "t=%g", tt)
		assert.InDelta(t, 0, p.Z, 1e-9, "t=%g", tt)
		tan := c.TangentAt(tt)
		assert.True(t, trackgeom.VecEqual(tan, trackgeom.XAxis),
			"t=%g: tangent %s", tt, trackgeom.VecString(tan))
	}
}

func TestTangentIsUnitLength(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := BuildCurve([]r3.Vec{
		trackgeom.V(0, 0, 0),
		trackgeom.V(3, 4, 0),
		trackgeom.V(6, 0, 2),
		trackgeom.V(9, 1, -1),
	}, false)
	for _, tt := range []float64{0, 0.2, 0.5, 0.9, 1} {
		tan := c.TangentAt(tt)
		assert.InDelta(t, 1, r3.Norm(tan), 1e-9, "t=%g", tt)
	}
}

func TestDegenerateTangentFallsBack(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// coincident knots collapse the derivative; the tangent must not
	// contain NaN components
	c := BuildCurve([]r3.Vec{
		trackgeom.V(2, 2, 2),
		trackgeom.V(2, 2, 2),
	}, false)
	tan := c.TangentAt(0.5)
	assert.False(t, math.IsNaN(tan.X) || math.IsNaN(tan.Y) || math.IsNaN(tan.Z))
	assert.True(t, trackgeom.VecEqual(tan, trackgeom.XAxis))
}

func TestParameterIsClamped(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := BuildCurve([]r3.Vec{
		trackgeom.V(0, 0, 0),
		trackgeom.V(5, 0, 0),
	}, false)
	assert.True(t, trackgeom.VecEqual(c.PositionAt(-0.5), c.PositionAt(0)))
	assert.True(t, trackgeom.VecEqual(c.PositionAt(1.5), c.PositionAt(1)))
}

func TestSampleCountHeuristic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	two := BuildCurve([]r3.Vec{trackgeom.V(0, 0, 0), trackgeom.V(1, 0, 0)}, false)
	assert.Equal(t, 100, two.SampleCount(), "floor of 100 samples")
	knots := make([]r3.Vec, 12)
	for i := range knots {
		knots[i] = trackgeom.V(float64(i), 0, 0)
	}
	twelve := BuildCurve(knots, false)
	assert.Equal(t, 240, twelve.SampleCount(), "20 samples per point")
	assert.Len(t, twelve.Samples(), 240)
}

func TestSamplesSpanTheCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	knots := []r3.Vec{
		trackgeom.V(0, 0, 0),
		trackgeom.V(5, 2, 0),
		trackgeom.V(10, 0, 0),
	}
	open := BuildCurve(knots, false)
	samples := open.Samples()
	assert.True(t, trackgeom.VecEqual(samples[0].Pos, knots[0]), "open samples start at the first knot")
	assert.True(t, trackgeom.VecEqual(samples[len(samples)-1].Pos, knots[2]), "open samples end at the last knot")

	closed := BuildCurve(knots, true)
	cs := closed.Samples()
	assert.False(t, trackgeom.VecEqual(cs[len(cs)-1].Pos, cs[0].Pos), "closed samples do not duplicate the wrap point")
}
