package rail

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/coasterworks/trackgeom"
	"github.com/coasterworks/trackgeom/spline"
)

// straight horizontal run along +X at the given height
func straightSamples(n int, y float64) []spline.Sample {
	samples := make([]spline.Sample, n)
	for i := range samples {
		samples[i] = spline.Sample{
			Pos:     trackgeom.V(float64(i), y, 0),
			Tangent: trackgeom.XAxis,
		}
	}
	return samples
}

func TestHorizontalNormal(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	n := HorizontalNormal(trackgeom.XAxis)
	assert.True(t, trackgeom.VecEqual(n, trackgeom.ZAxis),
		"normal of +X is +Z, got %s", trackgeom.VecString(n))
	n = HorizontalNormal(trackgeom.V(0, 0, 1))
	assert.True(t, trackgeom.VecEqual(n, trackgeom.V(-1, 0, 0)))
	// pitched tangent: the normal stays horizontal
	n = HorizontalNormal(r3.Unit(trackgeom.V(1, 1, 0)))
	assert.InDelta(t, 0, n.Y, 1e-9)
	assert.InDelta(t, 1, r3.Norm(n), 1e-9)
}

func TestVerticalTangentFallsBack(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	n := HorizontalNormal(trackgeom.V(0, 1, 0))
	assert.True(t, trackgeom.VecEqual(n, trackgeom.ZAxis))
}

func TestRailsOfStraightTrack(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	params := DefaultParams()
	samples := straightSamples(10, 2)
	left, right := Rails(samples, params)
	assert.Len(t, left, 10)
	assert.Len(t, right, 10)
	for i := range samples {
		assert.InDelta(t, params.RailOffset, left[i].Z, 1e-9, "left rail at +Z offset")
		assert.InDelta(t, -params.RailOffset, right[i].Z, 1e-9, "right rail at -Z offset")
		assert.InDelta(t, samples[i].Pos.X, left[i].X, 1e-9)
		assert.InDelta(t, 2, left[i].Y, 1e-9, "rails stay level")
		assert.InDelta(t, 2, right[i].Y, 1e-9)
	}
}

func TestSupportsRespectGroundThreshold(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	params := DefaultParams()
	low := straightSamples(100, 0.5) // exactly at the threshold
	assert.Empty(t, Supports(low, 3, params))

	high := straightSamples(100, 3)
	supports := Supports(high, 3, params)
	assert.NotEmpty(t, supports)
	for _, s := range supports {
		assert.InDelta(t, 0, s.Base.Y, 1e-9, "pillar starts at the ground")
		assert.InDelta(t, 3, s.Top.Y, 1e-9, "pillar reaches the track")
		assert.InDelta(t, s.Base.X, s.Top.X, 1e-9, "pillar is vertical")
		assert.InDelta(t, s.Base.Z, s.Top.Z, 1e-9)
	}
}

func TestSupportsInterval(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	params := DefaultParams()
	samples := straightSamples(120, 3)
	// 3 waypoints: 6 support runs, interval 20, samples 0,20,...,100
	supports := Supports(samples, 3, params)
	assert.Len(t, supports, 6)
	assert.InDelta(t, 0, supports[0].Base.X, 1e-9)
	assert.InDelta(t, 20, supports[1].Base.X, 1e-9)

	// many waypoints: run count capped at 20, interval 120/20 = 6
	capped := Supports(samples, 50, params)
	assert.Len(t, capped, 20)
}

func TestSupportsMixedHeights(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	params := DefaultParams()
	samples := straightSamples(40, 3)
	for i := 20; i < 40; i++ {
		samples[i].Pos.Y = 0.2 // below threshold
	}
	supports := Supports(samples, 1, params)
	for _, s := range supports {
		assert.Greater(t, s.Top.Y, params.GroundThreshold)
	}
}

func TestFootprintOfStraightTrack(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	params := DefaultParams()
	samples := straightSamples(10, 2)
	left, right := Rails(samples, params)
	shadow := Footprint(left, right)
	assert.Len(t, shadow, 1, "straight track casts a single contour")
	var area float64
	for _, c := range shadow {
		area += contourArea(c)
	}
	// 9 unit-long quads of width 2*RailOffset
	assert.InDelta(t, 9*2*params.RailOffset, area, 1e-6)
}

func TestFootprintSkipsDegenerateQuads(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	params := DefaultParams()
	samples := straightSamples(5, 2)
	samples[2] = samples[1] // coincident samples produce a zero-area quad
	left, right := Rails(samples, params)
	shadow := Footprint(left, right)
	assert.NotNil(t, shadow)
	assert.Len(t, shadow, 1)
}
