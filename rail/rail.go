// Package rail projects a sampled track curve into renderable geometry
// descriptors: the left/right rail polylines, support pillar placements,
// and the track's ground-shadow footprint. It consumes curve samples and
// produces plain position lists; rendering itself is a collaborator's
// concern.
package rail

import (
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/coasterworks/trackgeom"
	"github.com/coasterworks/trackgeom/spline"
)

// tracer writes to trace with key 'rail'
func tracer() tracing.Trace {
	return tracing.Select("rail")
}

// Params are the projector tunables.
type Params struct {
	RailOffset      float64 // half the track gauge
	GroundThreshold float64 // min sample height for a support pillar
	MaxSupportRuns  int     // cap on the number of support placements
}

// DefaultParams returns the reference projector parameters.
func DefaultParams() Params {
	return Params{
		RailOffset:      0.3,
		GroundThreshold: 0.5,
		MaxSupportRuns:  20,
	}
}

// Support is a vertical pillar from the ground plane up to the track.
type Support struct {
	Base r3.Vec
	Top  r3.Vec
}

// HorizontalNormal returns the horizontal unit perpendicular of a tangent:
// (-t.z, 0, t.x) normalized. Rails stay level regardless of local pitch;
// bank angle is deliberately ignored. A vertical tangent has no horizontal
// perpendicular and falls back to +Z.
func HorizontalNormal(tangent r3.Vec) r3.Vec {
	n := r3.Vec{X: -tangent.Z, Z: tangent.X}
	return trackgeom.UnitOr(n, trackgeom.ZAxis)
}

// Rails offsets every curve sample sideways into the left and right rail
// polylines.
func Rails(samples []spline.Sample, params Params) (left, right []r3.Vec) {
	left = make([]r3.Vec, len(samples))
	right = make([]r3.Vec, len(samples))
	for i, s := range samples {
		n := HorizontalNormal(s.Tangent)
		left[i] = r3.Add(s.Pos, r3.Scale(params.RailOffset, n))
		right[i] = r3.Sub(s.Pos, r3.Scale(params.RailOffset, n))
	}
	return left, right
}

// Supports places pillars at a fixed sampling interval derived from the
// waypoint count, only where the track runs above the ground threshold.
// Each pillar spans vertically from the ground plane to the sample height.
func Supports(samples []spline.Sample, pointCount int, params Params) []Support {
	if len(samples) == 0 {
		return nil
	}
	runs := 2 * pointCount
	if runs > params.MaxSupportRuns {
		runs = params.MaxSupportRuns
	}
	if runs < 1 {
		runs = 1
	}
	interval := len(samples) / runs
	if interval < 1 {
		interval = 1
	}
	var supports []Support
	for i := 0; i < len(samples); i += interval {
		pos := samples[i].Pos
		if pos.Y <= params.GroundThreshold {
			continue
		}
		supports = append(supports, Support{
			Base: r3.Vec{X: pos.X, Z: pos.Z},
			Top:  pos,
		})
	}
	tracer().Debugf("placed %d supports at interval %d", len(supports), interval)
	return supports
}
