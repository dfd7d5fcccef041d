package track

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/coasterworks/trackgeom"
)

// LoopPolicy selects how a synthesized loop is reconnected to the legacy
// track.
type LoopPolicy int

const (
	// LoopExplicit synthesizes explicit Hermite approach and exit
	// transition points around the loop body. This is the canonical
	// variant.
	LoopExplicit LoopPolicy = iota
	// LoopBlend additionally pulls the final quarter of the loop body
	// laterally toward the downstream waypoint, easing back from the
	// separation offset via smoothstep.
	LoopBlend
	// LoopSimpleArc generates only the loop body between the anchor and
	// its existing successor, with no skip window and no transition
	// points. The synthesizer falls back to this mode on its own when
	// not enough trailing context exists.
	LoopSimpleArc
)

// LoopParams are the tunables of the loop synthesizer. The separation and
// lead constants shape the transitions; they are heuristics, not
// load-bearing geometry.
type LoopParams struct {
	Radius     float64 // loop radius in world units
	Segments   int     // number of loop body points
	LateralSep float64 // sideways offset separating exit from entry track
	ForwardSep float64 // forward offset of the exit transition
	EntryLead  float64 // entry anchor lead, as a fraction of Radius
	Policy     LoopPolicy
}

// DefaultLoopParams returns the reference parameter set: a vertical loop
// of radius 4 sampled at 20 points, with explicit transitions.
func DefaultLoopParams() LoopParams {
	return LoopParams{
		Radius:     4,
		Segments:   20,
		LateralSep: 1.0,
		ForwardSep: 2.0,
		EntryLead:  0.3,
		Policy:     LoopExplicit,
	}
}

// maximum number of legacy points consumed by the splice window
const maxSkip = 3

// SynthesizeLoop splices a vertical loop into the waypoint sequence at the
// anchor point. It returns a new sequence; the input is not modified. An
// unknown anchor id returns the input unchanged.
//
// The loop body lies in the plane spanned by the anchor's forward and up
// directions: it climbs from the anchor, goes over the top at height 2R
// and returns to the anchor's height with its exit tangent again pointing
// forward. A lateral offset ramps up along the body so that the exit track
// clears the entry track. Approach points bridge the preceding waypoint
// into the loop entry, and exit transition points reconnect the loop to a
// waypoint 1-3 positions downstream, replacing the skipped legacy points.
//
// Trailing-context edge cases: with exactly one waypoint after the anchor
// the simple-arc mode is used (loop body only, no skip, no transitions);
// with none, the exit transition keeps only the lateral offset point.
func SynthesizeLoop(points []Point, anchor PointID, params LoopParams, ids IDSource) []Point {
	i := indexOf(points, anchor)
	if i < 0 {
		tracer().Debugf("loop anchor %s not found, sequence unchanged", anchor)
		return points
	}
	if params.Segments <= 0 || params.Radius <= 0 {
		tracer().Debugf("non-positive loop dimensions, sequence unchanged")
		return points
	}
	entry := points[i].Pos
	frame := anchorFrame(points, i)
	rem := len(points) - i - 1
	tracer().Infof("synthesizing loop at %s (index %d, %d trailing), forward %s",
		anchor, i, rem, trackgeom.VecString(frame.Forward))

	if params.Policy == LoopSimpleArc || rem == 1 {
		return spliceSimpleArc(points, i, frame, params, ids)
	}

	skip := 0
	targetIdx := -1
	if rem >= 2 {
		skip = rem - 1
		if skip > maxSkip {
			skip = maxSkip
		}
		targetIdx = i + 1 + skip
	}

	approach := approachPoints(points, i, entry, frame, params, ids)
	body := loopBody(points, entry, frame, params, targetIdx, ids)
	exit := exitPoints(points, entry, body, frame, params, targetIdx, ids)

	result := make([]Point, 0, i+len(approach)+1+len(body)+len(exit)+rem-skip)
	result = append(result, points[:i]...)
	result = append(result, approach...)
	result = append(result, points[i])
	result = append(result, body...)
	result = append(result, exit...)
	result = append(result, points[i+1+skip:]...)
	return result
}

// anchorFrame computes the local reference frame at the anchor index:
// forward is the horizontal direction from the preceding point to the
// anchor, defaulting to +X without a usable predecessor.
func anchorFrame(points []Point, i int) trackgeom.Frame {
	var dir r3.Vec
	if i > 0 {
		dir = r3.Sub(points[i].Pos, points[i-1].Pos)
	}
	return trackgeom.FrameAlong(dir)
}

// approachPoints bridges the anchor's predecessor into the loop entry: two
// points on a Hermite segment from the predecessor to an entry anchor
// positioned EntryLead x Radius before the loop entry, ending tangent to
// forward. Without a predecessor there is nothing to bridge.
func approachPoints(points []Point, i int, entry r3.Vec, frame trackgeom.Frame, params LoopParams, ids IDSource) []Point {
	if i == 0 {
		return nil
	}
	prev := points[i-1].Pos
	var prevTan r3.Vec
	if i >= 2 {
		prevTan = trackgeom.UnitOr(r3.Sub(prev, points[i-2].Pos), r3.Sub(entry, prev))
	} else {
		prevTan = trackgeom.UnitOr(r3.Sub(entry, prev), frame.Forward)
	}
	lead := r3.Sub(entry, r3.Scale(params.EntryLead*params.Radius, frame.Forward))
	scale := trackgeom.HermiteScale(prev, lead)
	mid := trackgeom.Hermite(prev, prevTan, lead, frame.Forward, scale, 0.5)
	return []Point{
		{ID: ids.Next(), Pos: mid},
		{ID: ids.Next(), Pos: lead},
	}
}

// loopBody generates the helical loop points around the entry position.
// Point k of N sits at theta = k/N x 2pi:
//
//	entry + forward sin(theta) R + up (1-cos(theta)) R + right lateral(t)
//
// so theta = 0 and theta = 2pi coincide with the entry height and are both
// tangent to forward. The lateral offset ramps from 0 to LateralSep; under
// LoopBlend the final quarter eases toward the downstream target instead.
func loopBody(points []Point, entry r3.Vec, frame trackgeom.Frame, params LoopParams, targetIdx int, ids IDSource) []Point {
	n := params.Segments
	body := make([]Point, 0, n)
	for k := 1; k <= n; k++ {
		t := float64(k) / float64(n)
		theta := t * 2 * math.Pi
		pos := entry
		pos = r3.Add(pos, r3.Scale(math.Sin(theta)*params.Radius, frame.Forward))
		pos = r3.Add(pos, r3.Scale((1-math.Cos(theta))*params.Radius, frame.Up))
		pos = r3.Add(pos, r3.Scale(lateralOffset(points, entry, frame, params, targetIdx, t), frame.Right))
		body = append(body, Point{
			ID:  ids.Next(),
			Pos: pos,
			Loop: &LoopMeta{
				Entry:   entry,
				Forward: frame.Forward,
				Up:      frame.Up,
				Right:   frame.Right,
				Radius:  params.Radius,
				Theta:   math.Mod(theta, 2*math.Pi),
			},
		})
	}
	return body
}

func lateralOffset(points []Point, entry r3.Vec, frame trackgeom.Frame, params LoopParams, targetIdx int, t float64) float64 {
	if params.Policy != LoopBlend || targetIdx < 0 {
		return params.LateralSep * t
	}
	const ease = 0.75
	if t <= ease {
		return params.LateralSep * t / ease
	}
	// ease back toward the downstream waypoint's lateral component
	pull := r3.Dot(r3.Sub(points[targetIdx].Pos, entry), frame.Right)
	s := trackgeom.Smoothstep((t - ease) / (1 - ease))
	return params.LateralSep*(1-s) + pull*s
}

// exitPoints reconnects the loop exit to the downstream target in two
// Hermite stages: first to a literal offset point separating the exit
// track from the entry track, then from there to the target, matching the
// target's own outgoing tangent. Without a downstream target only the
// offset point is emitted.
func exitPoints(points []Point, entry r3.Vec, body []Point, frame trackgeom.Frame, params LoopParams, targetIdx int, ids IDSource) []Point {
	exitPos := entry
	if len(body) > 0 {
		exitPos = body[len(body)-1].Pos
	}
	offset := r3.Add(
		r3.Add(exitPos, r3.Scale(params.ForwardSep, frame.Forward)),
		r3.Scale(params.LateralSep, frame.Right))
	if targetIdx < 0 {
		// no downstream target: keep only the offset point
		return []Point{{ID: ids.Next(), Pos: offset}}
	}
	scale1 := trackgeom.HermiteScale(exitPos, offset)
	mid := trackgeom.Hermite(exitPos, frame.Forward, offset, frame.Forward, scale1, 0.5)
	exit := []Point{
		{ID: ids.Next(), Pos: mid},
		{ID: ids.Next(), Pos: offset},
	}
	target := points[targetIdx].Pos
	targetTan := trackgeom.UnitOr(r3.Sub(target, entry), frame.Forward)
	if targetIdx+1 < len(points) {
		targetTan = trackgeom.UnitOr(r3.Sub(points[targetIdx+1].Pos, target), targetTan)
	}
	scale2 := trackgeom.HermiteScale(offset, target)
	for _, t := range []float64{1.0 / 3.0, 2.0 / 3.0} {
		exit = append(exit, Point{
			ID:  ids.Next(),
			Pos: trackgeom.Hermite(offset, frame.Forward, target, targetTan, scale2, t),
		})
	}
	return exit
}

// spliceSimpleArc is the degenerate single-loop mode for anchors without
// enough trailing context: the loop body is inserted directly between the
// anchor and its successor (if any), with no skip window and no approach
// or exit synthesis.
func spliceSimpleArc(points []Point, i int, frame trackgeom.Frame, params LoopParams, ids IDSource) []Point {
	entry := points[i].Pos
	body := loopBody(points, entry, frame, params, -1, ids)
	result := make([]Point, 0, len(points)+len(body))
	result = append(result, points[:i+1]...)
	result = append(result, body...)
	result = append(result, points[i+1:]...)
	return result
}
