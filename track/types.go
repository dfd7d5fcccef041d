package track

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'track'
func tracer() tracing.Trace {
	return tracing.Select("track")
}

// PointID is an opaque stable identifier for a track point. Ids are unique
// for the lifetime of their sequence and never reused.
type PointID string

// NoPoint is the empty selection.
const NoPoint PointID = ""

// LoopMeta records the generating frame of a loop-body point: the loop
// entry position, the local reference frame, the loop radius and the
// point's angle parameter in [0,2π). It is present iff the point was
// generated by the loop synthesizer.
type LoopMeta struct {
	Entry   r3.Vec
	Forward r3.Vec
	Up      r3.Vec
	Right   r3.Vec
	Radius  float64
	Theta   float64
}

// Point is a single track waypoint. Tilt is a banking angle in radians,
// carried for styling layers; the geometry derivations ignore it.
type Point struct {
	ID   PointID
	Pos  r3.Vec
	Tilt float64
	Loop *LoopMeta
}

// AsString returns a debug representation of a waypoint sequence, e.g.
// "(0,0,0) -> (5,0,0) -> (10,0,0)". Loop-body points are marked with
// an asterisk.
func AsString(points []Point) string {
	var s string
	for i, pt := range points {
		if i > 0 {
			s += " -> "
		}
		s += fmt.Sprintf("(%g,%g,%g)", pt.Pos.X, pt.Pos.Y, pt.Pos.Z)
		if pt.Loop != nil {
			s += "*"
		}
	}
	return s
}

func indexOf(points []Point, id PointID) int {
	for i := range points {
		if points[i].ID == id {
			return i
		}
	}
	return -1
}
