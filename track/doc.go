// Package track implements the waypoint data model of the coaster track
// geometry engine, together with the loop synthesizer.
/*

A track is an ordered sequence of waypoints. Insertion order is traversal
order: the train visits the points from first to last (or cyclically, if the
derived curve is closed). The sequence is owned by a State aggregate, which
also carries the current selection and the playback progress of a ride.
There is no separate adjacency graph; index order is the single source of
truth for which point follows which.

Clients mutate a State through its methods:

	st := track.NewState()
	a := st.Add(trackgeom.V(0, 0, 0))
	b := st.Add(trackgeom.V(5, 0, 0))
	st.Add(trackgeom.V(10, 0, 0))
	st.Select(b)
	st.CreateLoopAt(b)
	_ = a

Every mutation is atomic with respect to the state it modifies and no
mutation ever fails: unknown ids are silently ignored, degenerate geometry
falls back to well-defined defaults. This mirrors the interactive origin of
the API, where a dragged point produces a stream of discrete updates and an
error dialog per frame would be absurd. Swallowed misuse is traced at
Debug level instead.

# Loop synthesis

CreateLoopAt splices a procedurally generated vertical loop into the
sequence at an anchor waypoint. The synthesizer

  - derives a local reference frame at the anchor (horizontal forward
    direction from the preceding point, world up, right = forward × up),
  - bridges the preceding point into the loop entry with Hermite-interpolated
    approach points,
  - generates the helical loop body around the anchor,
  - and reconnects the loop exit to a waypoint further down the sequence,
    laterally offset so the exit track does not intersect the entry track.

A bounded window of legacy points after the anchor is consumed by the
splice to make room for the exit transition. Both splice boundaries are
tangent-continuous: the approach points share the loop's forward tangent,
and the exit rejoins the downstream waypoint along that waypoint's own
outgoing direction.

Three policies are available (see LoopPolicy): explicit transition
synthesis, a blended variant that pulls the final quarter of the loop body
laterally toward the next legacy waypoint, and a simple two-point arc used
when not enough trailing context exists.

Loop-generated points record their generating frame in a LoopMeta, for
later reuse by banking or styling layers; the curve builder itself reads
positions only.
*/
package track
