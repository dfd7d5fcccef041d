package track

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/coasterworks/trackgeom/spline"
)

// State is the owned aggregate for a single track: the ordered waypoint
// sequence, the current selection and the playback state of a ride.
// All mutations are atomic with respect to the state they modify; no
// method ever observes a partially-applied mutation. State is not safe
// for concurrent use.
type State struct {
	points   []Point
	selected PointID
	progress float64
	riding   bool
	ids      IDSource

	rev      uint64 // bumped by every sequence mutation
	curves   [2]*spline.Curve
	curveRev [2]uint64
}

// NewState creates an empty track with the default counter id source.
func NewState() *State {
	return NewStateWithIDs(NewCounterSource())
}

// NewStateWithIDs creates an empty track drawing ids from src.
func NewStateWithIDs(src IDSource) *State {
	return &State{ids: src}
}

// === Mutations =============================================================

// Add appends a waypoint at the tail of the sequence and returns its id.
func (st *State) Add(pos r3.Vec) PointID {
	id := st.ids.Next()
	st.points = append(st.points, Point{ID: id, Pos: pos})
	st.touch()
	tracer().Debugf("added point %s at (%g,%g,%g)", id, pos.X, pos.Y, pos.Z)
	return id
}

// Update replaces the position of the point with the given id.
// Unknown ids are ignored.
func (st *State) Update(id PointID, pos r3.Vec) {
	i := indexOf(st.points, id)
	if i < 0 {
		tracer().Debugf("update for unknown point %s ignored", id)
		return
	}
	st.points[i].Pos = pos
	st.touch()
}

// UpdateTilt replaces the banking angle of the point with the given id.
// Unknown ids are ignored.
func (st *State) UpdateTilt(id PointID, tilt float64) {
	i := indexOf(st.points, id)
	if i < 0 {
		tracer().Debugf("tilt update for unknown point %s ignored", id)
		return
	}
	st.points[i].Tilt = tilt
	st.touch()
}

// Remove deletes the point with the given id. If the point was selected,
// the selection is cleared. Unknown ids are ignored.
func (st *State) Remove(id PointID) {
	i := indexOf(st.points, id)
	if i < 0 {
		tracer().Debugf("remove of unknown point %s ignored", id)
		return
	}
	st.points = append(st.points[:i], st.points[i+1:]...)
	if st.selected == id {
		st.selected = NoPoint
	}
	st.touch()
}

// Clear empties the sequence, clears the selection and resets the
// playback state.
func (st *State) Clear() {
	st.points = nil
	st.selected = NoPoint
	st.progress = 0
	st.riding = false
	st.touch()
}

// Select marks the point with the given id as selected. Unknown ids are
// ignored; use Deselect to clear the selection.
func (st *State) Select(id PointID) {
	if indexOf(st.points, id) < 0 {
		tracer().Debugf("select of unknown point %s ignored", id)
		return
	}
	st.selected = id
}

// Deselect clears the selection.
func (st *State) Deselect() {
	st.selected = NoPoint
}

// SetRiding toggles the ride flag. Animation timing is owned by an
// external playback driver; the flag is state only.
func (st *State) SetRiding(riding bool) {
	st.riding = riding
}

// SetProgress stores the ride progress, clamped to [0,1].
func (st *State) SetProgress(p float64) {
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	st.progress = p
}

// CreateLoopAt splices a loop into the sequence at the anchor point with
// the given id, using the default loop parameters. Unknown ids leave the
// sequence unchanged.
func (st *State) CreateLoopAt(id PointID) {
	st.CreateLoopAtWith(id, DefaultLoopParams())
}

// CreateLoopAtWith is CreateLoopAt with explicit loop parameters.
func (st *State) CreateLoopAtWith(id PointID, params LoopParams) {
	st.points = SynthesizeLoop(st.points, id, params, st.ids)
	if st.selected != NoPoint && indexOf(st.points, st.selected) < 0 {
		// selection was inside the splice window
		st.selected = NoPoint
	}
	st.touch()
}

// === Accessors =============================================================

// N returns the number of waypoints.
func (st *State) N() int {
	return len(st.points)
}

// PointAt returns the waypoint at index (i mod N).
func (st *State) PointAt(i int) Point {
	if i < 0 || i >= len(st.points) {
		i = ((i % len(st.points)) + len(st.points)) % len(st.points)
	}
	return st.points[i]
}

// Points returns a copy of the waypoint sequence in traversal order.
func (st *State) Points() []Point {
	pts := make([]Point, len(st.points))
	copy(pts, st.points)
	return pts
}

// Positions returns the waypoint positions in traversal order.
func (st *State) Positions() []r3.Vec {
	pos := make([]r3.Vec, len(st.points))
	for i, pt := range st.points {
		pos[i] = pt.Pos
	}
	return pos
}

// Lookup finds a waypoint by id.
func (st *State) Lookup(id PointID) (Point, bool) {
	i := indexOf(st.points, id)
	if i < 0 {
		return Point{}, false
	}
	return st.points[i], true
}

// IndexOf returns the index of the waypoint with the given id, or -1.
func (st *State) IndexOf(id PointID) int {
	return indexOf(st.points, id)
}

// Selected returns the id of the selected point, or NoPoint.
func (st *State) Selected() PointID {
	return st.selected
}

// Progress returns the ride progress in [0,1].
func (st *State) Progress() float64 {
	return st.progress
}

// Riding returns the ride flag.
func (st *State) Riding() bool {
	return st.riding
}

// Curve returns the interpolating curve through the current waypoint
// positions, or nil for fewer than 2 points. The curve is memoized on the
// sequence revision: repeated calls between mutations return the identical
// curve, and any mutation invalidates it.
func (st *State) Curve(closed bool) *spline.Curve {
	slot := 0
	if closed {
		slot = 1
	}
	if st.curves[slot] != nil && st.curveRev[slot] == st.rev {
		return st.curves[slot]
	}
	c := spline.BuildCurve(st.Positions(), closed)
	st.curves[slot] = c
	st.curveRev[slot] = st.rev
	return c
}

func (st *State) touch() {
	st.rev++
}
