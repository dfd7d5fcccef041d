package track

import (
	"fmt"

	"github.com/google/uuid"
)

// IDSource generates fresh point ids. Sources are owned by a single State
// and need not be safe for concurrent use.
type IDSource interface {
	Next() PointID
}

// NewCounterSource returns the default id source: a sequence-scoped
// monotonically increasing counter, formatted as "pt1", "pt2", ...
// Ids are never reused, not even after Remove or Clear.
func NewCounterSource() IDSource {
	return &counterSource{}
}

type counterSource struct {
	n uint64
}

func (c *counterSource) Next() PointID {
	c.n++
	return PointID(fmt.Sprintf("pt%d", c.n))
}

// NewUUIDSource returns an id source producing "pt_<uuid>" tags. Use it
// when ids must stay unique across several State instances, e.g. when
// merging tracks built in parallel sessions.
func NewUUIDSource() IDSource {
	return uuidSource{}
}

type uuidSource struct{}

func (uuidSource) Next() PointID {
	return PointID("pt_" + uuid.NewString())
}
