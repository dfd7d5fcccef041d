package rail

import (
	"math"

	"github.com/akavel/polyclip-go"
	"gonum.org/v1/gonum/spatial/r3"
)

// quads with an area below this are skipped; polyclip does not cope well
// with degenerate input
const minQuadArea = 1e-9

// Footprint projects the rail pair onto the ground plane and unions the
// successive rail quads into the track's ground-shadow contours. The
// result is a polygon in (x,z) coordinates, suitable for a shadow decal
// or a ground clearance display.
func Footprint(left, right []r3.Vec) polyclip.Polygon {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	var shadow polyclip.Polygon
	for i := 0; i+1 < n; i++ {
		quad := polyclip.Polygon{{
			ground(left[i]),
			ground(right[i]),
			ground(right[i+1]),
			ground(left[i+1]),
		}}
		if contourArea(quad[0]) < minQuadArea {
			continue
		}
		if shadow == nil {
			shadow = quad
		} else {
			shadow = shadow.Construct(polyclip.UNION, quad)
		}
	}
	return shadow
}

func ground(v r3.Vec) polyclip.Point {
	return polyclip.Point{X: v.X, Y: v.Z}
}

// contourArea is the absolute shoelace area of a contour.
func contourArea(c polyclip.Contour) float64 {
	var area float64
	for i := range c {
		j := (i + 1) % len(c)
		area += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return math.Abs(area) / 2
}
