package planner

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// transitionEpsilon is the Euclidean gap below which the end of one
// segment and the start of the next are treated as coincident and no
// transition move is inserted.
const transitionEpsilon = 1e-6

// Waypoint is one pose along the coverage path. Theta is derived in a
// dedicated pass after all positions are fixed (AssignHeadings); Speed
// is an optional passthrough from the request.
type Waypoint struct {
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Theta float64  `json:"theta"`
	Speed *float64 `json:"speed,omitempty"`
}

// Pos returns the waypoint position as a vector.
func (w Waypoint) Pos() r2.Vec {
	return r2.Vec{X: w.X, Y: w.Y}
}

// discretizeLine samples the straight line from a to b at the given
// spacing. A line shorter than the spacing yields exactly its two
// endpoints. Otherwise floor(length/spacing)+1 evenly-parameterized
// samples are produced, with the exact end point appended if rounding
// left the final sample short of it.
func discretizeLine(a, b r2.Vec, spacing float64) []r2.Vec {
	length := r2.Norm(r2.Sub(b, a))
	if length < spacing {
		return []r2.Vec{a, b}
	}

	n := int(length / spacing)
	pts := make([]r2.Vec, 0, n+2)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		pts = append(pts, r2.Add(r2.Scale(1-t, a), r2.Scale(t, b)))
	}
	if last := pts[len(pts)-1]; last != b {
		pts = append(pts, b)
	}
	return pts
}

// DiscretizePath converts the ordered segment list into a dense,
// continuous waypoint sequence. Each segment is sampled at the target
// spacing, and whenever consecutive segments do not end and begin at the
// same place a straight transition move is inserted between them so the
// lane-to-lane jumps become explicit travel rather than teleports.
func DiscretizePath(ordered []Segment, spacing float64, speed *float64) []Waypoint {
	var waypoints []Waypoint
	havePrev := false
	var prev r2.Vec

	appendPoint := func(p r2.Vec) {
		waypoints = append(waypoints, Waypoint{X: p.X, Y: p.Y, Speed: speed})
	}

	for _, seg := range ordered {
		pts := discretizeLine(seg.Start, seg.End, spacing)

		if havePrev && r2.Norm(r2.Sub(pts[0], prev)) > transitionEpsilon {
			for _, p := range discretizeLine(prev, pts[0], spacing) {
				appendPoint(p)
			}
		}

		for _, p := range pts {
			appendPoint(p)
		}

		prev = pts[len(pts)-1]
		havePrev = true
	}

	return waypoints
}

// AssignHeadings fills in each waypoint's theta as the bearing to the
// next waypoint. The final waypoint has no look-ahead and inherits the
// heading of the one before it. Mutates the slice in place.
func AssignHeadings(waypoints []Waypoint) {
	for i := 0; i < len(waypoints)-1; i++ {
		dx := waypoints[i+1].X - waypoints[i].X
		dy := waypoints[i+1].Y - waypoints[i].Y
		waypoints[i].Theta = math.Atan2(dy, dx)
	}
	if len(waypoints) >= 2 {
		waypoints[len(waypoints)-1].Theta = waypoints[len(waypoints)-2].Theta
	}
}
