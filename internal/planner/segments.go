package planner

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mural-robotics/wallplan/internal/geom"
)

// Segment is a traversable straight run along a lane, left over after
// subtracting the forbidden regions. LaneIndex ties it back to its lane
// for ordering; segments carry no other back-references.
type Segment struct {
	LaneIndex int
	Start     r2.Vec
	End       r2.Vec
}

// Length returns the segment's extent along its travel axis.
func (s Segment) Length() float64 {
	return r2.Norm(r2.Sub(s.End, s.Start))
}

// BuildSegments computes, for every lane, the free sub-spans remaining
// after the forbidden rectangles are projected onto the lane and
// subtracted from its full span [0, extent]. Free spans shorter than
// minSegmentLength are discarded: the tool cannot usefully enter a gap
// it barely fits through. The result is indexed by lane.
func BuildSegments(lanes []Lane, forbidden []geom.Rect, wallW, wallH, minSegmentLength float64) [][]Segment {
	perLane := make([][]Segment, len(lanes))

	for i, lane := range lanes {
		var full geom.Interval
		var blocked []geom.Interval

		if lane.Orientation == OrientationVertical {
			full = geom.Interval{Start: 0, End: wallH}
			for _, r := range forbidden {
				if r.X <= lane.Coord && lane.Coord <= r.MaxX() {
					blocked = append(blocked, geom.Interval{Start: r.Y, End: r.MaxY()})
				}
			}
		} else {
			full = geom.Interval{Start: 0, End: wallW}
			for _, r := range forbidden {
				if r.Y <= lane.Coord && lane.Coord <= r.MaxY() {
					blocked = append(blocked, geom.Interval{Start: r.X, End: r.MaxX()})
				}
			}
		}

		free := geom.SubtractIntervals(full, geom.MergeIntervals(blocked))

		var segs []Segment
		for _, iv := range free {
			if iv.Length() < minSegmentLength {
				continue
			}
			if lane.Orientation == OrientationVertical {
				segs = append(segs, Segment{
					LaneIndex: i,
					Start:     r2.Vec{X: lane.Coord, Y: iv.Start},
					End:       r2.Vec{X: lane.Coord, Y: iv.End},
				})
			} else {
				segs = append(segs, Segment{
					LaneIndex: i,
					Start:     r2.Vec{X: iv.Start, Y: lane.Coord},
					End:       r2.Vec{X: iv.End, Y: lane.Coord},
				})
			}
		}
		perLane[i] = segs
	}

	return perLane
}
