package planner

import (
	"slices"
	"sort"
)

// OrderSegments imposes the boustrophedon travel order: lanes are
// visited in generation order and the sweep direction alternates from
// lane to lane. Within a forward lane segments run in ascending start
// coordinate; in a reversed lane the segment *order* is reversed while
// each segment keeps its own start and end, so the path threads the lane
// in descending coordinate order.
//
// A lane with no free segments still flips the direction flag. The lane
// was notionally traversed even though nothing is painted there, and
// keeping the alternation avoids two consecutive same-direction sweeps
// across an obstacle-blocked lane.
func OrderSegments(perLane [][]Segment, orientation Orientation) []Segment {
	var ordered []Segment
	forward := true

	for _, segs := range perLane {
		if len(segs) == 0 {
			forward = !forward
			continue
		}

		sorted := slices.Clone(segs)
		if orientation == OrientationVertical {
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Y < sorted[j].Start.Y })
		} else {
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.X < sorted[j].Start.X })
		}

		if !forward {
			slices.Reverse(sorted)
		}

		ordered = append(ordered, sorted...)
		forward = !forward
	}

	return ordered
}
