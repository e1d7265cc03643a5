package planner

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mural-robotics/wallplan/internal/geom"
)

// PathLength sums the Euclidean distances between consecutive waypoints.
func PathLength(waypoints []Waypoint) float64 {
	total := 0.0
	for i := 0; i < len(waypoints)-1; i++ {
		total += r2.Norm(r2.Sub(waypoints[i+1].Pos(), waypoints[i].Pos()))
	}
	return total
}

// EstimateCoverage approximates the fraction of the wall swept by the
// lanes: lane count times lane spacing times the sweep extent, capped at
// the obstacle-free wall area, over the total wall area.
//
// This is an area approximation, not an exact swept-footprint
// computation. It does not subtract per-lane gap lengths, so it can
// overstate coverage when many short free spans fall below the minimum
// segment length. Downstream consumers depend on these exact semantics;
// do not "fix" the formula here without coordinating a version bump.
func EstimateCoverage(wallW, wallH, laneSpacing float64, lanes []Lane, forbidden []geom.Rect) float64 {
	if len(lanes) == 0 {
		return 0
	}

	totalArea := wallW * wallH

	forbiddenArea := 0.0
	for _, r := range forbidden {
		forbiddenArea += r.Area()
	}

	sweepExtent := wallW
	if lanes[0].Orientation == OrientationVertical {
		sweepExtent = wallH
	}

	swept := float64(len(lanes)) * laneSpacing * sweepExtent
	swept = min(swept, totalArea-forbiddenArea)

	return swept / max(totalArea, 1e-9)
}

// DetectCollisions scans every waypoint against every forbidden
// rectangle (inclusive boundary) and returns a warning per hit. This is
// advisory post-hoc validation: the plan is still returned and the
// caller decides whether a colliding plan is acceptable.
func DetectCollisions(waypoints []Waypoint, forbidden []geom.Rect) []string {
	var warnings []string
	for i, wp := range waypoints {
		for _, r := range forbidden {
			if r.Contains(wp.Pos()) {
				warnings = append(warnings, fmt.Sprintf(
					"collision: waypoint %d at (%.4f, %.4f) inside forbidden rect {x:%.4f y:%.4f w:%.4f h:%.4f}",
					i, wp.X, wp.Y, r.X, r.Y, r.W, r.H))
			}
		}
	}
	return warnings
}
