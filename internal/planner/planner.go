// Package planner implements boustrophedon coverage planning for
// rectangular walls with rectangular obstacles. Given wall extents,
// obstacles and tool parameters it produces an ordered waypoint path
// that sweeps the wall in parallel lanes while avoiding inflated
// obstacle regions, together with path-quality metrics.
//
// The planner is a single linear pipeline of pure stages:
//
//	ProcessObstacles -> GenerateLanes -> BuildSegments ->
//	OrderSegments -> DiscretizePath -> AssignHeadings + metrics
//
// Every stage is total over well-formed input; the only hard failure is
// parameter validation, which runs before any geometry work. The
// pipeline holds no state across calls and is safe to invoke
// concurrently as long as callers do not share input slices.
package planner

import (
	"github.com/mural-robotics/wallplan/internal/geom"
	"github.com/mural-robotics/wallplan/internal/version"
)

// Request carries the full input for one planning run.
type Request struct {
	WallWidth  float64
	WallHeight float64
	Obstacles  []geom.Rect
	Params     Params
}

// Meta summarises a planning run.
type Meta struct {
	PathLength         float64  `json:"path_length"`
	CoverageFraction   float64  `json:"coverage_fraction"`
	NumWaypoints       int      `json:"num_waypoints"`
	PlannerVersion     string   `json:"planner_version"`
	ValidationWarnings []string `json:"validation_warnings"`
	CollisionFlag      bool     `json:"collision_flag"`
}

// Result is the output of a planning run. Waypoints are
// order-significant; ForbiddenRects are a set; Lanes are in generation
// order.
type Result struct {
	Waypoints      []Waypoint  `json:"waypoints"`
	ForbiddenRects []geom.Rect `json:"forbidden_rects"`
	Lanes          []Lane      `json:"lanes"`
	Meta           Meta        `json:"meta"`
}

// Plan runs the coverage pipeline. It returns ErrInvalidParameter
// (wrapped) when the effective lane spacing is non-positive; collisions
// between final waypoints and forbidden regions are surfaced as warnings
// in the result rather than as errors.
func Plan(req Request) (*Result, error) {
	if err := req.Params.Validate(); err != nil {
		return nil, err
	}

	forbidden := ProcessObstacles(req.Obstacles, req.Params.SafeMargin, req.WallWidth, req.WallHeight)

	laneSpacing := req.Params.LaneSpacing()
	lanes := GenerateLanes(req.WallWidth, req.WallHeight, laneSpacing, req.Params.EffectiveOrientation())
	orientation := ResolveOrientation(req.Params.EffectiveOrientation(), req.WallWidth, req.WallHeight)

	perLane := BuildSegments(lanes, forbidden, req.WallWidth, req.WallHeight, req.Params.EffectiveMinSegmentLength())
	ordered := OrderSegments(perLane, orientation)

	waypoints := DiscretizePath(ordered, req.Params.EffectiveWaypointSpacing(), req.Params.Speed)
	AssignHeadings(waypoints)

	warnings := DetectCollisions(waypoints, forbidden)

	return &Result{
		Waypoints:      waypoints,
		ForbiddenRects: forbidden,
		Lanes:          lanes,
		Meta: Meta{
			PathLength:         PathLength(waypoints),
			CoverageFraction:   EstimateCoverage(req.WallWidth, req.WallHeight, laneSpacing, lanes, forbidden),
			NumWaypoints:       len(waypoints),
			PlannerVersion:     version.Planner,
			ValidationWarnings: warnings,
			CollisionFlag:      len(warnings) > 0,
		},
	}, nil
}
