package planner

// laneEpsilon admits a boundary-exact final lane that floating-point
// rounding would otherwise lose.
const laneEpsilon = 1e-9

// Lane is a sweep line at a fixed coordinate perpendicular to the travel
// axis. Vertical lanes sit at an x coordinate and travel along y;
// horizontal lanes sit at a y coordinate and travel along x.
type Lane struct {
	Orientation Orientation `json:"orientation"`
	Coord       float64     `json:"coord"`
}

// ResolveOrientation turns "auto" into a concrete orientation: vertical
// for walls taller than wide, horizontal otherwise.
func ResolveOrientation(o Orientation, wallW, wallH float64) Orientation {
	if o != OrientationAuto && o != "" {
		return o
	}
	if wallH > wallW {
		return OrientationVertical
	}
	return OrientationHorizontal
}

// GenerateLanes places parallel sweep lanes across the wall. The first
// lane sits half a spacing in from the origin and subsequent lanes step
// by the spacing, up to and including any coordinate within
// extent - spacing/2 + laneEpsilon. Callers must validate the spacing
// first (Params.Validate); a non-positive spacing would loop forever.
func GenerateLanes(wallW, wallH, laneSpacing float64, orientation Orientation) []Lane {
	orientation = ResolveOrientation(orientation, wallW, wallH)

	extent := wallW
	if orientation == OrientationHorizontal {
		extent = wallH
	}

	var lanes []Lane
	half := laneSpacing / 2
	for coord := half; coord <= extent-half+laneEpsilon; coord += laneSpacing {
		lanes = append(lanes, Lane{Orientation: orientation, Coord: coord})
	}
	return lanes
}
