package planner

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter marks caller-correctable parameter errors. The API
// layer maps it to HTTP 400 via errors.Is.
var ErrInvalidParameter = errors.New("invalid planner parameter")

// Orientation selects the sweep direction of the generated lanes.
type Orientation string

const (
	// OrientationAuto picks vertical lanes for walls taller than wide,
	// horizontal otherwise. Fewer, longer strokes along the long axis.
	OrientationAuto       Orientation = "auto"
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
)

// Params holds the process parameters for a planning run. Optional fields
// are pointers so that "absent" is distinguishable from zero; all
// defaulting rules live here rather than scattered through the pipeline:
//
//   - WaypointSpacing: ToolWidth / 2 when unset
//   - MinSegmentLength: max(0.25 * ToolWidth, 0.05) when unset
//   - Orientation: "auto" when unset
type Params struct {
	// ToolWidth is the width of the brush or nozzle in metres.
	ToolWidth float64 `json:"tool_width"`
	// Overlap is the fractional overlap between adjacent lanes.
	Overlap float64 `json:"overlap"`
	// SafeMargin is the inflation applied around each obstacle.
	SafeMargin float64 `json:"safe_margin"`

	Orientation      Orientation `json:"orientation,omitempty"`
	WaypointSpacing  *float64    `json:"waypoint_spacing,omitempty"`
	MinSegmentLength *float64    `json:"min_segment_length,omitempty"`

	// Speed, when set, is copied onto every waypoint as a passthrough;
	// the planner itself does not use it.
	Speed *float64 `json:"speed,omitempty"`
}

// LaneSpacing is the effective distance between adjacent sweep lanes.
func (p Params) LaneSpacing() float64 {
	return p.ToolWidth * (1 - p.Overlap)
}

// EffectiveWaypointSpacing resolves the waypoint spacing default.
func (p Params) EffectiveWaypointSpacing() float64 {
	if p.WaypointSpacing != nil {
		return *p.WaypointSpacing
	}
	return p.ToolWidth / 2
}

// EffectiveMinSegmentLength resolves the minimum segment length default.
func (p Params) EffectiveMinSegmentLength() float64 {
	if p.MinSegmentLength != nil {
		return *p.MinSegmentLength
	}
	return max(0.25*p.ToolWidth, 0.05)
}

// EffectiveOrientation resolves the orientation default. Resolution of
// "auto" against the wall dimensions happens in GenerateLanes, which
// knows the wall.
func (p Params) EffectiveOrientation() Orientation {
	if p.Orientation == "" {
		return OrientationAuto
	}
	return p.Orientation
}

// Validate rejects parameter combinations the pipeline cannot work with.
// It runs before any geometry work so an invalid request never produces
// a partial result.
func (p Params) Validate() error {
	if spacing := p.LaneSpacing(); spacing <= 0 {
		return fmt.Errorf("%w: tool_width=%g overlap=%g yields lane spacing %g (must be > 0)",
			ErrInvalidParameter, p.ToolWidth, p.Overlap, spacing)
	}
	if spacing := p.EffectiveWaypointSpacing(); spacing <= 0 {
		return fmt.Errorf("%w: waypoint spacing %g (must be > 0)", ErrInvalidParameter, spacing)
	}
	if p.MinSegmentLength != nil && *p.MinSegmentLength < 0 {
		return fmt.Errorf("%w: min_segment_length %g (must be >= 0)",
			ErrInvalidParameter, *p.MinSegmentLength)
	}
	switch p.EffectiveOrientation() {
	case OrientationAuto, OrientationVertical, OrientationHorizontal:
	default:
		return fmt.Errorf("%w: unknown orientation %q", ErrInvalidParameter, p.Orientation)
	}
	return nil
}
