package planner

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mural-robotics/wallplan/internal/geom"
)

func baseParams() Params {
	return Params{
		ToolWidth:   0.5,
		Overlap:     0.1,
		SafeMargin:  0.1,
		Orientation: OrientationVertical,
	}
}

func TestPlanOpenWall(t *testing.T) {
	// 5x5 wall, no obstacles, vertical lanes at spacing 0.45.
	res, err := Plan(Request{WallWidth: 5, WallHeight: 5, Params: baseParams()})
	require.NoError(t, err)

	assert.Len(t, res.Lanes, 11)
	assert.Empty(t, res.ForbiddenRects)
	assert.NotEmpty(t, res.Waypoints)
	assert.False(t, res.Meta.CollisionFlag)
	assert.Empty(t, res.Meta.ValidationWarnings)
	assert.Equal(t, len(res.Waypoints), res.Meta.NumWaypoints)
	assert.Equal(t, "v1", res.Meta.PlannerVersion)
	assert.Greater(t, res.Meta.PathLength, 0.0)
}

func TestPlanSingleObstacle(t *testing.T) {
	res, err := Plan(Request{
		WallWidth:  5,
		WallHeight: 5,
		Obstacles:  []geom.Rect{{X: 1, Y: 1, W: 0.5, H: 0.5}},
		Params:     baseParams(),
	})
	require.NoError(t, err)

	require.Len(t, res.ForbiddenRects, 1)
	f := res.ForbiddenRects[0]
	assert.InDelta(t, 0.9, f.X, 1e-12)
	assert.InDelta(t, 0.9, f.Y, 1e-12)
	assert.InDelta(t, 0.7, f.W, 1e-12)
	assert.InDelta(t, 0.7, f.H, 1e-12)

	// Lanes crossing the forbidden region split into two free segments.
	perLane := BuildSegments(res.Lanes, res.ForbiddenRects, 5, 5, baseParams().EffectiveMinSegmentLength())
	split := false
	for _, segs := range perLane {
		if len(segs) == 2 {
			split = true
		}
	}
	assert.True(t, split, "expected at least one lane split into two segments")

	assert.Greater(t, res.Meta.CoverageFraction, 0.0)
}

func TestPlanInvalidOverlap(t *testing.T) {
	params := baseParams()
	params.Overlap = 1.0

	res, err := Plan(Request{WallWidth: 5, WallHeight: 5, Params: params})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	assert.Nil(t, res)
}

func TestPlanInvalidWaypointSpacing(t *testing.T) {
	// A non-positive spacing must be rejected up front; letting it reach
	// discretization would divide the segment length by zero.
	for _, spacing := range []float64{0, -0.1} {
		params := baseParams()
		params.WaypointSpacing = &spacing

		res, err := Plan(Request{WallWidth: 5, WallHeight: 5, Params: params})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidParameter))
		assert.Nil(t, res)
	}
}

func TestPlanObstacleOffWall(t *testing.T) {
	res, err := Plan(Request{
		WallWidth:  5,
		WallHeight: 5,
		Obstacles:  []geom.Rect{{X: -5, Y: -5, W: 1, H: 1}},
		Params:     baseParams(),
	})
	require.NoError(t, err)
	assert.Empty(t, res.ForbiddenRects)
}

func TestPlanForbiddenInvariants(t *testing.T) {
	res, err := Plan(Request{
		WallWidth:  6,
		WallHeight: 4,
		Obstacles: []geom.Rect{
			{X: 0.5, Y: 0.5, W: 1, H: 1},
			{X: 1.2, Y: 1.2, W: 1, H: 1}, // overlaps the first once inflated
			{X: 4, Y: 2, W: 3, H: 3},     // overhangs top-right corner
			{X: -2, Y: -2, W: 0.5, H: 0.5},
		},
		Params: Params{ToolWidth: 0.4, Overlap: 0.2, SafeMargin: 0.05},
	})
	require.NoError(t, err)

	for i, r := range res.ForbiddenRects {
		assert.GreaterOrEqual(t, r.X, 0.0)
		assert.GreaterOrEqual(t, r.Y, 0.0)
		assert.LessOrEqual(t, r.MaxX(), 6.0)
		assert.LessOrEqual(t, r.MaxY(), 4.0)
		for j := i + 1; j < len(res.ForbiddenRects); j++ {
			assert.False(t, r.Overlaps(res.ForbiddenRects[j]),
				"forbidden rects %d and %d overlap", i, j)
		}
	}
}

func TestPlanSegmentMinLength(t *testing.T) {
	params := baseParams()
	req := Request{
		WallWidth:  5,
		WallHeight: 5,
		Obstacles: []geom.Rect{
			{X: 0, Y: 4.5, W: 5, H: 0.4}, // leaves a thin strip near the top
			{X: 2, Y: 2, W: 1, H: 1},
		},
		Params: params,
	}
	res, err := Plan(req)
	require.NoError(t, err)

	minLen := params.EffectiveMinSegmentLength()
	perLane := BuildSegments(res.Lanes, res.ForbiddenRects, 5, 5, minLen)
	for _, segs := range perLane {
		for _, s := range segs {
			assert.GreaterOrEqual(t, s.Length(), minLen)
		}
	}
}

func TestPlanCoverageFractionBounds(t *testing.T) {
	cases := []struct {
		name string
		req  Request
	}{
		{"open wall", Request{WallWidth: 5, WallHeight: 5, Params: baseParams()}},
		{"wide wall auto", Request{WallWidth: 10, WallHeight: 2, Params: Params{ToolWidth: 0.3, Overlap: 0, SafeMargin: 0}}},
		{"mostly blocked", Request{
			WallWidth: 3, WallHeight: 3,
			Obstacles: []geom.Rect{{X: 0.2, Y: 0.2, W: 2.6, H: 2.6}},
			Params:    Params{ToolWidth: 0.5, Overlap: 0.1, SafeMargin: 0.1},
		}},
		{"tiny wall no lanes", Request{WallWidth: 0.1, WallHeight: 0.1, Params: Params{ToolWidth: 1, Overlap: 0, SafeMargin: 0}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Plan(tc.req)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.Meta.CoverageFraction, 0.0)
			assert.LessOrEqual(t, res.Meta.CoverageFraction, 1.0)
		})
	}
}

func TestPlanHeadings(t *testing.T) {
	res, err := Plan(Request{WallWidth: 5, WallHeight: 5, Params: baseParams()})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(res.Waypoints), 2)

	n := len(res.Waypoints)
	assert.Equal(t, res.Waypoints[n-2].Theta, res.Waypoints[n-1].Theta,
		"last waypoint must inherit the second-to-last heading")

	// First lane of a vertical sweep travels straight up.
	assert.InDelta(t, math.Pi/2, res.Waypoints[0].Theta, 1e-9)
}

func TestPlanSpeedPassthrough(t *testing.T) {
	params := baseParams()
	speed := 0.25
	params.Speed = &speed

	res, err := Plan(Request{WallWidth: 2, WallHeight: 2, Params: params})
	require.NoError(t, err)
	require.NotEmpty(t, res.Waypoints)
	for _, wp := range res.Waypoints {
		require.NotNil(t, wp.Speed)
		assert.Equal(t, speed, *wp.Speed)
	}
}

func TestPlanCollisionAdvisory(t *testing.T) {
	// Force a collision: zero minimum segment length lets segments hug the
	// forbidden region so boundary waypoints land exactly on its edge.
	params := baseParams()
	zero := 0.0
	params.MinSegmentLength = &zero

	res, err := Plan(Request{
		WallWidth:  5,
		WallHeight: 5,
		Obstacles:  []geom.Rect{{X: 0, Y: 2, W: 5, H: 0.5}},
		Params:     params,
	})
	require.NoError(t, err)
	assert.True(t, res.Meta.CollisionFlag)
	assert.NotEmpty(t, res.Meta.ValidationWarnings)
}
