package planner

import (
	"github.com/mural-robotics/wallplan/internal/geom"
)

// ProcessObstacles turns raw obstacle rectangles into the forbidden
// regions the rest of the pipeline plans around: each obstacle is
// inflated by the safety margin, clipped to the wall, and overlapping
// results are merged to a fixed point. The returned rectangles are
// pairwise non-overlapping and fully confined to
// [0, wallW] x [0, wallH]; obstacles that fall entirely off the wall
// after clipping are dropped.
func ProcessObstacles(obstacles []geom.Rect, safeMargin, wallW, wallH float64) []geom.Rect {
	clipped := make([]geom.Rect, 0, len(obstacles))
	for _, o := range obstacles {
		if c, ok := o.Inflate(safeMargin).ClipTo(wallW, wallH); ok {
			clipped = append(clipped, c)
		}
	}
	return geom.MergeRects(clipped)
}
