// Package geom provides the 2D primitives used by the coverage planner:
// axis-aligned rectangles on the wall plane and 1D interval algebra along
// a sweep lane. All coordinates are metres in the wall frame, with the
// origin at the bottom-left corner of the wall.
package geom

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Rect is an axis-aligned rectangle anchored at its bottom-left corner.
// Obstacles, forbidden regions and the wall itself are all Rects. A Rect
// with non-positive width or height is degenerate and is dropped during
// clipping rather than carried through the pipeline.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// MaxX returns the x coordinate of the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the y coordinate of the top edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Area returns the rectangle's area. Degenerate rectangles report zero.
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Inflate grows the rectangle by margin on all four sides.
func (r Rect) Inflate(margin float64) Rect {
	return Rect{
		X: r.X - margin,
		Y: r.Y - margin,
		W: r.W + 2*margin,
		H: r.H + 2*margin,
	}
}

// ClipTo clips the rectangle to the wall bounds [0,wallW] x [0,wallH].
// The second return value is false when the clipped rectangle has
// non-positive extent, i.e. the rectangle lies entirely off the wall.
func (r Rect) ClipTo(wallW, wallH float64) (Rect, bool) {
	x := max(0, r.X)
	y := max(0, r.Y)
	w := min(wallW-x, r.MaxX()-x)
	h := min(wallH-y, r.MaxY()-y)

	if w <= 0 || h <= 0 {
		return Rect{}, false
	}
	return Rect{X: x, Y: y, W: w, H: h}, true
}

// Overlaps reports whether two rectangles overlap. Rectangles that merely
// touch along an edge or corner count as overlapping, so that adjacent
// forbidden regions merge into a single cluster.
func (r Rect) Overlaps(other Rect) bool {
	if r.MaxX() < other.X || other.MaxX() < r.X {
		return false
	}
	if r.MaxY() < other.Y || other.MaxY() < r.Y {
		return false
	}
	return true
}

// Union returns the bounding box of the two rectangles.
func (r Rect) Union(other Rect) Rect {
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: max(r.MaxX(), other.MaxX()) - x,
		H: max(r.MaxY(), other.MaxY()) - y,
	}
}

// Contains reports whether the point lies inside the rectangle. The
// boundary is inclusive: a waypoint sitting exactly on a forbidden
// rectangle's edge counts as a collision.
func (r Rect) Contains(p r2.Vec) bool {
	return r.X <= p.X && p.X <= r.MaxX() &&
		r.Y <= p.Y && p.Y <= r.MaxY()
}

// MergeRects collapses a set of rectangles into the minimal set of
// pairwise non-overlapping bounding boxes. Any pair whose bounding boxes
// overlap (touching included) is replaced by its union, and the scan
// repeats until a full pass makes no merge, so each result rectangle is
// the union of a maximal connected cluster of inputs.
//
// The scan is O(n^2) per pass. That is deliberate: obstacle counts are in
// the low hundreds and the fixed-point loop keeps the invariant easy to
// verify. The input slice is not modified.
func MergeRects(rects []Rect) []Rect {
	merged := make([]Rect, len(rects))
	copy(merged, rects)

	for changed := true; changed; {
		changed = false
		var out []Rect
		for len(merged) > 0 {
			r := merged[len(merged)-1]
			merged = merged[:len(merged)-1]

			absorbed := false
			for i, existing := range merged {
				if r.Overlaps(existing) {
					merged[i] = merged[len(merged)-1]
					merged = merged[:len(merged)-1]
					merged = append(merged, r.Union(existing))
					absorbed = true
					changed = true
					break
				}
			}
			if !absorbed {
				out = append(out, r)
			}
		}
		merged = out
	}

	return merged
}
