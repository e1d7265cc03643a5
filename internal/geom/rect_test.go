package geom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestInflate(t *testing.T) {
	r := Rect{X: 1, Y: 1, W: 0.5, H: 0.5}
	got := r.Inflate(0.1)
	want := Rect{X: 0.9, Y: 0.9, W: 0.7, H: 0.7}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Inflate mismatch (-want +got):\n%s", diff)
	}
}

func TestClipTo(t *testing.T) {
	tests := []struct {
		name   string
		rect   Rect
		want   Rect
		wantOK bool
	}{
		{
			name:   "fully inside",
			rect:   Rect{X: 1, Y: 1, W: 2, H: 2},
			want:   Rect{X: 1, Y: 1, W: 2, H: 2},
			wantOK: true,
		},
		{
			name:   "overhangs left and bottom",
			rect:   Rect{X: -0.5, Y: -0.5, W: 1, H: 1},
			want:   Rect{X: 0, Y: 0, W: 0.5, H: 0.5},
			wantOK: true,
		},
		{
			name:   "overhangs right edge",
			rect:   Rect{X: 4, Y: 1, W: 3, H: 1},
			want:   Rect{X: 4, Y: 1, W: 1, H: 1},
			wantOK: true,
		},
		{
			name:   "fully outside negative coordinates",
			rect:   Rect{X: -3, Y: -3, W: 1, H: 1},
			wantOK: false,
		},
		{
			name:   "fully beyond far corner",
			rect:   Rect{X: 6, Y: 6, W: 1, H: 1},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.rect.ClipTo(5, 5)
			if ok != tt.wantOK {
				t.Fatalf("ClipTo ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ClipTo mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 1, H: 1}

	if !a.Overlaps(Rect{X: 0.5, Y: 0.5, W: 1, H: 1}) {
		t.Error("expected overlapping rectangles to overlap")
	}
	// Touching edges count as overlap so adjacent regions merge.
	if !a.Overlaps(Rect{X: 1, Y: 0, W: 1, H: 1}) {
		t.Error("expected touching rectangles to overlap")
	}
	if a.Overlaps(Rect{X: 2, Y: 2, W: 1, H: 1}) {
		t.Error("expected disjoint rectangles not to overlap")
	}
}

func TestUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 1, H: 1}
	b := Rect{X: 2, Y: 3, W: 1, H: 1}
	got := a.Union(b)
	want := Rect{X: 0, Y: 0, W: 3, H: 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Union mismatch (-want +got):\n%s", diff)
	}
}

func TestContains(t *testing.T) {
	r := Rect{X: 1, Y: 1, W: 2, H: 2}

	if !r.Contains(r2.Vec{X: 2, Y: 2}) {
		t.Error("interior point should be contained")
	}
	if !r.Contains(r2.Vec{X: 1, Y: 1}) {
		t.Error("boundary point should be contained (inclusive)")
	}
	if !r.Contains(r2.Vec{X: 3, Y: 3}) {
		t.Error("far corner should be contained (inclusive)")
	}
	if r.Contains(r2.Vec{X: 3.01, Y: 2}) {
		t.Error("exterior point should not be contained")
	}
}

func TestMergeRects(t *testing.T) {
	tests := []struct {
		name  string
		rects []Rect
		want  int
	}{
		{name: "empty", rects: nil, want: 0},
		{name: "single", rects: []Rect{{X: 0, Y: 0, W: 1, H: 1}}, want: 1},
		{
			name: "two disjoint",
			rects: []Rect{
				{X: 0, Y: 0, W: 1, H: 1},
				{X: 3, Y: 3, W: 1, H: 1},
			},
			want: 2,
		},
		{
			name: "two overlapping collapse to one",
			rects: []Rect{
				{X: 0, Y: 0, W: 2, H: 2},
				{X: 1, Y: 1, W: 2, H: 2},
			},
			want: 1,
		},
		{
			name: "chain merges transitively",
			rects: []Rect{
				{X: 0, Y: 0, W: 1.5, H: 1},
				{X: 1, Y: 0, W: 1.5, H: 1},
				{X: 2, Y: 0, W: 1.5, H: 1},
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeRects(tt.rects)
			if len(got) != tt.want {
				t.Fatalf("MergeRects returned %d rects, want %d: %v", len(got), tt.want, got)
			}
			for i := range got {
				for j := i + 1; j < len(got); j++ {
					if got[i].Overlaps(got[j]) {
						t.Errorf("result rects %v and %v overlap", got[i], got[j])
					}
				}
			}
		})
	}
}

func TestMergeRectsIdempotent(t *testing.T) {
	rects := []Rect{
		{X: 0, Y: 0, W: 2, H: 2},
		{X: 1, Y: 1, W: 2, H: 2},
		{X: 4, Y: 4, W: 0.5, H: 0.5},
	}
	once := MergeRects(rects)
	twice := MergeRects(once)

	// The merged rects form a set; the fixed-point scan pops from the
	// slice end, so only the membership is stable, not the order.
	sortRects := cmpopts.SortSlices(func(a, b Rect) bool {
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.W != b.W {
			return a.W < b.W
		}
		return a.H < b.H
	})
	if diff := cmp.Diff(once, twice, sortRects); diff != "" {
		t.Errorf("merging merged rects changed the set (-once +twice):\n%s", diff)
	}
}

func TestMergeRectsUnionBounds(t *testing.T) {
	// Merged cluster must be the bounding box of its members.
	rects := []Rect{
		{X: 0, Y: 0, W: 1, H: 1},
		{X: 0.5, Y: 0.5, W: 2, H: 3},
	}
	got := MergeRects(rects)
	if len(got) != 1 {
		t.Fatalf("expected 1 merged rect, got %d", len(got))
	}
	want := Rect{X: 0, Y: 0, W: 2.5, H: 3.5}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("merged bounds mismatch (-want +got):\n%s", diff)
	}
}
