package geom

import "sort"

// Interval is a closed span [Start, End] along a single axis. Intervals
// are used transiently while building lane segments: forbidden rectangles
// project onto a lane as blocked intervals, which are then merged and
// subtracted from the lane's full span.
type Interval struct {
	Start float64
	End   float64
}

// Length returns End - Start.
func (iv Interval) Length() float64 { return iv.End - iv.Start }

// MergeIntervals coalesces overlapping or touching intervals into a
// minimal sorted set. The input slice is not modified.
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
		} else {
			merged = append(merged, iv)
		}
	}
	return merged
}

// SubtractIntervals removes the blocked intervals from full and returns
// the remaining free intervals in ascending order. blocked must already
// be merged and sorted (see MergeIntervals); intervals outside full are
// clamped to it.
func SubtractIntervals(full Interval, blocked []Interval) []Interval {
	var free []Interval
	cursor := full.Start

	for _, b := range blocked {
		if b.Start > cursor {
			free = append(free, Interval{Start: cursor, End: min(b.Start, full.End)})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}

	if cursor < full.End {
		free = append(free, Interval{Start: cursor, End: full.End})
	}
	return free
}
