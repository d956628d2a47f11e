package stats

import (
	"fmt"
	"sort"
	"strings"
)

/*
Point is an entry of a numeric distribution: a value along with
the number of training instances that had it.
*/
type Point struct {
	Value float64
	Count int
}

/*
Histogram is a numeric distribution, a list of points that is expected
to be sorted by value when given to MergeBins or Median.
*/
type Histogram []Point

// Total returns the sum of the counts of all points in the histogram.
func (h Histogram) Total() int {
	var total int
	for _, p := range h {
		total += p.Count
	}
	return total
}

// Clone returns a copy of the histogram that shares no memory with it.
func (h Histogram) Clone() Histogram {
	if h == nil {
		return nil
	}
	c := make(Histogram, len(h))
	copy(c, h)
	return c
}

// Sorted returns a copy of the histogram with its points sorted by
// ascending value. Points with equal values keep their relative order.
func (h Histogram) Sorted() Histogram {
	c := h.Clone()
	sort.SliceStable(c, func(i, j int) bool { return c[i].Value < c[j].Value })
	return c
}

func (h Histogram) String() string {
	parts := make([]string, len(h))
	for i, p := range h {
		parts[i] = fmt.Sprintf("[%v %d]", p.Value, p.Count)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

/*
MergeDistributions takes two histograms and returns their union sorted by
value, with the counts of points having exactly the same value summed up.

Merging with an empty histogram returns a copy of the other one unchanged.
*/
func MergeDistributions(a, b Histogram) Histogram {
	if len(b) == 0 {
		return a.Clone()
	}
	if len(a) == 0 {
		return b.Clone()
	}
	all := make(Histogram, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	all = all.Sorted()
	merged := all[:1]
	for _, p := range all[1:] {
		last := &merged[len(merged)-1]
		if last.Value == p.Value {
			last.Count += p.Count
			continue
		}
		merged = append(merged, p)
	}
	return merged
}

/*
MergeBins takes a histogram and a limit and collapses the histogram until
it has no more than limit points. On each step the two adjacent points
with the smallest gap between their values (the first such pair when
there are several) are replaced by a single point placed at their
count-weighted mean value and holding the sum of their counts.

The result is sorted by value and keeps the total count of the input.
A limit lower than 1 returns the histogram unchanged.
*/
func MergeBins(h Histogram, limit int) Histogram {
	bins := h.Sorted()
	if limit < 1 || len(bins) <= limit || len(bins) < 2 {
		return bins
	}
	for len(bins) > limit {
		index := 1
		shortest := bins[1].Value - bins[0].Value
		for i := 2; i < len(bins); i++ {
			if gap := bins[i].Value - bins[i-1].Value; gap < shortest {
				shortest = gap
				index = i
			}
		}
		left, right := bins[index-1], bins[index]
		count := left.Count + right.Count
		value := (left.Value + right.Value) / 2
		if count > 0 {
			value = (left.Value*float64(left.Count) + right.Value*float64(right.Count)) / float64(count)
		}
		bins[index-1] = Point{Value: value, Count: count}
		bins = append(bins[:index], bins[index+1:]...)
	}
	return bins
}
