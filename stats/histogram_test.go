package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeDistributions(t *testing.T) {
	a := Histogram{{1, 2}, {3, 1}}
	b := Histogram{{2, 4}, {3, 5}, {0.5, 1}}

	merged := MergeDistributions(a, b)
	assert.Equal(t, Histogram{{0.5, 1}, {1, 2}, {2, 4}, {3, 6}}, merged)
	assert.Equal(t, a.Total()+b.Total(), merged.Total())
	assert.Equal(t, merged, MergeDistributions(b, a), "merging should be commutative")
}

func TestMergeDistributionsWithEmpty(t *testing.T) {
	d := Histogram{{3, 1}, {1, 2}}
	assert.Equal(t, d, MergeDistributions(d, nil))
	assert.Equal(t, d, MergeDistributions(Histogram{}, d))

	merged := MergeDistributions(d, nil)
	merged[0].Count = 100
	assert.Equal(t, 1, d[0].Count, "merge result should not share memory with its input")
}

func TestMergeBins(t *testing.T) {
	h := Histogram{{1, 1}, {2, 1}, {4, 2}, {5, 1}, {10, 3}, {11, 1}, {20, 2}, {30, 1}}

	bins := MergeBins(h, 4)
	require.Len(t, bins, 4)
	assert.Equal(t, h.Total(), bins.Total())
	expected := Histogram{{3.2, 5}, {10.25, 4}, {20, 2}, {30, 1}}
	for i := range expected {
		assert.InDelta(t, expected[i].Value, bins[i].Value, 1e-9)
		assert.Equal(t, expected[i].Count, bins[i].Count)
	}
	for i := 1; i < len(bins); i++ {
		assert.True(t, bins[i-1].Value < bins[i].Value, "bins should stay sorted by value")
	}
	assert.Len(t, h, 8, "input histogram should not be modified")
}

func TestMergeBinsWithinLimit(t *testing.T) {
	h := Histogram{{1, 1}, {2, 1}}
	assert.Equal(t, h, MergeBins(h, 2))
	assert.Equal(t, h, MergeBins(h, 0))
}

func TestMergeBinsBreaksTiesOnLowestIndex(t *testing.T) {
	bins := MergeBins(Histogram{{0, 1}, {1, 1}, {2, 1}}, 2)
	assert.Equal(t, Histogram{{0.5, 2}, {2, 1}}, bins)
}

func TestMergeBinsLimitProperty(t *testing.T) {
	h := Histogram{}
	for i := 0; i < 100; i++ {
		h = append(h, Point{Value: float64(i*i%37) + float64(i)/100, Count: i%5 + 1})
	}
	for _, limit := range []int{1, 2, 7, 32, 99, 150} {
		bins := MergeBins(h, limit)
		assert.True(t, len(bins) <= limit, "limit %d: got %d bins", limit, len(bins))
		assert.Equal(t, h.Total(), bins.Total(), "limit %d", limit)
	}
}
