package tree

import (
	"encoding/json"
	"sort"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/stats"
	"github.com/pkg/errors"
)

// DistributionUnit tags what the entries of a distribution stand for
type DistributionUnit string

const (
	// Counts are exact values of a regression objective with their counts
	Counts DistributionUnit = "counts"
	// Bins are collapsed ranges of a regression objective, each
	// represented by its mean value
	Bins DistributionUnit = "bins"
	// Categories are the classes of a categorical objective
	Categories DistributionUnit = "categories"
)

// Bin is an entry of a Distribution: a value and its instance count
type Bin struct {
	Value field.Value
	Count int
}

// Distribution is an ordered table of values and their instance counts
type Distribution []Bin

// Total returns the sum of the counts in the distribution
func (d Distribution) Total() int {
	var total int
	for _, b := range d {
		total += b.Count
	}
	return total
}

// Clone returns a copy of the distribution
func (d Distribution) Clone() Distribution {
	if d == nil {
		return nil
	}
	c := make(Distribution, len(d))
	copy(c, d)
	return c
}

// IsNumeric returns whether the distribution is not empty and all its
// values are numbers
func (d Distribution) IsNumeric() bool {
	for _, b := range d {
		if b.Value.Kind() != field.Number {
			return false
		}
	}
	return len(d) > 0
}

// Check returns ErrMixedDistribution if the distribution holds both
// numeric and non-numeric values
func (d Distribution) Check() error {
	var numbers int
	for _, b := range d {
		if b.Value.Kind() == field.Number {
			numbers++
		}
	}
	if numbers > 0 && numbers < len(d) {
		return ErrMixedDistribution
	}
	return nil
}

// Histogram returns the numeric distribution as a stats.Histogram
func (d Distribution) Histogram() (stats.Histogram, error) {
	h := make(stats.Histogram, 0, len(d))
	for _, b := range d {
		n, ok := b.Value.Number()
		if !ok {
			return nil, errors.Wrapf(ErrMixedDistribution, "non-numeric value %v", b.Value)
		}
		h = append(h, stats.Point{Value: n, Count: b.Count})
	}
	return h, nil
}

// FromHistogram returns the distribution for the given histogram
func FromHistogram(h stats.Histogram) Distribution {
	d := make(Distribution, 0, len(h))
	for _, p := range h {
		d = append(d, Bin{Value: field.NumberValue(p.Value), Count: p.Count})
	}
	return d
}

// Count returns the count for the given value in the distribution
func (d Distribution) Count(v field.Value) int {
	for _, b := range d {
		if b.Value.Equal(v) {
			return b.Count
		}
	}
	return 0
}

/*
MergeDistributions takes two distributions and returns a new one with
the counts of both. When one of them is empty, a copy of the other is
returned. Numeric distributions are merged with stats.MergeDistributions
into a value-sorted table. Categorical distributions keep the order in
which categories first appear in a and then in b, summing the counts of
equal categories. Merging a numeric distribution with a categorical one
returns ErrMixedDistribution.
*/
func MergeDistributions(a, b Distribution) (Distribution, error) {
	if len(b) == 0 {
		return a.Clone(), nil
	}
	if len(a) == 0 {
		return b.Clone(), nil
	}
	if err := a.Check(); err != nil {
		return nil, err
	}
	if err := b.Check(); err != nil {
		return nil, err
	}
	if a.IsNumeric() != b.IsNumeric() {
		return nil, ErrMixedDistribution
	}
	if a.IsNumeric() {
		ha, _ := a.Histogram()
		hb, _ := b.Histogram()
		return FromHistogram(stats.MergeDistributions(ha, hb)), nil
	}
	result := a.Clone()
	for _, bb := range b {
		found := false
		for i := range result {
			if result[i].Value.Equal(bb.Value) {
				result[i].Count += bb.Count
				found = true
				break
			}
		}
		if !found {
			result = append(result, bb)
		}
	}
	return result, nil
}

// SortByCount returns a copy of the distribution sorted by count in
// descending order, with ties sorted by value in ascending order
func (d Distribution) SortByCount() Distribution {
	c := d.Clone()
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].Count != c[j].Count {
			return c[i].Count > c[j].Count
		}
		return c[i].Value.Less(c[j].Value)
	})
	return c
}

// Gini returns the gini impurity of the distribution relative to the
// given instance count: (1 - sum((c/count)^2)) / 2
func (d Distribution) Gini(count int) float64 {
	if len(d) == 0 || count <= 0 {
		return nan
	}
	var purity float64
	for _, b := range d {
		p := float64(b.Count) / float64(count)
		purity += p * p
	}
	return (1 - purity) / 2
}

// MarshalJSON encodes the distribution as a list of [value, count] pairs
func (d Distribution) MarshalJSON() ([]byte, error) {
	pairs := make([][2]interface{}, len(d))
	for i, b := range d {
		pairs[i] = [2]interface{}{b.Value, b.Count}
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes a list of [value, count] pairs
func (d *Distribution) UnmarshalJSON(data []byte) error {
	var raw [][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	result := make(Distribution, 0, len(raw))
	for _, r := range raw {
		if len(r) != 2 {
			return errors.Wrapf(ErrMalformedTree, "distribution entry with %d elements", len(r))
		}
		var b Bin
		var count float64
		if err := json.Unmarshal(r[0], &b.Value); err != nil {
			return err
		}
		if err := json.Unmarshal(r[1], &count); err != nil {
			return err
		}
		b.Count = int(count)
		result = append(result, b)
	}
	*d = result
	return nil
}
