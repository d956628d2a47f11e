package tree

import (
	"context"
	"math"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/stats"
)

// BinsLimit is the maximum number of entries of a regression
// distribution merged by the proportional strategy
const BinsLimit = 32

// Predict takes a context, a normalized input record and a strategy and
// returns the prediction of the tree for the input or an error if a
// predicate cannot be evaluated or the context is done.
func (t *Tree) Predict(ctx context.Context, input field.Input, strategy Strategy) (*Prediction, error) {
	if strategy == Proportional {
		return t.predictProportional(ctx, input)
	}
	i, path, err := t.descend(ctx, input)
	if err != nil {
		return nil, err
	}
	return t.nodePrediction(&t.nodes[i], path), nil
}

// descend follows the first satisfied child from the root until no child
// is satisfied and returns the index of the node reached and the rules
// of the path followed
func (t *Tree) descend(ctx context.Context, input field.Input) (int, []string, error) {
	i := 0
	path := []string{}
	for {
		if err := ctx.Err(); err != nil {
			return 0, nil, err
		}
		next, err := t.firstSatisfied(&t.nodes[i], input)
		if err != nil {
			return 0, nil, err
		}
		if next < 0 {
			return i, path, nil
		}
		path = append(path, t.nodes[next].Predicate.Rule(t.view))
		i = next
	}
}

func (t *Tree) firstSatisfied(n *Node, input field.Input) (int, error) {
	for _, c := range n.Children {
		ok, err := t.nodes[c].Predicate.Apply(input, t.view)
		if err != nil {
			return -1, err
		}
		if ok {
			return c, nil
		}
	}
	return -1, nil
}

func (t *Tree) nodePrediction(n *Node, path []string) *Prediction {
	p := &Prediction{
		Output:           n.Output,
		Confidence:       n.Confidence,
		Count:            n.Instances(),
		Median:           nan,
		Min:              nan,
		Max:              nan,
		Distribution:     n.Distribution.Clone(),
		DistributionUnit: n.DistributionUnit,
		Path:             path,
		Children:         t.Children(n),
	}
	if n.Regression {
		p.Median, p.Min, p.Max = n.Median, n.Min, n.Max
	}
	return p
}

// proportional holds the result of walking a subtree with the
// proportional strategy
type proportional struct {
	distribution Distribution
	min          float64
	max          float64
	last         int
	merged       bool
}

func (t *Tree) predictProportional(ctx context.Context, input field.Input) (*Prediction, error) {
	path := []string{}
	r, err := t.proportional(ctx, 0, input, &path, false)
	if err != nil {
		return nil, err
	}
	last := &t.nodes[r.last]
	if !r.merged {
		return t.nodePrediction(last, path), nil
	}
	if t.Regression() {
		return t.regressionPrediction(last, r, path)
	}
	d := r.distribution.SortByCount()
	p := &Prediction{
		Confidence:       nan,
		Count:            d.Total(),
		Median:           nan,
		Min:              nan,
		Max:              nan,
		Distribution:     d,
		DistributionUnit: Categories,
		Path:             path,
		Children:         t.Children(last),
	}
	if len(d) > 0 {
		p.Output = d[0].Value
		p.Confidence = stats.WSConfidence(float64(d[0].Count), float64(p.Count))
	}
	return p, nil
}

func (t *Tree) regressionPrediction(last *Node, r *proportional, path []string) (*Prediction, error) {
	if len(r.distribution) == 1 && r.distribution[0].Count == 1 {
		return t.nodePrediction(last, path), nil
	}
	h, err := r.distribution.Histogram()
	if err != nil {
		return nil, err
	}
	h = h.Sorted()
	unit := Counts
	if len(h) > BinsLimit {
		unit = Bins
	}
	h = stats.MergeBins(h, BinsLimit)
	total := h.Total()
	p := &Prediction{
		Count:            total,
		Median:           stats.Median(h, total),
		Min:              r.min,
		Max:              r.max,
		Distribution:     FromHistogram(h),
		DistributionUnit: unit,
		Path:             path,
		Children:         t.Children(last),
	}
	if len(h) == 1 {
		p.Output = field.NumberValue(h[0].Value)
		p.Confidence = last.Confidence * math.Sqrt(float64(total))
		return p, nil
	}
	p.Output = field.NumberValue(stats.Mean(h))
	p.Confidence = stats.RegressionError(stats.SampleVariance(h), total, stats.DefaultZ)
	return p, nil
}

/*
proportional walks the subtree at index i. While the split field of a
node is present in the input (or the split has a branch for missing or
null values) it follows the satisfied child, recording its rule unless
a merge already started upstream or the rule is already in the path.
Otherwise every child is walked and their distributions merged.
*/
func (t *Tree) proportional(ctx context.Context, i int, input field.Input, path *[]string, missingFound bool) (*proportional, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := &t.nodes[i]
	own := &proportional{distribution: n.Distribution, min: n.Min, max: n.Max, last: i}
	if n.IsLeaf() {
		return own, nil
	}
	if t.oneBranch(n, input) {
		next, err := t.firstSatisfied(n, input)
		if err != nil {
			return nil, err
		}
		if next < 0 {
			return own, nil
		}
		rule := t.nodes[next].Predicate.Rule(t.view)
		if !missingFound && !contains(*path, rule) {
			*path = append(*path, rule)
		}
		return t.proportional(ctx, next, input, path, missingFound)
	}
	result := &proportional{min: nan, max: nan, last: i, merged: true}
	for _, c := range n.Children {
		r, err := t.proportional(ctx, c, input, path, true)
		if err != nil {
			return nil, err
		}
		if result.distribution, err = MergeDistributions(result.distribution, r.distribution); err != nil {
			return nil, err
		}
		result.min = nanMin(result.min, r.min)
		result.max = nanMax(result.max, r.max)
	}
	return result, nil
}

// oneBranch returns whether a single child of n can be followed: the
// field its children split on is present in the input, or a child has a
// predicate for missing or null values
func (t *Tree) oneBranch(n *Node, input field.Input) bool {
	var split string
	var single = true
	for _, c := range n.Children {
		p := t.nodes[c].Predicate
		if p.Missing || (!p.IsTrue() && p.Value.IsNull()) {
			return true
		}
		if p.IsTrue() {
			continue
		}
		if split == "" {
			split = p.FieldID
		} else if split != p.FieldID {
			single = false
		}
	}
	if !single || split == "" {
		return false
	}
	_, ok := input[split]
	return ok
}

func contains(ss []string, s string) bool {
	for _, e := range ss {
		if e == s {
			return true
		}
	}
	return false
}

func nanMin(a, b float64) float64 {
	if math.IsNaN(a) || b < a {
		return b
	}
	return a
}

func nanMax(a, b float64) float64 {
	if math.IsNaN(a) || b > a {
		return b
	}
	return a
}
