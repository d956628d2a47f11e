package ensemble

import (
	"math"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/model"
	"github.com/pbanos/grove/stats"
	"github.com/pbanos/grove/tree"
)

// topRange is the upper bound of the range confidences are scaled to
// when weighting regression votes by their error
const topRange = 10.0

func (mv *MultiVote) combineRegression(opts CombineOptions) (*model.Result, error) {
	weighted := opts.Method == ConfidenceWeighted
	weights := make([]float64, len(mv.votes))
	for i := range weights {
		weights[i] = 1
	}
	if weighted {
		weights = errorWeights(mv.votes)
	}
	r := &model.Result{
		Prediction: field.NumberValue(weightedMean(mv.votes, weights, func(v Vote) float64 {
			n, _ := v.Prediction.Number()
			return n
		})),
	}
	if opts.AddConfidence {
		c := weightedMean(mv.votes, weights, func(v Vote) float64 { return confidenceOrZero(v) })
		r.Confidence = &c
	}
	if opts.AddMedian {
		m := weightedMean(mv.votes, weights, func(v Vote) float64 { return v.Median })
		r.Median = &m
	}
	if opts.AddMin {
		m := weightedMean(mv.votes, weights, func(v Vote) float64 { return v.Min })
		if weighted {
			m = extreme(mv.votes, func(v Vote) float64 { return v.Min }, math.Min)
		}
		r.Min = &m
	}
	if opts.AddMax {
		m := weightedMean(mv.votes, weights, func(v Vote) float64 { return v.Max })
		if weighted {
			m = extreme(mv.votes, func(v Vote) float64 { return v.Max }, math.Max)
		}
		r.Max = &m
	}
	if opts.AddCount {
		count := mv.count()
		r.Count = &count
	}
	if opts.AddDistribution {
		d, unit, err := groupedDistribution(mv.votes)
		if err != nil {
			return nil, err
		}
		r.Distribution = d
		r.DistributionUnit = unit
	}
	return r, nil
}

/*
errorWeights shifts and scales the confidences (errors) of the votes to
[0, topRange] and returns e^-scaled for each of them, so that the vote
with the smallest error weighs 1. All votes weigh 1 when their errors
are equal. Votes without confidence count as having no error.
*/
func errorWeights(votes []Vote) []float64 {
	minError, maxError := math.Inf(1), math.Inf(-1)
	for _, v := range votes {
		e := confidenceOrZero(v)
		minError = math.Min(minError, e)
		maxError = math.Max(maxError, e)
	}
	errorRange := maxError - minError
	weights := make([]float64, len(votes))
	for i, v := range votes {
		weights[i] = 1
		if errorRange > 0 {
			weights[i] = math.Exp((minError - confidenceOrZero(v)) / errorRange * topRange)
		}
	}
	return weights
}

func weightedMean(votes []Vote, weights []float64, value func(Vote) float64) float64 {
	var sum, norm float64
	for i, v := range votes {
		sum += value(v) * weights[i]
		norm += weights[i]
	}
	if norm == 0 {
		return math.NaN()
	}
	return sum / norm
}

// extreme folds the values of the votes with f (math.Min or math.Max)
// skipping NaNs, NaN if every value is
func extreme(votes []Vote, value func(Vote) float64, f func(float64, float64) float64) float64 {
	result := math.NaN()
	for _, v := range votes {
		x := value(v)
		switch {
		case math.IsNaN(x):
		case math.IsNaN(result):
			result = x
		default:
			result = f(result, x)
		}
	}
	return result
}

// groupedDistribution merges the distributions of the votes collapsing
// them to at most tree.BinsLimit bins
func groupedDistribution(votes []Vote) (tree.Distribution, tree.DistributionUnit, error) {
	unit := tree.Counts
	var grouped tree.Distribution
	for _, v := range votes {
		merged, err := tree.MergeDistributions(grouped, v.Distribution)
		if err != nil {
			return nil, "", err
		}
		if len(merged) > tree.BinsLimit {
			unit = tree.Bins
		}
		h, err := merged.Histogram()
		if err != nil {
			return nil, "", err
		}
		grouped = tree.FromHistogram(stats.MergeBins(h, tree.BinsLimit))
	}
	return grouped, unit, nil
}

func confidenceOrZero(v Vote) float64 {
	if v.HasConfidence() {
		return v.Confidence
	}
	return 0
}
