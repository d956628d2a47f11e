package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

func valuesAndWeights(h Histogram) ([]float64, []float64) {
	values := make([]float64, len(h))
	weights := make([]float64, len(h))
	for i, p := range h {
		values[i] = p.Value
		weights[i] = float64(p.Count)
	}
	return values, weights
}

// Mean returns the count-weighted mean of the histogram values,
// or NaN if the histogram holds no instances.
func Mean(h Histogram) float64 {
	if h.Total() == 0 {
		return math.NaN()
	}
	return stat.Mean(valuesAndWeights(h))
}

// Variance returns the count-weighted population variance of the
// histogram values, or NaN if the histogram holds no instances.
func Variance(h Histogram) float64 {
	if h.Total() == 0 {
		return math.NaN()
	}
	_, variance := stat.PopMeanVariance(valuesAndWeights(h))
	return variance
}

// SampleVariance returns the unbiased count-weighted variance of
// the histogram values, NaN when it holds less than two instances.
func SampleVariance(h Histogram) float64 {
	n := h.Total()
	if n < 2 {
		return math.NaN()
	}
	return Variance(h) * float64(n) / float64(n-1)
}

/*
Median takes a histogram sorted by value and the number of instances it
represents and returns the median value. The cumulative count is walked
until it goes past half the instances; when the number of instances is
even and the middle falls exactly between two points, their values are
averaged. NaN is returned for empty histograms.
*/
func Median(h Histogram, instances int) float64 {
	var count int
	previous := math.NaN()
	half := float64(instances) / 2
	for _, p := range h {
		count += p.Count
		if float64(count) > half {
			if instances%2 == 0 && float64(count-p.Count) == half && !math.IsNaN(previous) {
				return (p.Value + previous) / 2
			}
			return p.Value
		}
		previous = p.Value
	}
	return math.NaN()
}
