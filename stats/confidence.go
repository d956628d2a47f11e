package stats

import "math"

// DefaultZ is the standard score used for 95% confidence bounds.
const DefaultZ = 1.96

/*
WilsonScore returns the lower bound of the Wilson score interval for a
proportion p observed on n trials at standard score z:

	(p + z²/2n - z·sqrt((p(1-p) + z²/4n)/n)) / (1 + z²/n)

NaN is returned when n is not positive.
*/
func WilsonScore(p, n, z float64) float64 {
	if n <= 0 || math.IsNaN(p) {
		return math.NaN()
	}
	z2 := z * z
	factor := z2 / n
	root := math.Sqrt((p*(1-p) + factor/4) / n)
	return (p + factor/2 - z*root) / (1 + factor)
}

// WSConfidence returns the Wilson score lower bound, at DefaultZ,
// of count successes out of total trials.
func WSConfidence(count, total float64) float64 {
	if total <= 0 {
		return math.NaN()
	}
	return WilsonScore(count/total, total, DefaultZ)
}

/*
RegressionError takes the sample variance of a set of predicted values
and the number of instances it was computed on and returns the error
bound for the prediction at standard score z. It returns NaN when there
are no instances or the chi-squared quantile degenerates to zero.
*/
func RegressionError(variance float64, instances int, z float64) float64 {
	if instances <= 0 {
		return math.NaN()
	}
	ppf := Chi2PPF(Erf(z), instances)
	if ppf == 0 {
		return math.NaN()
	}
	n := float64(instances)
	bound := variance * (n - 1) / ppf * math.Pow(math.Sqrt(n)+z, 2)
	return math.Sqrt(bound / n)
}
