package stats

import "math"

const chi2Tolerance = 1e-15

/*
Erf returns the error function of x using the Abramowitz and Stegun
approximation 7.1.26, whose maximum error is 1.5e-7. The approximation is
used instead of math.Erf so that derived confidences match the values
computed by the service that trained the models.
*/
func Erf(x float64) float64 {
	if x < 0 {
		return -Erf(-x)
	}
	t := 1 / (1 + 0.3275911*x)
	c := 0.254829592*t -
		0.284496736*math.Pow(t, 2) +
		1.421413741*math.Pow(t, 3) -
		1.453152027*math.Pow(t, 4) +
		1.061405429*math.Pow(t, 5)
	return 1 - c*math.Exp(-x*x)
}

// Norm returns the two-tailed probability of a standard normal
// deviate being further than z from the mean.
func Norm(z float64) float64 {
	q := z * z
	if math.Abs(z) > 7 {
		c := 1 - 1/q + 3/(q*q)
		return c * math.Exp(-q/2) / (math.Abs(z) * math.Sqrt(math.Pi/2))
	}
	return Chi2(q, 1)
}

/*
Chi2 returns the upper tail probability of the chi-squared distribution
with n degrees of freedom at x. Beyond 1000 (for either x or n) the
Wilson-Hilferty normal approximation is used, otherwise the power series
of the regularized incomplete gamma function is summed until its terms
drop below 1e-15 relative to the partial sum.
*/
func Chi2(x float64, n int) float64 {
	if x > 1000 || n > 1000 {
		fn := float64(n)
		c := math.Pow(x/fn, 1.0/3) + 2/(9*fn) - 1
		q := Norm(c/math.Sqrt(2/(9*fn))) / 2
		if x > fn {
			return q
		}
		return 1 - q
	}
	p := math.Exp(-0.5 * x)
	if n%2 == 1 {
		p *= math.Sqrt(2 * x / math.Pi)
	}
	for k := n; k >= 2; k -= 2 {
		p *= x / float64(k)
	}
	t := p
	for a := n; t > chi2Tolerance*p; {
		a += 2
		t *= x / float64(a)
		p += t
	}
	return 1 - p
}

/*
Chi2PPF returns the quantile of probability p of the chi-squared
distribution with n degrees of freedom. It bisects on v in (0, 1), with
x = 1/v - 1, until the step falls under 1e-15 (about 50 iterations).
*/
func Chi2PPF(p float64, n int) float64 {
	upper := 1 - p
	v, dv := 0.5, 0.5
	var x float64
	for dv > chi2Tolerance {
		x = 1/v - 1
		dv /= 2
		if Chi2(x, n) > upper {
			v -= dv
		} else {
			v += dv
		}
	}
	return x
}
