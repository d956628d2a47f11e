package ensemble

import "github.com/pkg/errors"

// Method selects how the votes of a MultiVote are weighted when
// combining them
type Method int

const (
	// Plurality gives every vote the same weight
	Plurality Method = iota
	// ConfidenceWeighted weights categorical votes by their confidence
	// and regression votes by their normalized error
	ConfidenceWeighted
	// ProbabilityWeighted splits every categorical vote into one vote per
	// category of its distribution, weighted by its probability
	ProbabilityWeighted
	// Threshold predicts a category when at least a number of votes
	// predict it, and the plurality of the rest of the votes otherwise
	Threshold
)

var methodNames = []string{"plurality", "confidence", "probability", "threshold"}

// ParseMethod takes the name of a combination method and returns the
// Method
func ParseMethod(name string) (Method, error) {
	for i, n := range methodNames {
		if n == name {
			return Method(i), nil
		}
	}
	return Plurality, errors.Wrapf(ErrUnknownMethod, "%q", name)
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "unknown"
	}
	return methodNames[m]
}

/*
CombineOptions configure the combination of a MultiVote: the method,
the category and number of votes for the Threshold method, and which
optional attributes to add to the result. Median, Min and Max only apply
to regressions.
*/
type CombineOptions struct {
	Method            Method
	ThresholdK        int
	ThresholdCategory string
	AddConfidence     bool
	AddDistribution   bool
	AddCount          bool
	AddMedian         bool
	AddMin            bool
	AddMax            bool
}
