package tree

import (
	"github.com/pbanos/grove/field"
	"github.com/pkg/errors"
)

// Strategy selects how a tree handles input records missing the value of
// a split field
type Strategy int

const (
	// LastPrediction stops at the last node whose predicate was satisfied
	// and uses its prediction
	LastPrediction Strategy = iota
	// Proportional follows every branch of a split on a missing field and
	// merges the distributions of the nodes reached
	Proportional
)

var strategyNames = map[Strategy]string{
	LastPrediction: "last_prediction",
	Proportional:   "proportional",
}

// ParseStrategy takes the name of a strategy (last_prediction or
// proportional) and returns the Strategy
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return LastPrediction, errors.Wrapf(ErrUnknownStrategy, "%q", name)
}

func (s Strategy) String() string {
	return strategyNames[s]
}

/*
Prediction represents a prediction made by a decision Tree: the
predicted value along with its confidence, the instances it is based on
and the rules of the path followed to reach it.
*/
type Prediction struct {
	Output     field.Value
	Confidence float64
	Count      int
	// Median, Min and Max are NaN for categorical predictions
	Median           float64
	Min              float64
	Max              float64
	Distribution     Distribution
	DistributionUnit DistributionUnit
	// Path holds the rules of the predicates satisfied from the root
	Path []string
	// Children holds the children of the last node reached on a unique
	// path
	Children []*Node
}

// NextField returns the id of the field that the children of the last
// node reached split on, and whether there is one
func (p *Prediction) NextField() (string, bool) {
	for _, c := range p.Children {
		if c.Predicate != nil && !c.Predicate.IsTrue() {
			return c.Predicate.FieldID, true
		}
	}
	return "", false
}
