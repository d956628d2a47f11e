package ensemble

import (
	"math"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/model"
	"github.com/pbanos/grove/tree"
)

/*
Vote is the prediction of one of the models of an ensemble for an input.
Numeric attributes the model did not provide are NaN.

Order is the arrival index of the vote in its MultiVote. It only breaks
ties between categories and never weights a vote.
*/
type Vote struct {
	Prediction   field.Value
	Confidence   float64
	Probability  float64
	Distribution tree.Distribution
	Count        int
	Median       float64
	Min          float64
	Max          float64
	Order        int
}

// NewVote returns a vote for the given prediction with every other
// attribute absent
func NewVote(prediction field.Value) Vote {
	nan := math.NaN()
	return Vote{
		Prediction:  prediction,
		Confidence:  nan,
		Probability: nan,
		Median:      nan,
		Min:         nan,
		Max:         nan,
	}
}

// VoteFromResult turns the result of a model prediction into a vote
func VoteFromResult(r *model.Result) Vote {
	v := NewVote(r.Prediction)
	v.Confidence = valueOr(r.Confidence)
	v.Probability = valueOr(r.Probability)
	v.Median = valueOr(r.Median)
	v.Min = valueOr(r.Min)
	v.Max = valueOr(r.Max)
	v.Distribution = r.Distribution
	if r.Count != nil {
		v.Count = *r.Count
	}
	for _, a := range r.Alternatives {
		if a.Prediction.Equal(r.Prediction) {
			v.Probability = valueOr(a.Probability)
			break
		}
	}
	return v
}

// HasConfidence returns whether the vote carries a confidence
func (v Vote) HasConfidence() bool {
	return !math.IsNaN(v.Confidence)
}

func (v Vote) total() int {
	if v.Count > 0 {
		return v.Count
	}
	return v.Distribution.Total()
}

func valueOr(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}
