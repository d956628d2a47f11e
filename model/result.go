package model

import (
	"encoding/json"
	"math"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/tree"
)

// MultipleAll requests every category of the distribution as an
// alternative
const MultipleAll = -1

/*
Options shape a prediction:
  - ByName: the input is keyed by field names instead of field ids
  - Strategy: how to handle inputs missing the value of a split field
  - Multiple: for categorical models, how many of the categories of the
    distribution to return as alternatives, MultipleAll for all of them
  - Add*: which optional attributes to include in the result. Median,
    Min and Max are only included for regression models.
*/
type Options struct {
	ByName          bool
	Strategy        tree.Strategy
	Multiple        int
	AddConfidence   bool
	AddPath         bool
	AddDistribution bool
	AddCount        bool
	AddMedian       bool
	AddMin          bool
	AddMax          bool
	AddNext         bool
}

/*
Result is the prediction of a model for an input. Optional attributes
are nil unless requested through Options.
*/
type Result struct {
	Prediction       field.Value           `json:"prediction"`
	Confidence       *float64              `json:"confidence,omitempty"`
	Probability      *float64              `json:"probability,omitempty"`
	Path             []string              `json:"path,omitempty"`
	Distribution     tree.Distribution     `json:"distribution,omitempty"`
	DistributionUnit tree.DistributionUnit `json:"distribution_unit,omitempty"`
	Count            *int                  `json:"count,omitempty"`
	Median           *float64              `json:"median,omitempty"`
	Min              *float64              `json:"min,omitempty"`
	Max              *float64              `json:"max,omitempty"`
	Next             *string               `json:"next,omitempty"`
	Alternatives     []Result              `json:"multiple,omitempty"`
}

type jsonResult Result

// MarshalJSON encodes the result, with NaN numbers encoded as null
func (r Result) MarshalJSON() ([]byte, error) {
	jr := jsonResult(r)
	jr.Confidence = nullable(jr.Confidence)
	jr.Probability = nullable(jr.Probability)
	jr.Median = nullable(jr.Median)
	jr.Min = nullable(jr.Min)
	jr.Max = nullable(jr.Max)
	if n, ok := jr.Prediction.Number(); ok && (math.IsNaN(n) || math.IsInf(n, 0)) {
		jr.Prediction = field.NullValue()
	}
	return json.Marshal(jr)
}

func nullable(f *float64) *float64 {
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return nil
	}
	return f
}

func float(f float64) *float64 {
	return &f
}
