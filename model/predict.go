package model

import (
	"context"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/stats"
	"github.com/pbanos/grove/tree"
	"github.com/pkg/errors"
)

/*
Predict takes a context, an input record keyed by field id (or name when
opts.ByName is set) and the options shaping the result, and returns the
prediction of the model for the input.

An ErrTypeMismatch error is returned when an input value does not fit
its field, and ErrMissingNumeric when the model requires a numeric
field the input lacks.
*/
func (m *Model) Predict(ctx context.Context, input map[string]interface{}, opts Options) (*Result, error) {
	in, err := m.view.Filter(input, opts.ByName)
	if err != nil {
		return nil, err
	}
	return m.PredictInput(ctx, in, opts)
}

// PredictInput is like Predict for an input already normalized by the
// model's view
func (m *Model) PredictInput(ctx context.Context, in field.Input, opts Options) (*Result, error) {
	for _, id := range m.requiredNumerics {
		if _, ok := in[id]; !ok {
			return nil, errors.Wrapf(ErrMissingNumeric, "field %s (%s)", id, m.view.Name(id))
		}
	}
	p, err := m.tree.Predict(ctx, in, opts.Strategy)
	if err != nil {
		return nil, errors.Wrapf(err, "predicting with %s", m.ID)
	}
	if opts.Multiple != 0 && !m.Regression() {
		return m.multiple(p, opts), nil
	}
	return m.result(p, opts), nil
}

func (m *Model) result(p *tree.Prediction, opts Options) *Result {
	r := &Result{Prediction: p.Output}
	if opts.AddConfidence {
		r.Confidence = float(p.Confidence)
	}
	if opts.AddPath {
		r.Path = p.Path
	}
	if opts.AddDistribution {
		r.Distribution = p.Distribution
		r.DistributionUnit = p.DistributionUnit
	}
	if opts.AddCount {
		count := p.Count
		r.Count = &count
	}
	if opts.AddNext {
		next := ""
		if id, ok := p.NextField(); ok {
			next = m.view.Name(id)
		}
		r.Next = &next
	}
	if m.Regression() {
		if opts.AddMedian {
			r.Median = float(p.Median)
		}
		if opts.AddMin {
			r.Min = float(p.Min)
		}
		if opts.AddMax {
			r.Max = float(p.Max)
		}
	}
	return r
}

// multiple returns the result along with the most popular categories of
// the prediction's distribution as alternatives, each with its own
// confidence, probability and count
func (m *Model) multiple(p *tree.Prediction, opts Options) *Result {
	d := p.Distribution.SortByCount()
	total := d.Total()
	k := opts.Multiple
	if k < 0 || k > len(d) {
		k = len(d)
	}
	r := m.result(p, opts)
	r.Alternatives = make([]Result, 0, k)
	for _, b := range d[:k] {
		count := b.Count
		r.Alternatives = append(r.Alternatives, Result{
			Prediction:  b.Value,
			Confidence:  float(stats.WSConfidence(float64(b.Count), float64(total))),
			Probability: float(float64(b.Count) / float64(total)),
			Count:       &count,
		})
	}
	return r
}
