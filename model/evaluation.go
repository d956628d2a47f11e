package model

import (
	"context"
	"math"

	"github.com/pbanos/grove/dataset"
	"github.com/pbanos/grove/field"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

/*
Evaluation summarizes the performance of a model over a dataset: the
accuracy of a classification model or the mean absolute error of a
regression model, over the samples that could be scored. Samples
without a value for the objective field, or with values the model
cannot take, are counted as unscored.
*/
type Evaluation struct {
	Regression        bool    `json:"regression"`
	Samples           int     `json:"samples"`
	Scored            int     `json:"scored"`
	Unscored          int     `json:"unscored"`
	Accuracy          float64 `json:"accuracy"`
	MeanAbsoluteError float64 `json:"mean_absolute_error"`
}

/*
Test takes a context, a dataset and the options to predict with and
returns the Evaluation of the model over the samples of the dataset. An
error is returned if the samples cannot be retrieved or a prediction
fails for reasons other than the sample itself.
*/
func (m *Model) Test(ctx context.Context, d dataset.Dataset, opts Options) (*Evaluation, error) {
	samples, err := d.Samples(ctx)
	if err != nil {
		return nil, err
	}
	e := &Evaluation{Regression: m.Regression(), Samples: len(samples)}
	var hits, absErrors float64
	for i, s := range samples {
		actual, ok := m.objectiveValue(s, opts.ByName)
		if !ok {
			e.Unscored++
			continue
		}
		r, err := m.Predict(ctx, s, opts)
		if err != nil {
			cause := errors.Cause(err)
			if cause != field.ErrTypeMismatch && cause != ErrMissingNumeric {
				return nil, errors.Wrapf(err, "sample %d", i)
			}
			log.Debug().Err(err).Int("sample", i).Msg("sample not scored")
			e.Unscored++
			continue
		}
		if e.Regression {
			expected, err := cast.ToFloat64E(actual)
			predicted, ok := r.Prediction.Number()
			if err != nil || !ok {
				e.Unscored++
				continue
			}
			absErrors += math.Abs(expected - predicted)
		} else {
			expected, err := cast.ToStringE(actual)
			if err != nil {
				e.Unscored++
				continue
			}
			if expected == r.Prediction.String() {
				hits++
			}
		}
		e.Scored++
	}
	if e.Scored > 0 {
		e.Accuracy = hits / float64(e.Scored)
		e.MeanAbsoluteError = absErrors / float64(e.Scored)
	}
	if e.Regression {
		e.Accuracy = 0
	} else {
		e.MeanAbsoluteError = 0
	}
	return e, nil
}

func (m *Model) objectiveValue(s dataset.Sample, byName bool) (interface{}, bool) {
	id := m.ObjectiveID()
	keys := []string{id}
	if byName {
		keys = []string{m.view.Name(id)}
		if f, ok := m.view.Field(id); ok {
			keys = append(keys, f.Name)
		}
	}
	for _, k := range keys {
		if v, ok := s.Value(k); ok && !m.view.IsMissing(v) {
			return v, true
		}
	}
	return nil, false
}
