/*
Package ensemble combines the predictions of several decision tree
models. Every model of an Ensemble votes for an input and the votes are
aggregated by a MultiVote with the chosen combination Method.
*/
package ensemble

import (
	"context"
	"runtime"
	"sort"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/model"
	"github.com/pbanos/grove/tree"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

/*
Ensemble is a set of models predicting the same objective. Its models
are evaluated concurrently by at most a number of workers, which
defaults to the number of CPUs.
*/
type Ensemble struct {
	ID         string
	models     []*model.Model
	importance []model.Importance
	workers    int
}

// Option configures an Ensemble
type Option func(*Ensemble)

// WithWorkers sets the maximum number of models evaluated at the same
// time, ignoring values lower than 1
func WithWorkers(n int) Option {
	return func(e *Ensemble) {
		if n > 0 {
			e.workers = n
		}
	}
}

/*
New takes the models of an ensemble and returns the Ensemble, or an
error if there are no models or they do not all predict the same kind of
objective. The field importance of the ensemble is the sum of the
importance of the models.
*/
func New(models []*model.Model, opts ...Option) (*Ensemble, error) {
	if len(models) == 0 {
		return nil, ErrNoModels
	}
	for _, m := range models[1:] {
		if m.Regression() != models[0].Regression() {
			return nil, errors.Wrapf(ErrMixedObjectives, "%s and %s", models[0].ID, m.ID)
		}
	}
	e := &Ensemble{models: models, workers: runtime.NumCPU()}
	for _, o := range opts {
		o(e)
	}
	var entries [][]model.Importance
	for _, m := range models {
		entries = append(entries, m.Importance())
	}
	e.importance = sumImportance(entries)
	return e, nil
}

// Options shape an ensemble prediction: how the input is keyed and
// missing splits handled, whether regression votes use their median as
// prediction, and how votes are combined
type Options struct {
	ByName    bool
	Strategy  tree.Strategy
	UseMedian bool
	CombineOptions
}

/*
Votes takes a context, an input record and the options and returns the
MultiVote with the vote of every model for the input, in the order of
the models. It returns the first error any model returns.
*/
func (e *Ensemble) Votes(ctx context.Context, input map[string]interface{}, opts Options) (*MultiVote, error) {
	votes := make([]Vote, len(e.models))
	mopts := model.Options{
		ByName:          opts.ByName,
		Strategy:        opts.Strategy,
		Multiple:        model.MultipleAll,
		AddConfidence:   true,
		AddDistribution: true,
		AddCount:        true,
		AddMedian:       true,
		AddMin:          true,
		AddMax:          true,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, m := range e.models {
		i, m := i, m
		g.Go(func() error {
			r, err := m.Predict(gctx, input, mopts)
			if err != nil {
				return errors.Wrapf(err, "model %d", i)
			}
			v := VoteFromResult(r)
			if opts.UseMedian && m.Regression() {
				v.Prediction = field.NumberValue(v.Median)
			}
			votes[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debug().Str("ensemble", e.ID).Int("votes", len(votes)).Int("workers", e.workers).Msg("ensemble votes collected")
	return NewMultiVote(votes...), nil
}

// Predict takes a context, an input record and the options and returns
// the combination of the votes of the models for the input
func (e *Ensemble) Predict(ctx context.Context, input map[string]interface{}, opts Options) (*model.Result, error) {
	mv, err := e.Votes(ctx, input, opts)
	if err != nil {
		return nil, err
	}
	return mv.Combine(opts.CombineOptions)
}

// Models returns the models of the ensemble
func (e *Ensemble) Models() []*model.Model {
	return e.models
}

// Regression returns whether the ensemble predicts a numeric objective
func (e *Ensemble) Regression() bool {
	return e.models[0].Regression()
}

// FieldImportance returns the summed importance of the fields used by
// the models, the most important first
func (e *Ensemble) FieldImportance() []model.Importance {
	result := make([]model.Importance, len(e.importance))
	copy(result, e.importance)
	return result
}

func sumImportance(entries [][]model.Importance) []model.Importance {
	var result []model.Importance
	index := make(map[string]int)
	for _, imps := range entries {
		for _, imp := range imps {
			i, ok := index[imp.FieldID]
			if !ok {
				index[imp.FieldID] = len(result)
				result = append(result, imp)
				continue
			}
			result[i].Importance += imp.Importance
			if result[i].Name == "" || result[i].Name == result[i].FieldID {
				result[i].Name = imp.Name
			}
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Importance != result[j].Importance {
			return result[i].Importance > result[j].Importance
		}
		return result[i].FieldID < result[j].FieldID
	})
	return result
}
