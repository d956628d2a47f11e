package ensemble

import (
	"math"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/model"
	"github.com/pbanos/grove/stats"
	"github.com/pbanos/grove/tree"
	"github.com/pkg/errors"
)

/*
MultiVote is the ordered collection of the votes of the models of an
ensemble for one input record. Votes are tagged with a strictly
increasing arrival order as they are added.

A MultiVote is built for one combination and is not safe for concurrent
use.
*/
type MultiVote struct {
	votes []Vote
}

/*
NewMultiVote returns a MultiVote with the given votes. Their orders are
kept if all of them carry one, otherwise they are numbered from 1 in the
given order.
*/
func NewMultiVote(votes ...Vote) *MultiVote {
	mv := &MultiVote{votes: make([]Vote, len(votes))}
	copy(mv.votes, votes)
	ordered := true
	for _, v := range mv.votes {
		if v.Order <= 0 {
			ordered = false
			break
		}
	}
	if !ordered {
		for i := range mv.votes {
			mv.votes[i].Order = i + 1
		}
	}
	return mv
}

// Len returns the number of votes
func (mv *MultiVote) Len() int {
	return len(mv.votes)
}

// Votes returns a copy of the votes
func (mv *MultiVote) Votes() []Vote {
	votes := make([]Vote, len(mv.votes))
	copy(votes, mv.votes)
	return votes
}

func (mv *MultiVote) nextOrder() int {
	if len(mv.votes) == 0 {
		return 1
	}
	return mv.votes[len(mv.votes)-1].Order + 1
}

// Append adds the vote to the MultiVote with the next order
func (mv *MultiVote) Append(v Vote) {
	v.Order = mv.nextOrder()
	mv.votes = append(mv.votes, v)
}

// Extend appends the votes of other, in their order, renumbering them
// after the votes already present
func (mv *MultiVote) Extend(other *MultiVote) {
	for _, v := range other.votes {
		mv.Append(v)
	}
}

// IsRegression returns whether there are votes and all of them predict
// numbers
func (mv *MultiVote) IsRegression() bool {
	for _, v := range mv.votes {
		if v.Prediction.Kind() != field.Number {
			return false
		}
	}
	return len(mv.votes) > 0
}

/*
Combine aggregates the votes into a single result according to the
options. Regression votes are averaged, weighting them by their
normalized error when the method is ConfidenceWeighted. Categorical votes
are counted with the weight the method assigns to them and the category
with the largest accumulated weight wins, the one first voted winning
ties.
*/
func (mv *MultiVote) Combine(opts CombineOptions) (*model.Result, error) {
	if len(mv.votes) == 0 {
		return nil, ErrNoVotes
	}
	if mv.IsRegression() {
		return mv.combineRegression(opts)
	}
	return mv.combineCategorical(opts)
}

type tally struct {
	value  field.Value
	weight float64
	order  int
}

func (mv *MultiVote) combineCategorical(opts CombineOptions) (*model.Result, error) {
	votes := mv.votes
	var err error
	switch opts.Method {
	case Threshold:
		votes, err = singleOut(votes, opts.ThresholdCategory, opts.ThresholdK)
	case ProbabilityWeighted:
		votes, err = probabilityVotes(votes)
	}
	if err != nil {
		return nil, err
	}
	weight, err := weigher(opts.Method, votes)
	if err != nil {
		return nil, err
	}
	var tallies []*tally
	index := make(map[string]*tally)
	var total float64
	for _, v := range votes {
		key := v.Prediction.String()
		t, ok := index[key]
		if !ok {
			t = &tally{value: v.Prediction, order: v.Order}
			index[key] = t
			tallies = append(tallies, t)
		}
		w := weight(v)
		t.weight += w
		total += w
		if v.Order < t.order {
			t.order = v.Order
		}
	}
	if len(tallies) == 0 {
		return nil, ErrNoVotes
	}
	winner := tallies[0]
	for _, t := range tallies[1:] {
		if t.weight > winner.weight || (t.weight == winner.weight && t.order < winner.order) {
			winner = t
		}
	}
	r := &model.Result{Prediction: winner.value}
	if opts.AddConfidence {
		c := combinedConfidence(votes, winner, weight, total)
		r.Confidence = &c
	}
	if opts.Method == ProbabilityWeighted && total > 0 {
		p := winner.weight / total
		r.Probability = &p
	}
	if opts.AddDistribution {
		var d tree.Distribution
		for _, v := range mv.votes {
			if d, err = tree.MergeDistributions(d, v.Distribution); err != nil {
				return nil, err
			}
		}
		r.Distribution = d
		r.DistributionUnit = tree.Categories
	}
	if opts.AddCount {
		count := mv.count()
		r.Count = &count
	}
	return r, nil
}

/*
combinedConfidence returns the mean of the confidences of the votes for
the winner weighted like the votes were. When some vote lacks a
confidence it returns the Wilson score of the winner's share of the
weight of all the votes, over the number of instances the votes account
for (or over the weight itself if the votes carry no counts).
*/
func combinedConfidence(votes []Vote, winner *tally, weight func(Vote) float64, total float64) float64 {
	for _, v := range votes {
		if !v.HasConfidence() {
			return distributionConfidence(votes, winner, total)
		}
	}
	var confidence, weights float64
	for _, v := range votes {
		if !v.Prediction.Equal(winner.value) {
			continue
		}
		w := weight(v)
		confidence += w * v.Confidence
		weights += w
	}
	if weights <= 0 {
		return 0
	}
	return confidence / weights
}

func distributionConfidence(votes []Vote, winner *tally, total float64) float64 {
	if total <= 0 {
		return math.NaN()
	}
	var instances int
	for _, v := range votes {
		instances += v.Count
	}
	n := float64(instances)
	if instances <= 0 {
		n = total
	}
	return stats.WilsonScore(winner.weight/total, n, stats.DefaultZ)
}

func weigher(method Method, votes []Vote) (func(Vote) float64, error) {
	switch method {
	case ConfidenceWeighted:
		for _, v := range votes {
			if !v.HasConfidence() {
				return nil, errors.Wrapf(ErrMissingWeight, "vote %d has no confidence", v.Order)
			}
		}
		return func(v Vote) float64 { return v.Confidence }, nil
	case ProbabilityWeighted:
		return func(v Vote) float64 { return v.Probability }, nil
	}
	return func(Vote) float64 { return 1 }, nil
}

// singleOut returns the votes for category if there are at least
// threshold of them, or the rest of the votes otherwise
func singleOut(votes []Vote, category string, threshold int) ([]Vote, error) {
	if category == "" || threshold <= 0 || threshold > len(votes) {
		return nil, errors.Wrapf(ErrInvalidThreshold, "%d votes for %q out of %d", threshold, category, len(votes))
	}
	var matches, rest []Vote
	for _, v := range votes {
		if s, ok := v.Prediction.Text(); ok && s == category {
			matches = append(matches, v)
		} else {
			rest = append(rest, v)
		}
	}
	if len(matches) >= threshold {
		return matches, nil
	}
	return rest, nil
}

// probabilityVotes flattens the distribution of every vote into one vote
// per category weighted by its share of the vote's instances
func probabilityVotes(votes []Vote) ([]Vote, error) {
	var result []Vote
	for _, v := range votes {
		total := v.total()
		if len(v.Distribution) == 0 || total <= 0 {
			return nil, errors.Wrapf(ErrMissingWeight, "vote %d has no distribution", v.Order)
		}
		for _, b := range v.Distribution {
			row := NewVote(b.Value)
			row.Probability = float64(b.Count) / float64(total)
			row.Count = b.Count
			row.Order = v.Order
			result = append(result, row)
		}
	}
	return result, nil
}

func (mv *MultiVote) count() int {
	var count int
	for _, v := range mv.votes {
		count += v.Count
	}
	return count
}
