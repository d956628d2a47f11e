package tree_test

import (
	"context"
	"math"
	"testing"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/stats"
	"github.com/pbanos/grove/tree"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictProportionalMissingSplitField(t *testing.T) {
	tr := decode(t, categoricalTree, field.Categorical)
	input := field.Input{"000001": field.StringValue("red")}
	p, err := tr.Predict(context.Background(), input, tree.Proportional)
	require.NoError(t, err)
	assert.Equal(t, field.StringValue("A"), p.Output)
	assert.Equal(t, 80, p.Count)
	assert.InDelta(t, 0.4290, p.Confidence, 1e-4)
	assert.Equal(t, tree.Distribution{
		{Value: field.StringValue("A"), Count: 43},
		{Value: field.StringValue("B"), Count: 37},
	}, p.Distribution)
	assert.Equal(t, tree.Categories, p.DistributionUnit)
	assert.Empty(t, p.Path)
	require.Len(t, p.Children, 2)
	next, ok := p.NextField()
	assert.True(t, ok)
	assert.Equal(t, "000000", next)
}

func TestPredictLastPredictionMissingSplitField(t *testing.T) {
	tr := decode(t, categoricalTree, field.Categorical)
	input := field.Input{"000001": field.StringValue("red")}
	p, err := tr.Predict(context.Background(), input, tree.LastPrediction)
	require.NoError(t, err)
	assert.Equal(t, field.StringValue("A"), p.Output)
	assert.Equal(t, 100, p.Count)
	assert.Equal(t, 0.502, p.Confidence)
	assert.Equal(t, tree.Distribution{
		{Value: field.StringValue("A"), Count: 60},
		{Value: field.StringValue("B"), Count: 40},
	}, p.Distribution)
	assert.Empty(t, p.Path)
	assert.True(t, math.IsNaN(p.Median))
}

func TestPredictStrategiesAgreeWhenFieldsPresent(t *testing.T) {
	tr := decode(t, categoricalTree, field.Categorical)
	inputs := []field.Input{
		{"000000": field.NumberValue(7), "000001": field.StringValue("blue")},
		{"000000": field.NumberValue(7), "000001": field.StringValue("red")},
		{"000000": field.NumberValue(2)},
	}
	for _, input := range inputs {
		for i := 0; i < 3; i++ {
			last, err := tr.Predict(context.Background(), input, tree.LastPrediction)
			require.NoError(t, err)
			prop, err := tr.Predict(context.Background(), input, tree.Proportional)
			require.NoError(t, err)
			assert.Equal(t, last.Output, prop.Output)
			assert.Equal(t, last.Confidence, prop.Confidence)
			assert.Equal(t, last.Count, prop.Count)
			assert.Equal(t, last.Distribution, prop.Distribution)
			assert.Equal(t, last.Path, prop.Path)
			assert.Equal(t, last.Children, prop.Children)
		}
	}
	p, err := tr.Predict(context.Background(), inputs[0], tree.LastPrediction)
	require.NoError(t, err)
	assert.Equal(t, []string{"x > 5", "color != red"}, p.Path)
	assert.Equal(t, 20, p.Count)
	assert.Empty(t, p.Children)
	_, ok := p.NextField()
	assert.False(t, ok)
}

func TestPredictProportionalPartialPath(t *testing.T) {
	tr := decode(t, categoricalTree, field.Categorical)
	p, err := tr.Predict(context.Background(), field.Input{"000000": field.NumberValue(7)}, tree.Proportional)
	require.NoError(t, err)
	assert.Equal(t, []string{"x > 5"}, p.Path)
	assert.Equal(t, 50, p.Count)
	assert.Equal(t, field.StringValue("A"), p.Output)
	assert.InDelta(t, stats.WSConfidence(45, 50), p.Confidence, 1e-12)
	next, ok := p.NextField()
	assert.True(t, ok)
	assert.Equal(t, "000001", next)
}

func TestPredictRegressionProportional(t *testing.T) {
	tr := decode(t, regressionTree, field.Numeric)
	p, err := tr.Predict(context.Background(), field.Input{}, tree.Proportional)
	require.NoError(t, err)
	out, ok := p.Output.Number()
	require.True(t, ok)
	assert.InDelta(t, 9.6, out, 1e-9)
	assert.InDelta(t, 3.1747, p.Confidence, 1e-3)
	assert.Equal(t, 5, p.Count)
	assert.Equal(t, 11.0, p.Median)
	assert.Equal(t, 5.0, p.Min)
	assert.Equal(t, 13.0, p.Max)
	assert.Equal(t, tree.Counts, p.DistributionUnit)
	assert.Len(t, p.Distribution, 5)
}

func TestPredictRegressionLastPrediction(t *testing.T) {
	tr := decode(t, regressionTree, field.Numeric)
	p, err := tr.Predict(context.Background(), field.Input{"000000": field.NumberValue(1)}, tree.LastPrediction)
	require.NoError(t, err)
	assert.Equal(t, field.NumberValue(6), p.Output)
	assert.Equal(t, 1.2, p.Confidence)
	assert.Equal(t, 6.0, p.Median)
	assert.Equal(t, 5.0, p.Min)
	assert.Equal(t, 7.0, p.Max)
	assert.Equal(t, []string{"x <= 5"}, p.Path)
}

func TestPredictRegressionSingleBin(t *testing.T) {
	definition := `{
		"id": 0, "predicate": true, "count": 3, "output": 5, "confidence": 0.5,
		"objective_summary": {"counts": [[5, 3]]},
		"children": [
			{"id": 1, "predicate": {"operator": ">", "field": "000000", "value": 5}, "count": 1, "output": 5,
			 "objective_summary": {"counts": [[5, 1]]}},
			{"id": 2, "predicate": {"operator": "<=", "field": "000000", "value": 5}, "count": 2, "output": 5,
			 "objective_summary": {"counts": [[5, 2]]}}
		]
	}`
	tr := decode(t, definition, field.Numeric)
	p, err := tr.Predict(context.Background(), field.Input{}, tree.Proportional)
	require.NoError(t, err)
	assert.Equal(t, field.NumberValue(5), p.Output)
	assert.InDelta(t, 0.5*math.Sqrt(3), p.Confidence, 1e-12)
	assert.Equal(t, 3, p.Count)
}

func TestPredictRegressionManyBins(t *testing.T) {
	tr := decode(t, regressionTree, field.Numeric)
	root := tr.Root()
	left := tr.Node(root.Children[0])
	right := tr.Node(root.Children[1])
	left.Distribution, right.Distribution = nil, nil
	for i := 0; i < 20; i++ {
		left.Distribution = append(left.Distribution, tree.Bin{Value: field.NumberValue(float64(100 + i)), Count: 1})
		right.Distribution = append(right.Distribution, tree.Bin{Value: field.NumberValue(float64(i)), Count: 2})
	}
	p, err := tr.Predict(context.Background(), field.Input{}, tree.Proportional)
	require.NoError(t, err)
	assert.Equal(t, tree.Bins, p.DistributionUnit)
	assert.Len(t, p.Distribution, tree.BinsLimit)
	assert.Equal(t, 60, p.Count)
	assert.Equal(t, 60, p.Distribution.Total())
}

func TestPredictMissingBranch(t *testing.T) {
	definition := `{
		"id": 0, "predicate": true, "count": 10, "output": "A", "confidence": 0.3,
		"distribution": [["A", 6], ["B", 4]],
		"children": [
			{"id": 1, "predicate": {"operator": ">*", "field": "000000", "value": 5}, "count": 6, "output": "A",
			 "distribution": [["A", 6]]},
			{"id": 2, "predicate": {"operator": "<=", "field": "000000", "value": 5}, "count": 4, "output": "B",
			 "distribution": [["B", 4]]}
		]
	}`
	tr := decode(t, definition, field.Categorical)
	p, err := tr.Predict(context.Background(), field.Input{}, tree.Proportional)
	require.NoError(t, err)
	assert.Equal(t, field.StringValue("A"), p.Output)
	assert.Equal(t, []string{"x > 5 or missing"}, p.Path)
	assert.Equal(t, 6, p.Count)
}

func TestPredictProportionalMissingTextField(t *testing.T) {
	definition := `{
		"id": 0, "predicate": true, "count": 100, "output": "A", "confidence": 0.502,
		"distribution": [["A", 60], ["B", 40]],
		"children": [
			{"id": 1, "predicate": {"operator": ">", "field": "000002", "term": "great", "value": 0},
			 "count": 40, "output": "A", "distribution": [["A", 30], ["B", 10]]},
			{"id": 2, "predicate": {"operator": "<=", "field": "000002", "term": "great", "value": 0},
			 "count": 50, "output": "A", "distribution": [["A", 25], ["B", 25]]}
		]
	}`
	tr := decode(t, definition, field.Categorical)
	p, err := tr.Predict(context.Background(), field.Input{}, tree.Proportional)
	require.NoError(t, err)
	assert.Equal(t, field.StringValue("A"), p.Output)
	assert.Equal(t, 90, p.Count)
	assert.Equal(t, tree.Distribution{
		{Value: field.StringValue("A"), Count: 55},
		{Value: field.StringValue("B"), Count: 35},
	}, p.Distribution)
	assert.InDelta(t, stats.WSConfidence(55, 90), p.Confidence, 1e-12)
	assert.Empty(t, p.Path)

	p, err = tr.Predict(context.Background(), field.Input{"000002": field.StringValue("A great movie")}, tree.Proportional)
	require.NoError(t, err)
	assert.Equal(t, 40, p.Count)
	assert.Equal(t, []string{"review contains great"}, p.Path)
}

func TestPredictTypeMismatch(t *testing.T) {
	tr := decode(t, categoricalTree, field.Categorical)
	_, err := tr.Predict(context.Background(), field.Input{"000000": field.StringValue("seven")}, tree.LastPrediction)
	assert.Equal(t, field.ErrTypeMismatch, errors.Cause(err))
}

func TestPredictCancelled(t *testing.T) {
	tr := decode(t, categoricalTree, field.Categorical)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tr.Predict(ctx, field.Input{}, tree.Proportional)
	assert.Equal(t, context.Canceled, err)
	_, err = tr.Predict(ctx, field.Input{}, tree.LastPrediction)
	assert.Equal(t, context.Canceled, err)
}

func TestParseStrategy(t *testing.T) {
	s, err := tree.ParseStrategy("proportional")
	require.NoError(t, err)
	assert.Equal(t, tree.Proportional, s)
	assert.Equal(t, "last_prediction", tree.LastPrediction.String())
	_, err = tree.ParseStrategy("random")
	assert.Equal(t, tree.ErrUnknownStrategy, errors.Cause(err))
}
