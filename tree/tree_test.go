package tree_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/tree"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeStructure(t *testing.T) {
	tr := decode(t, categoricalTree, field.Categorical)
	assert.Equal(t, 5, tr.Len())
	assert.False(t, tr.Regression())
	root := tr.Root()
	assert.Equal(t, 0, root.ID)
	assert.Equal(t, -1, root.Parent)
	assert.True(t, root.Predicate.IsTrue())
	children := tr.Children(root)
	require.Len(t, children, 2)
	assert.Equal(t, 1, children[0].ID)
	assert.Equal(t, 4, children[1].ID)
	assert.Equal(t, 0, children[0].ParentID)
	assert.InDelta(t, 0.24, root.Impurity, 1e-9)
	assert.True(t, math.IsNaN(root.Median))
	assert.Equal(t, tree.Categories, root.DistributionUnit)
}

func TestTreeRegressionSummary(t *testing.T) {
	tr := decode(t, regressionTree, field.Numeric)
	assert.True(t, tr.Regression())
	root := tr.Root()
	assert.Equal(t, 11.0, root.Median)
	assert.Equal(t, 5.0, root.Min)
	assert.Equal(t, 13.0, root.Max)
	assert.Equal(t, tree.Counts, root.DistributionUnit)
	assert.True(t, math.IsNaN(root.Impurity))
	leaf := tr.Children(root)[0]
	assert.Equal(t, 12.0, leaf.Median)
	assert.Equal(t, 11.0, leaf.Min)
	assert.Equal(t, 13.0, leaf.Max)
}

func TestTreeTraverse(t *testing.T) {
	tr := decode(t, categoricalTree, field.Categorical)
	var topdown, bottomup []int
	require.NoError(t, tr.Traverse(context.Background(), false, func(ctx context.Context, n *tree.Node) error {
		topdown = append(topdown, n.ID)
		return nil
	}))
	require.NoError(t, tr.Traverse(context.Background(), true, func(ctx context.Context, n *tree.Node) error {
		bottomup = append(bottomup, n.ID)
		return nil
	}))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, topdown)
	assert.Equal(t, []int{2, 3, 1, 4, 0}, bottomup)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := tr.Traverse(ctx, false, func(ctx context.Context, n *tree.Node) error { return nil })
	assert.Equal(t, context.Canceled, err)
}

func TestTreeValidate(t *testing.T) {
	assert.NoError(t, decode(t, categoricalTree, field.Categorical).Validate(context.Background()))
	assert.NoError(t, decode(t, regressionTree, field.Numeric).Validate(context.Background()))

	inconsistent := strings.Replace(categoricalTree, `"count": 30,`, `"count": 31,`, 1)
	err := decode(t, inconsistent, field.Categorical).Validate(context.Background())
	assert.Equal(t, tree.ErrInconsistentCounts, errors.Cause(err))
}

func TestTreeString(t *testing.T) {
	s := decode(t, categoricalTree, field.Categorical).String()
	assert.Contains(t, s, "[0]\n")
	assert.Contains(t, s, "|__[1]\n")
	assert.Contains(t, s, "{ x > 5 }")
	assert.Contains(t, s, "|  |__[2]")
}

func TestNewMalformed(t *testing.T) {
	v := testView(field.Categorical)
	_, err := tree.New(nil, v)
	assert.Equal(t, tree.ErrEmptyTree, err)

	nodes := []tree.Node{
		{ID: 0, Parent: -1, Predicate: field.True(), Children: []int{1}},
		{ID: 1, Parent: 0, Predicate: &field.Predicate{Operator: field.OpEqual, FieldID: "999999", Value: field.StringValue("a")}},
	}
	_, err = tree.New(nodes, v)
	assert.Equal(t, tree.ErrMalformedTree, errors.Cause(err))

	nodes[1].Predicate = &field.Predicate{Operator: field.OpGreater, FieldID: "000000", Term: "a", Value: field.NumberValue(0)}
	_, err = tree.New(nodes, v)
	assert.Equal(t, field.ErrTermOnNonTextField, errors.Cause(err))

	nodes[1].Predicate = field.True()
	nodes[1].Parent = 1
	_, err = tree.New(nodes, v)
	assert.Equal(t, tree.ErrMalformedTree, errors.Cause(err))

	nodes[1].Parent = 0
	nodes[0].Children = nil
	_, err = tree.New(nodes, v)
	assert.Equal(t, tree.ErrMalformedTree, errors.Cause(err))

	nodes[0].Children = []int{1}
	nodes[1].Distribution = tree.Distribution{{Value: field.StringValue("a"), Count: 1}, {Value: field.NumberValue(1), Count: 1}}
	_, err = tree.New(nodes, v)
	assert.Equal(t, tree.ErrMixedDistribution, errors.Cause(err))
}
