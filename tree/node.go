package tree

import (
	"fmt"
	"math"

	"github.com/pbanos/grove/field"
)

var nan = math.NaN()

/*
Node is a node of the tree
*/
type Node struct {
	// The id of the node in the model definition
	ID int
	// The id of the parent node in the model definition, -1 for the root
	ParentID int
	// The index of the parent node in the tree, -1 for the root
	Parent int
	// The indexes of the nodes directly under this node, in the order
	// their predicates are tested
	Children []int
	// The condition on the input record that selects this node from its
	// parent. The root node has the always satisfied predicate.
	Predicate *field.Predicate
	// The number of training instances that reached the node
	Count int
	// The prediction of the node: a category or a number
	Output     field.Value
	Confidence float64
	// The objective values of the training instances that reached the node
	Distribution     Distribution
	DistributionUnit DistributionUnit
	// Whether the node predicts a numeric objective
	Regression bool
	// Gini impurity of categorical nodes, NaN for regression nodes
	Impurity float64
	// Median, Min and Max of regression nodes, NaN for categorical ones
	Median float64
	Min    float64
	Max    float64
}

// IsLeaf returns whether the node has no children
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Instances returns the total count of the node's distribution, or the
// node's count when the distribution is empty
func (n *Node) Instances() int {
	if len(n.Distribution) > 0 {
		return n.Distribution.Total()
	}
	return n.Count
}

/*
Summarize fills the derived attributes of the node from its
distribution: the gini impurity for categorical nodes and, when not
already set, the median, minimum and maximum for regression nodes.
*/
func (n *Node) Summarize() {
	if !n.Regression {
		n.Impurity = n.Distribution.Gini(n.Count)
		n.Median, n.Min, n.Max = nan, nan, nan
		return
	}
	n.Impurity = nan
	h, err := n.Distribution.Histogram()
	if err != nil || len(h) == 0 {
		return
	}
	h = h.Sorted()
	if math.IsNaN(n.Median) {
		n.Median = medianOf(h, n.Count)
	}
	if math.IsNaN(n.Min) {
		n.Min = h[0].Value
	}
	if math.IsNaN(n.Max) {
		n.Max = h[len(h)-1].Value
	}
}

func (n *Node) String() string {
	s := fmt.Sprintf("%v (%d)", n.Output, n.Count)
	if !math.IsNaN(n.Confidence) {
		s = fmt.Sprintf("%s conf %.4f", s, n.Confidence)
	}
	return s
}
