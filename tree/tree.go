package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/stats"
	"github.com/pkg/errors"
)

// Tree represents a decision tree. Its nodes are stored in an arena
// where the root node has index 0 and every node refers to its parent
// and children by index. A Tree is never modified once built, so it
// can be used to predict concurrently.
type Tree struct {
	nodes []Node
	view  *field.View
}

/*
New takes the nodes of a tree and the view of the fields of its model
and returns the Tree or an error if the nodes do not form a strict tree
rooted at index 0, a predicate refers to a field unknown to the view or
carries a term on a field that is neither text nor items, or a node
distribution mixes numeric and categorical values.
*/
func New(nodes []Node, view *field.View) (*Tree, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyTree
	}
	t := &Tree{nodes: nodes, view: view}
	if t.nodes[0].Parent != -1 {
		return nil, errors.Wrap(ErrMalformedTree, "root node has a parent")
	}
	if t.nodes[0].Predicate == nil {
		t.nodes[0].Predicate = field.True()
	}
	seen := make([]bool, len(nodes))
	pending := []int{0}
	seen[0] = true
	for len(pending) > 0 {
		i := pending[0]
		pending = pending[1:]
		n := &t.nodes[i]
		if err := t.checkNode(n); err != nil {
			return nil, errors.Wrapf(err, "node %d", n.ID)
		}
		for _, c := range n.Children {
			if c <= 0 || c >= len(nodes) || seen[c] || t.nodes[c].Parent != i {
				return nil, errors.Wrapf(ErrMalformedTree, "node %d has invalid child index %d", n.ID, c)
			}
			seen[c] = true
			pending = append(pending, c)
		}
	}
	for i, s := range seen {
		if !s {
			return nil, errors.Wrapf(ErrMalformedTree, "node %d is not reachable from the root", nodes[i].ID)
		}
	}
	return t, nil
}

func (t *Tree) checkNode(n *Node) error {
	if n.Predicate == nil {
		return errors.Wrap(ErrMalformedTree, "missing predicate")
	}
	if err := n.Distribution.Check(); err != nil {
		return err
	}
	p := n.Predicate
	if p.IsTrue() {
		return nil
	}
	f, ok := t.view.Field(p.FieldID)
	if !ok {
		return errors.Wrapf(ErrMalformedTree, "predicate on unknown field %s", p.FieldID)
	}
	if p.Term != "" && f.Optype != field.Text && f.Optype != field.Items {
		return errors.Wrapf(field.ErrTermOnNonTextField, "field %s", p.FieldID)
	}
	return nil
}

// Root returns the root node of the tree
func (t *Tree) Root() *Node {
	return &t.nodes[0]
}

// Node returns the node at the given index
func (t *Tree) Node(i int) *Node {
	return &t.nodes[i]
}

// Len returns the number of nodes in the tree
func (t *Tree) Len() int {
	return len(t.nodes)
}

// View returns the view of the fields the tree's predicates refer to
func (t *Tree) View() *field.View {
	return t.view
}

// Regression returns whether the tree predicts a numeric objective
func (t *Tree) Regression() bool {
	return t.nodes[0].Regression
}

// Children returns the children of the given node
func (t *Tree) Children(n *Node) []*Node {
	children := make([]*Node, len(n.Children))
	for i, c := range n.Children {
		children[i] = &t.nodes[c]
	}
	return children
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// If the given context times out or is cancelled, the context
// error is returned. If the call to the function returns an
// error, the traversing is aborted and the error is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	return t.traverse(ctx, 0, bottomup, f)
}

func (t *Tree) traverse(ctx context.Context, i int, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	n := &t.nodes[i]
	if !bottomup {
		if err = f(ctx, n); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err = t.traverse(ctx, c, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(ctx, n)
	}
	return nil
}

/*
Validate checks the instance counts of the tree: the counts of the
children of a node never add up to more than the node's count, and the
distribution of a leaf adds up to exactly the leaf's count. It returns
ErrInconsistentCounts naming the first offending node.
*/
func (t *Tree) Validate(ctx context.Context) error {
	return t.Traverse(ctx, false, func(ctx context.Context, n *Node) error {
		if n.IsLeaf() {
			if len(n.Distribution) > 0 && n.Distribution.Total() != n.Count {
				return errors.Wrapf(ErrInconsistentCounts, "leaf %d has count %d and distribution total %d", n.ID, n.Count, n.Distribution.Total())
			}
			return nil
		}
		var sum int
		for _, c := range n.Children {
			sum += t.nodes[c].Count
		}
		if sum > n.Count {
			return errors.Wrapf(ErrInconsistentCounts, "node %d has count %d and its children %d", n.ID, n.Count, sum)
		}
		return nil
	})
}

func (t *Tree) String() string {
	return t.subtreeString(0)
}

func (t *Tree) subtreeString(i int) string {
	n := &t.nodes[i]
	result := fmt.Sprintf("[%d]\n", n.ID)
	if !n.Predicate.IsTrue() {
		result = fmt.Sprintf("%s{ %s }\n", result, n.Predicate.Rule(t.view))
	}
	result = fmt.Sprintf("%s{ %v }\n", result, n)
	if len(n.Children) > 0 {
		result = fmt.Sprintf("%s|\n", result)
	} else {
		result = fmt.Sprintf("%s \n", result)
	}
	for ci, c := range n.Children {
		for j, line := range strings.Split(t.subtreeString(c), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if ci == len(n.Children)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}

func medianOf(h stats.Histogram, instances int) float64 {
	if instances <= 0 {
		instances = h.Total()
	}
	return stats.Median(h, instances)
}
