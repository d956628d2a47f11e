/*
Package json decodes the tree found at the root of a model definition
into a tree.Tree and encodes trees back into that format.
*/
package json

import (
	"context"
	"encoding/json"
	"io"
	"math"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/tree"
	"github.com/pkg/errors"
)

/*
Decode takes the JSON definition of the root node of a tree, the view of
the fields of its model and the summary of the objective over the whole
training data (used when the root has neither distribution nor
objective summary, may be nil) and returns the tree. Any node without
an id or a predicate, any predicate the view cannot resolve and any
distribution that mixes numbers and categories makes the whole decoding
fail.
*/
func Decode(data []byte, view *field.View, rootSummary *Summary) (*tree.Tree, error) {
	root := &node{}
	if err := json.Unmarshal(data, root); err != nil {
		return nil, errors.Wrap(tree.ErrMalformedTree, err.Error())
	}
	var nodes []tree.Node
	if _, err := appendNode(&nodes, root, -1, -1, rootSummary); err != nil {
		return nil, err
	}
	return tree.New(nodes, view)
}

// ReadTree decodes the tree read from r like Decode does
func ReadTree(ctx context.Context, r io.Reader, view *field.View, rootSummary *Summary) (*tree.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	return Decode(data, view, rootSummary)
}

// appendNode appends the decoded jn and its descendants to nodes in
// preorder and returns the index of jn
func appendNode(nodes *[]tree.Node, jn *node, parent, parentID int, summary *Summary) (int, error) {
	if jn.ID == nil {
		return 0, errors.Wrap(tree.ErrMalformedTree, "node without id")
	}
	p, err := decodePredicate(jn.Predicate)
	if err != nil {
		return 0, errors.Wrapf(err, "node %d", *jn.ID)
	}
	n := tree.Node{
		ID:         *jn.ID,
		ParentID:   parentID,
		Parent:     parent,
		Predicate:  p,
		Count:      int(jn.Count),
		Output:     jn.Output,
		Confidence: math.NaN(),
		Median:     math.NaN(),
		Min:        math.NaN(),
		Max:        math.NaN(),
	}
	if jn.Confidence != nil {
		n.Confidence = *jn.Confidence
	}
	n.Regression = n.Output.Kind() != field.String
	for _, c := range jn.Children {
		if c.Output.Kind() == field.String {
			n.Regression = false
		}
	}
	if jn.ObjectiveSummary != nil {
		summary = jn.ObjectiveSummary
	}
	entries := jn.Distribution
	if entries != nil {
		n.DistributionUnit = tree.Categories
		if n.Regression {
			n.DistributionUnit = tree.Counts
		}
	} else if summary != nil {
		entries, n.DistributionUnit = summary.distribution()
	}
	if summary != nil {
		n.Median = floatOrNaN(summary.Median)
		n.Min = floatOrNaN(summary.Minimum)
		n.Max = floatOrNaN(summary.Maximum)
	}
	if n.Distribution, err = decodeDistribution(entries); err != nil {
		return 0, errors.Wrapf(err, "node %d", n.ID)
	}
	if err = n.Distribution.Check(); err != nil {
		return 0, errors.Wrapf(err, "node %d", n.ID)
	}
	n.Summarize()
	index := len(*nodes)
	*nodes = append(*nodes, n)
	for _, c := range jn.Children {
		ci, err := appendNode(nodes, c, index, n.ID, nil)
		if err != nil {
			return 0, err
		}
		(*nodes)[index].Children = append((*nodes)[index].Children, ci)
	}
	return index, nil
}

/*
Encode takes a context and a tree and returns the JSON definition of its
root node, in the format Decode takes. An error is returned if the tree
cannot be traversed or encoded.
*/
func Encode(ctx context.Context, t *tree.Tree) ([]byte, error) {
	encoded := make(map[*tree.Node]*node, t.Len())
	err := t.Traverse(ctx, true, func(ctx context.Context, n *tree.Node) error {
		p, err := encodePredicate(n.Predicate)
		if err != nil {
			return err
		}
		id := n.ID
		jn := &node{
			ID:         &id,
			Predicate:  p,
			Count:      float64(n.Count),
			Output:     n.Output,
			Confidence: floatPointer(n.Confidence),
		}
		if n.Regression {
			jn.ObjectiveSummary = &Summary{
				Median:  floatPointer(n.Median),
				Minimum: floatPointer(n.Min),
				Maximum: floatPointer(n.Max),
			}
			if n.DistributionUnit == tree.Bins {
				jn.ObjectiveSummary.Bins = encodeDistribution(n.Distribution)
			} else {
				jn.ObjectiveSummary.Counts = encodeDistribution(n.Distribution)
			}
		} else {
			jn.Distribution = encodeDistribution(n.Distribution)
		}
		for _, c := range t.Children(n) {
			jn.Children = append(jn.Children, encoded[c])
		}
		encoded[n] = jn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(encoded[t.Root()])
}

// WriteTree encodes the tree like Encode does and writes it onto w
func WriteTree(ctx context.Context, t *tree.Tree, w io.Writer) error {
	data, err := Encode(ctx, t)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
