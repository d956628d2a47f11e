package json

import (
	"encoding/json"
	"math"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/tree"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// node is a node of a tree as found in the root of a model definition
type node struct {
	ID               *int            `json:"id"`
	Predicate        json.RawMessage `json:"predicate"`
	Count            float64         `json:"count"`
	Output           field.Value     `json:"output"`
	Confidence       *float64        `json:"confidence,omitempty"`
	Distribution     [][]interface{} `json:"distribution,omitempty"`
	ObjectiveSummary *Summary        `json:"objective_summary,omitempty"`
	Children         []*node         `json:"children,omitempty"`
}

type predicate struct {
	Operator string      `json:"operator"`
	Field    string      `json:"field"`
	Value    field.Value `json:"value"`
	Term     *string     `json:"term,omitempty"`
}

/*
Summary is the summary of the objective field over the instances of a
node: a list of categories, of exact values (counts) or of bins, with
their instance counts, and for numeric objectives the median, minimum
and maximum values.
*/
type Summary struct {
	Categories [][]interface{} `json:"categories,omitempty"`
	Counts     [][]interface{} `json:"counts,omitempty"`
	Bins       [][]interface{} `json:"bins,omitempty"`
	Median     *float64        `json:"median,omitempty"`
	Minimum    *float64        `json:"minimum,omitempty"`
	Maximum    *float64        `json:"maximum,omitempty"`
}

// distribution returns the entries of the summary along with their unit
func (s *Summary) distribution() ([][]interface{}, tree.DistributionUnit) {
	switch {
	case s.Bins != nil:
		return s.Bins, tree.Bins
	case s.Counts != nil:
		return s.Counts, tree.Counts
	case s.Categories != nil:
		return s.Categories, tree.Categories
	}
	return nil, ""
}

func decodePredicate(data json.RawMessage) (*field.Predicate, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, errors.Wrap(tree.ErrMalformedTree, "missing predicate")
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if !b {
			return nil, errors.Wrap(tree.ErrMalformedTree, "false predicate")
		}
		return field.True(), nil
	}
	jp := &predicate{}
	if err := json.Unmarshal(data, jp); err != nil {
		return nil, errors.Wrap(tree.ErrMalformedTree, err.Error())
	}
	op, missing, err := field.ParseOperator(jp.Operator)
	if err != nil {
		return nil, err
	}
	if op == field.OpTrue {
		return field.True(), nil
	}
	if jp.Field == "" {
		return nil, errors.Wrap(tree.ErrMalformedTree, "predicate without field")
	}
	p := &field.Predicate{Operator: op, Missing: missing, FieldID: jp.Field, Value: jp.Value}
	if jp.Term != nil {
		p.Term = *jp.Term
	}
	return p, nil
}

func encodePredicate(p *field.Predicate) (json.RawMessage, error) {
	if p == nil || p.IsTrue() {
		return json.RawMessage("true"), nil
	}
	jp := &predicate{Operator: p.Operator.String(), Field: p.FieldID, Value: p.Value}
	if p.Missing {
		jp.Operator += "*"
	}
	if p.Term != "" {
		term := p.Term
		jp.Term = &term
	}
	return json.Marshal(jp)
}

func decodeDistribution(entries [][]interface{}) (tree.Distribution, error) {
	d := make(tree.Distribution, 0, len(entries))
	for _, e := range entries {
		if len(e) != 2 {
			return nil, errors.Wrapf(tree.ErrMalformedTree, "distribution entry %v", e)
		}
		v, err := field.ValueOf(e[0])
		if err != nil {
			return nil, err
		}
		c, err := cast.ToIntE(e[1])
		if err != nil {
			return nil, errors.Wrapf(tree.ErrMalformedTree, "distribution count %v", e[1])
		}
		d = append(d, tree.Bin{Value: v, Count: c})
	}
	return d, nil
}

func encodeDistribution(d tree.Distribution) [][]interface{} {
	entries := make([][]interface{}, len(d))
	for i, b := range d {
		entries[i] = []interface{}{b.Value, b.Count}
	}
	return entries
}

func floatPointer(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

func floatOrNaN(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}
