package tree_test

import (
	"testing"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/tree"
	treejson "github.com/pbanos/grove/tree/json"
	"github.com/stretchr/testify/require"
)

const categoricalTree = `{
	"id": 0, "predicate": true, "count": 100, "output": "A", "confidence": 0.502,
	"distribution": [["A", 60], ["B", 40]],
	"children": [
		{
			"id": 1, "predicate": {"operator": ">", "field": "000000", "value": 5},
			"count": 50, "output": "A", "confidence": 0.78,
			"distribution": [["A", 45], ["B", 5]],
			"children": [
				{
					"id": 2, "predicate": {"operator": "=", "field": "000001", "value": "red"},
					"count": 30, "output": "A", "confidence": 0.79,
					"distribution": [["A", 28], ["B", 2]]
				},
				{
					"id": 3, "predicate": {"operator": "!=", "field": "000001", "value": "red"},
					"count": 20, "output": "A", "confidence": 0.64,
					"distribution": [["A", 17], ["B", 3]]
				}
			]
		},
		{
			"id": 4, "predicate": {"operator": "<=", "field": "000000", "value": 5},
			"count": 50, "output": "B", "confidence": 0.56,
			"distribution": [["A", 15], ["B", 35]]
		}
	]
}`

const regressionTree = `{
	"id": 0, "predicate": true, "count": 5, "output": 9.6, "confidence": 2.0,
	"objective_summary": {"counts": [[5, 1], [7, 1], [11, 1], [12, 1], [13, 1]], "median": 11, "minimum": 5, "maximum": 13},
	"children": [
		{
			"id": 1, "predicate": {"operator": ">", "field": "000000", "value": 5},
			"count": 3, "output": 12, "confidence": 1.5,
			"objective_summary": {"counts": [[11, 1], [12, 1], [13, 1]]}
		},
		{
			"id": 2, "predicate": {"operator": "<=", "field": "000000", "value": 5},
			"count": 2, "output": 6, "confidence": 1.2,
			"objective_summary": {"counts": [[5, 1], [7, 1]]}
		}
	]
}`

func testView(objectiveOptype field.Optype) *field.View {
	return field.NewView(map[string]*field.Field{
		"000000": {ID: "000000", Name: "x", Optype: field.Numeric, ColumnNumber: 0},
		"000001": {ID: "000001", Name: "color", Optype: field.Categorical, ColumnNumber: 1},
		"000002": {ID: "000002", Name: "review", Optype: field.Text, ColumnNumber: 2},
		"000003": {ID: "000003", Name: "y", Optype: objectiveOptype, ColumnNumber: 3},
	}, "000003", nil)
}

func decode(t *testing.T, definition string, objectiveOptype field.Optype) *tree.Tree {
	tr, err := treejson.Decode([]byte(definition), testView(objectiveOptype), nil)
	require.NoError(t, err)
	return tr
}
