package ensemble

import (
	"fmt"
	"testing"

	"github.com/pbanos/grove/field"
	"github.com/pbanos/grove/model"
	"github.com/pbanos/grove/tree"
	"github.com/stretchr/testify/require"
)

const fields = `{
	"000000": {"name": "x", "optype": "numeric", "column_number": 0},
	"000001": {"name": "color", "optype": "categorical", "column_number": 1},
	"000002": {"name": "y", "optype": "%s", "column_number": 2}
}`

// categoricalDefinition returns the definition of a model whose tree
// splits on x, predicting output with the given confidence and
// distribution when x > 5 and "C" otherwise
func categoricalDefinition(id, output string, confidence float64, counts [2]int) string {
	return fmt.Sprintf(`{
		"resource": %q, "status": {"code": 5}, "objective_field": "000002",
		"model": {
			"fields": %s,
			"importance": [["000000", 0.6], ["000001", 0.4]],
			"root": {
				"id": 0, "predicate": true, "count": %d, "output": %q, "confidence": %v,
				"distribution": [["A", %d], ["B", %d], ["C", 1]],
				"children": [
					{"id": 1, "predicate": {"operator": ">", "field": "000000", "value": 5},
					 "count": %d, "output": %q, "confidence": %v, "distribution": [["A", %d], ["B", %d]]},
					{"id": 2, "predicate": {"operator": "<=", "field": "000000", "value": 5},
					 "count": 1, "output": "C", "confidence": 0.2, "distribution": [["C", 1]]}
				]
			}
		}
	}`, id, fmt.Sprintf(fields, "categorical"), counts[0]+counts[1]+1, output, confidence, counts[0], counts[1],
		counts[0]+counts[1], output, confidence, counts[0], counts[1])
}

// regressionDefinition returns the definition of a single node
// regression model
func regressionDefinition(id string, output, confidence, median float64) string {
	return fmt.Sprintf(`{
		"resource": %q, "status": {"code": 5}, "objective_field": "000002",
		"model": {
			"fields": %s,
			"importance": [["000001", 1]],
			"root": {
				"id": 0, "predicate": true, "count": 2, "output": %v, "confidence": %v,
				"objective_summary": {"counts": [[%v, 1], [%v, 1]], "median": %v, "minimum": %v, "maximum": %v}
			}
		}
	}`, id, fmt.Sprintf(fields, "numeric"), output, confidence, output-1, output+1, median, output-1, output+1)
}

func decodeModel(t *testing.T, definition string) *model.Model {
	m, err := model.Decode([]byte(definition))
	require.NoError(t, err)
	return m
}

func categoricalModels(t *testing.T) []*model.Model {
	return []*model.Model{
		decodeModel(t, categoricalDefinition("model/1", "A", 0.8, [2]int{8, 2})),
		decodeModel(t, categoricalDefinition("model/2", "A", 0.6, [2]int{6, 4})),
		decodeModel(t, categoricalDefinition("model/3", "B", 0.9, [2]int{2, 8})),
	}
}

func vote(prediction string, confidence float64) Vote {
	v := NewVote(field.StringValue(prediction))
	v.Confidence = confidence
	return v
}

func numericVote(prediction, confidence float64) Vote {
	v := NewVote(field.NumberValue(prediction))
	v.Confidence = confidence
	return v
}

func distribution(entries ...interface{}) tree.Distribution {
	var d tree.Distribution
	for i := 0; i+1 < len(entries); i += 2 {
		v, _ := field.ValueOf(entries[i])
		d = append(d, tree.Bin{Value: v, Count: entries[i+1].(int)})
	}
	return d
}
