package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const classificationModel = `{
	"resource": "model/5f0000000000000000000001",
	"name": "colors",
	"description": "a test model",
	"status": {"code": 5, "message": "The model has been created"},
	"objective_fields": ["000003"],
	"model": {
		"importance": [["000000", 0.7], ["000001", 0.3], ["999999", 0.1]],
		"distribution": {"training": {"categories": [["A", 60], ["B", 40]]}},
		"fields": {
			"000000": {"name": "x", "optype": "numeric", "column_number": 0},
			"000001": {"name": "color", "optype": "categorical", "column_number": 1,
				"summary": {"categories": [["red", 30], ["blue", 70]]}},
			"000002": {"name": "review", "optype": "text", "column_number": 2,
				"term_analysis": {"case_sensitive": false, "token_mode": "all"}},
			"000003": {"name": "y", "optype": "categorical", "column_number": 3,
				"summary": {"categories": [["A", 60], ["B", 40]]}}
		},
		"model_fields": {
			"000000": {"optype": "numeric", "column_number": 0},
			"000001": {"optype": "categorical", "column_number": 1},
			"000003": {"optype": "categorical", "column_number": 3}
		},
		"root": {
			"id": 0, "predicate": true, "count": 100, "output": "A", "confidence": 0.502,
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
		}
	}
}`

const regressionModel = `{
	"resource": "model/5f0000000000000000000002",
	"status": {"code": 5},
	"model": {
		"objective_field": "000001",
		"fields": {
			"000000": {"name": "x", "optype": "numeric", "column_number": 0},
			"000001": {"name": "y", "optype": "numeric", "column_number": 1}
		},
		"root": {
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
		}
	}
}`

func decode(t *testing.T, definition string) *Model {
	m, err := Decode([]byte(definition))
	require.NoError(t, err)
	return m
}

func replace(definition, old, new string) string {
	return strings.Replace(definition, old, new, 1)
}
