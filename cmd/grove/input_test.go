package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInputs(t *testing.T) {
	inputs, err := parseInputs([]byte(`{"x": 7, "color": "red", "tags": ["a", "b"]}`))
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, 7, inputs[0]["x"])
	assert.Equal(t, "red", inputs[0]["color"])
	assert.Equal(t, []interface{}{"a", "b"}, inputs[0]["tags"])

	inputs, err = parseInputs([]byte("- x: 1\n- x: 2.5\n  color: blue\n"))
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, 2.5, inputs[1]["x"])

	inputs, err = parseInputs(nil)
	require.NoError(t, err)
	assert.Empty(t, inputs)

	_, err = parseInputs([]byte(`[1, 2]`))
	assert.Error(t, err)
}
