package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	yaml "gopkg.in/yaml.v2"
)

/*
readInputs reads the input records from the file at path, or STDIN if
path is empty or -. The file holds a single record as a YAML or JSON
object, or a list of them.
*/
func readInputs(path string) ([]map[string]interface{}, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening input at %s", path)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	return parseInputs(data)
}

func parseInputs(data []byte) ([]map[string]interface{}, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parsing input")
	}
	var entries []interface{}
	switch raw := raw.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		entries = raw
	default:
		entries = []interface{}{raw}
	}
	inputs := make([]map[string]interface{}, 0, len(entries))
	for i, e := range entries {
		input, err := cast.ToStringMapE(e)
		if err != nil {
			return nil, errors.Wrapf(err, "input %d is not a record", i)
		}
		for k, v := range input {
			input[k] = normalize(v)
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

// normalize turns the lists decoded from YAML into []interface{} of
// plain values
func normalize(v interface{}) interface{} {
	list, ok := v.([]interface{})
	if !ok {
		return v
	}
	result := make([]interface{}, len(list))
	for i, e := range list {
		result[i] = normalize(e)
	}
	return result
}
