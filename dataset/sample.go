package dataset

import "fmt"

/*
Sample is an input record: field names (or ids) mapped to raw values as
read from a source, before any normalization by a model.
*/
type Sample map[string]interface{}

// Value returns the value of the sample for the given key and whether
// it has one
func (s Sample) Value(key string) (interface{}, bool) {
	v, ok := s[key]
	return v, ok
}

func (s Sample) String() string {
	return fmt.Sprintf("[%v]", map[string]interface{}(s))
}
