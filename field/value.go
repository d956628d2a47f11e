package field

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Kind identifies the variant held by a Value
type Kind int

const (
	// Null is the kind of the zero Value, the null sentinel
	Null Kind = iota
	// Number is the kind of numeric values
	Number
	// String is the kind of textual values
	String
	// List is the kind of values holding a sequence of values
	List
)

/*
Value is a closed sum type for the values that appear in model
definitions and input records: null, numbers, strings and lists of
values. The zero Value is the null sentinel.
*/
type Value struct {
	kind   Kind
	number float64
	text   string
	list   []Value
}

// NullValue returns the null sentinel
func NullValue() Value {
	return Value{}
}

// NumberValue returns a Value holding the given number
func NumberValue(f float64) Value {
	return Value{kind: Number, number: f}
}

// StringValue returns a Value holding the given string
func StringValue(s string) Value {
	return Value{kind: String, text: s}
}

// ListValue returns a Value holding the given values
func ListValue(vs ...Value) Value {
	l := make([]Value, len(vs))
	copy(l, vs)
	return Value{kind: List, list: l}
}

/*
ValueOf takes a value as decoded by encoding/json (nil, float64,
json.Number, string or []interface{}) or any integer type and returns
the corresponding Value. Booleans, maps and other types produce an
ErrUnsupportedValue error.
*/
func ValueOf(x interface{}) (Value, error) {
	switch v := x.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return v, nil
	case string:
		return StringValue(v), nil
	case float64:
		return NumberValue(v), nil
	case json.Number, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return NullValue(), errors.Wrapf(ErrUnsupportedValue, "%v: %v", v, err)
		}
		return NumberValue(f), nil
	case []interface{}:
		l := make([]Value, 0, len(v))
		for _, e := range v {
			ev, err := ValueOf(e)
			if err != nil {
				return NullValue(), err
			}
			l = append(l, ev)
		}
		return Value{kind: List, list: l}, nil
	case []string:
		l := make([]Value, 0, len(v))
		for _, e := range v {
			l = append(l, StringValue(e))
		}
		return Value{kind: List, list: l}, nil
	}
	return NullValue(), errors.Wrapf(ErrUnsupportedValue, "%T", x)
}

// Kind returns the kind of the value
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull returns whether the value is the null sentinel
func (v Value) IsNull() bool {
	return v.kind == Null
}

// Number returns the number held by the value and whether it holds one
func (v Value) Number() (float64, bool) {
	return v.number, v.kind == Number
}

// Text returns the string held by the value and whether it holds one
func (v Value) Text() (string, bool) {
	return v.text, v.kind == String
}

// List returns the values held by a List value, nil for other kinds
func (v Value) List() []Value {
	if v.kind != List {
		return nil
	}
	return v.list
}

// Equal returns whether both values are of the same kind and hold
// equal contents
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Number:
		return v.number == o.number
	case String:
		return v.text == o.text
	case List:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
	}
	return true
}

/*
Less defines a total order on values used to break ties
deterministically: null sorts first, then numbers, strings and lists,
and values of the same kind sort by their contents.
*/
func (v Value) Less(o Value) bool {
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	switch v.kind {
	case Number:
		return v.number < o.number
	case String:
		return v.text < o.text
	case List:
		for i := 0; i < len(v.list) && i < len(o.list); i++ {
			if v.list[i].Less(o.list[i]) {
				return true
			}
			if o.list[i].Less(v.list[i]) {
				return false
			}
		}
		return len(v.list) < len(o.list)
	}
	return false
}

// Interface returns the value as a nil, float64, string or []interface{}
func (v Value) Interface() interface{} {
	switch v.kind {
	case Number:
		return v.number
	case String:
		return v.text
	case List:
		l := make([]interface{}, len(v.list))
		for i, e := range v.list {
			l[i] = e.Interface()
		}
		return l
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case Number:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case String:
		return v.text
	case List:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	}
	return "None"
}

// MarshalJSON encodes the value as its natural JSON counterpart
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes any null, number, string or array JSON value
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	pv, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = pv
	return nil
}

// SortValues sorts the given values in place according to Less
func SortValues(vs []Value) {
	sort.SliceStable(vs, func(i, j int) bool { return vs[i].Less(vs[j]) })
}
