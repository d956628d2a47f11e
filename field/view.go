package field

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// DefaultMissingTokens lists the string values that are taken as
// missing in input records unless a model declares its own.
var DefaultMissingTokens = []string{
	"", "N/A", "n/a", "NULL", "null", "-", "#DIV/0", "#REF!", "#NAME?",
	"NIL", "nil", "NA", "na", "#VALUE!", "#NULL!", "NaN", "#N/A", "#NUM!", "?",
}

// Input is an input record normalized by a View: field ids to values.
// Absent fields have no entry.
type Input map[string]Value

/*
View wraps the fields of a model together with its objective field and
missing tokens. It holds unique display names for every field and the
maps between those names and the field ids.
*/
type View struct {
	fields           map[string]*Field
	objectiveID      string
	missingTokens    map[string]struct{}
	order            []string
	nameByID         map[string]string
	idByName         map[string]string
	idByOriginalName map[string]string
}

/*
NewView takes a map of field ids to fields, the id of the objective field
and the list of missing tokens (DefaultMissingTokens when nil) and returns
a View on them.

Colliding display names are made unique deterministically: fields are
named in order, objective field first and then by column number and id,
and a name already taken gets the field's column number appended and,
if still taken, an underscore and the field id.
*/
func NewView(fields map[string]*Field, objectiveID string, missingTokens []string) *View {
	if missingTokens == nil {
		missingTokens = DefaultMissingTokens
	}
	v := &View{
		fields:           fields,
		objectiveID:      objectiveID,
		missingTokens:    make(map[string]struct{}, len(missingTokens)),
		nameByID:         make(map[string]string, len(fields)),
		idByName:         make(map[string]string, len(fields)),
		idByOriginalName: make(map[string]string, len(fields)),
	}
	for _, t := range missingTokens {
		v.missingTokens[t] = struct{}{}
	}
	for id := range fields {
		v.order = append(v.order, id)
	}
	sort.Slice(v.order, func(i, j int) bool {
		a, b := v.order[i], v.order[j]
		if (a == objectiveID) != (b == objectiveID) {
			return a == objectiveID
		}
		ca, cb := fields[a].ColumnNumber, fields[b].ColumnNumber
		if ca != cb {
			return ca < cb
		}
		return a < b
	})
	for _, id := range v.order {
		f := fields[id]
		name := f.Name
		if _, taken := v.idByName[name]; taken {
			if f.ColumnNumber >= 0 {
				name = fmt.Sprintf("%s%d", name, f.ColumnNumber)
			}
			if _, taken = v.idByName[name]; taken {
				name = fmt.Sprintf("%s_%s", name, id)
			}
		}
		v.nameByID[id] = name
		v.idByName[name] = id
		if _, ok := v.idByOriginalName[f.Name]; !ok {
			v.idByOriginalName[f.Name] = id
		}
	}
	return v
}

// Field returns the field with the given id and whether it exists
func (v *View) Field(id string) (*Field, bool) {
	f, ok := v.fields[id]
	return f, ok
}

// Fields returns the fields in the view, objective first, then by
// column number and id
func (v *View) Fields() []*Field {
	result := make([]*Field, 0, len(v.order))
	for _, id := range v.order {
		result = append(result, v.fields[id])
	}
	return result
}

// ObjectiveID returns the id of the objective field
func (v *View) ObjectiveID() string {
	return v.objectiveID
}

// Name returns the unique display name for the given field id, or the
// id itself if the field is unknown
func (v *View) Name(id string) string {
	if n, ok := v.nameByID[id]; ok {
		return n
	}
	return id
}

// ID returns the id for a unique display name, falling back to the
// original field names
func (v *View) ID(name string) (string, bool) {
	if id, ok := v.idByName[name]; ok {
		return id, true
	}
	id, ok := v.idByOriginalName[name]
	return id, ok
}

// IsMissing returns whether a raw input value stands for a missing value
func (v *View) IsMissing(raw interface{}) bool {
	if raw == nil {
		return true
	}
	s, ok := raw.(string)
	if !ok {
		return false
	}
	_, missing := v.missingTokens[s]
	return missing
}

/*
Filter takes an input record keyed by field id (or by field name if
byName is true) and returns the normalized Input. Missing values, the
objective field and fields unknown to the view are dropped. Values are
converted according to the optype of their field: numeric fields accept
numbers and numeric strings (with the field's prefix and suffix
stripped), the rest accept strings or anything cast can render as one.
A value that cannot be converted produces an ErrTypeMismatch error
naming the field.
*/
func (v *View) Filter(input map[string]interface{}, byName bool) (Input, error) {
	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	result := make(Input, len(input))
	for _, key := range keys {
		raw := input[key]
		if v.IsMissing(raw) {
			continue
		}
		id := key
		if byName {
			var ok bool
			if id, ok = v.ID(key); !ok {
				continue
			}
		}
		if id == v.objectiveID {
			continue
		}
		f, ok := v.fields[id]
		if !ok {
			continue
		}
		value, err := convert(f, raw)
		if err != nil {
			return nil, errors.Wrapf(ErrTypeMismatch, "field %s (%s): %v", id, f.Name, err)
		}
		result[id] = value
	}
	return result, nil
}

func convert(f *Field, raw interface{}) (Value, error) {
	switch r := raw.(type) {
	case Value:
		return r, nil
	case []interface{}:
		l := make([]Value, 0, len(r))
		for _, e := range r {
			ev, err := convert(f, e)
			if err != nil {
				return NullValue(), err
			}
			l = append(l, ev)
		}
		return ListValue(l...), nil
	case []string:
		l := make([]Value, 0, len(r))
		for _, e := range r {
			ev, err := convert(f, e)
			if err != nil {
				return NullValue(), err
			}
			l = append(l, ev)
		}
		return ListValue(l...), nil
	}
	if f.Optype == Numeric {
		if s, ok := raw.(string); ok {
			s = strings.TrimSpace(s)
			s = strings.TrimPrefix(s, f.Prefix)
			s = strings.TrimSuffix(s, f.Suffix)
			raw = strings.TrimSpace(s)
		}
		n, err := cast.ToFloat64E(raw)
		if err != nil {
			return NullValue(), err
		}
		return NumberValue(n), nil
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return NullValue(), err
	}
	return StringValue(s), nil
}
