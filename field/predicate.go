package field

import (
	"strings"

	"github.com/pkg/errors"
)

// Operator is the comparison operator of a Predicate
type Operator int

const (
	// OpTrue is always satisfied
	OpTrue Operator = iota
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	// OpIn is satisfied by values in the predicate's list value
	OpIn
)

var operatorSymbols = map[Operator]string{
	OpTrue:         "TRUE",
	OpEqual:        "=",
	OpNotEqual:     "!=",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpIn:           "in",
}

// missingSuffix marks operators that are also satisfied by missing values
const missingSuffix = "*"

/*
ParseOperator takes an operator as it appears in a model definition,
optionally with the trailing missing marker "*", and returns the
Operator and whether the marker was present.
*/
func ParseOperator(s string) (Operator, bool, error) {
	missing := strings.HasSuffix(s, missingSuffix)
	symbol := strings.TrimSuffix(s, missingSuffix)
	if symbol == "true" {
		symbol = "TRUE"
	}
	for op, sym := range operatorSymbols {
		if sym == symbol {
			return op, missing, nil
		}
	}
	return OpTrue, false, errors.Wrapf(ErrUnknownOperator, "%q", s)
}

func (o Operator) String() string {
	return operatorSymbols[o]
}

/*
Predicate is the condition guarding a tree node: an operator applied on
the value of a field of the input record and a comparison value. When
Term is set, the operator compares the number of occurrences of the term
in a text or items field with the comparison value. When Missing is set,
inputs without a value for the field satisfy the predicate too.
*/
type Predicate struct {
	Operator Operator
	Missing  bool
	FieldID  string
	Value    Value
	Term     string
}

// True returns the predicate that is always satisfied
func True() *Predicate {
	return &Predicate{Operator: OpTrue}
}

// IsTrue returns whether the predicate is always satisfied
func (p *Predicate) IsTrue() bool {
	return p.Operator == OpTrue
}

/*
Apply takes a normalized input record and the view of the fields of the
model and returns whether the input satisfies the predicate.

Predicates on fields unknown to the view are never satisfied. An
ErrTypeMismatch error is returned when the input value or the
comparison value cannot be compared with the operator.
*/
func (p *Predicate) Apply(input Input, view *View) (bool, error) {
	if p.Operator == OpTrue {
		return true, nil
	}
	f, ok := view.Field(p.FieldID)
	if !ok {
		return false, nil
	}
	in, ok := input[p.FieldID]
	if !ok || in.IsNull() {
		return p.Missing || (p.Operator == OpEqual && p.Value.IsNull()), nil
	}
	if p.Value.IsNull() {
		return p.Operator == OpNotEqual, nil
	}
	if p.Operator == OpIn {
		if p.Value.Kind() != List {
			return false, errors.Wrapf(ErrTypeMismatch, "field %s: in operator on %v", p.FieldID, p.Value)
		}
		for _, e := range p.Value.List() {
			if in.Equal(e) {
				return true, nil
			}
		}
		return false, nil
	}
	if p.Term != "" {
		text, ok := in.Text()
		if !ok {
			return false, errors.Wrapf(ErrTypeMismatch, "field %s: counting term %q on %v", p.FieldID, p.Term, in)
		}
		var count int
		var err error
		switch f.Optype {
		case Text:
			forms := append([]string{p.Term}, f.TermForms[p.Term]...)
			count, err = TermCount(text, forms, f.TermAnalysis)
		case Items:
			count, err = ItemCount(text, p.Term, f.ItemAnalysis)
		default:
			return false, errors.Wrapf(ErrTermOnNonTextField, "field %s", p.FieldID)
		}
		if err != nil {
			return false, errors.Wrapf(err, "field %s: counting term %q", p.FieldID, p.Term)
		}
		in = NumberValue(float64(count))
	}
	ok, err := compare(in, p.Value, p.Operator)
	if err != nil {
		return false, errors.Wrapf(err, "field %s", p.FieldID)
	}
	return ok, nil
}

func compare(a, b Value, op Operator) (bool, error) {
	an, aok := a.Number()
	bn, bok := b.Number()
	if aok && bok {
		switch op {
		case OpEqual:
			return an == bn, nil
		case OpNotEqual:
			return an != bn, nil
		case OpLess:
			return an < bn, nil
		case OpLessEqual:
			return an <= bn, nil
		case OpGreater:
			return an > bn, nil
		case OpGreaterEqual:
			return an >= bn, nil
		}
	}
	switch op {
	case OpEqual:
		return a.Equal(b), nil
	case OpNotEqual:
		return !a.Equal(b), nil
	}
	return false, errors.Wrapf(ErrTypeMismatch, "%v %v %v", a, op, b)
}

// IsFullTerm returns whether the predicate's term is matched against
// the whole value of its text field rather than as a token
func (p *Predicate) IsFullTerm(view *View) bool {
	if p.Term == "" {
		return false
	}
	f, ok := view.Field(p.FieldID)
	if !ok || f.Optype != Text {
		return false
	}
	switch f.TermAnalysis.TokenMode {
	case FullTermsOnly:
		return true
	case AllTerms:
		return IsFullTermPattern(p.Term)
	}
	return false
}
