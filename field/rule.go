package field

import (
	"fmt"
	"strings"
)

// Rule renders the predicate as a phrase using the view's unique field
// names, e.g. "petal length > 2.45", "review contains great more than
// 1 time or missing".
func (p *Predicate) Rule(view *View) string {
	if p.Operator == OpTrue {
		return p.Operator.String()
	}
	name := view.Name(p.FieldID)
	missing := ""
	if p.Missing {
		missing = " or missing"
	}
	if p.Term != "" {
		if n, ok := p.Value.Number(); ok {
			return p.termRule(view, name, n) + missing
		}
	}
	if p.Value.IsNull() {
		if p.Operator == OpEqual {
			return fmt.Sprintf("%s is None%s", name, missing)
		}
		return fmt.Sprintf("%s is not None%s", name, missing)
	}
	return fmt.Sprintf("%s %s %v%s", name, p.Operator, p.Value, missing)
}

func (p *Predicate) termRule(view *View, name string, n float64) string {
	full := p.IsFullTerm(view)
	parts := []string{name}
	if (p.Operator == OpLess && n <= 1) || (p.Operator == OpLessEqual && n == 0) {
		if full {
			parts = append(parts, "is not equal to")
		} else {
			parts = append(parts, "does not contain")
		}
		return strings.Join(append(parts, p.Term), " ")
	}
	if full {
		parts = append(parts, "is equal to")
	} else {
		parts = append(parts, "contains")
	}
	parts = append(parts, p.Term)
	if !full && !(p.Operator == OpGreater && n == 0) {
		if q := countQualifier(p.Operator, n); q != "" {
			parts = append(parts, q)
		}
	}
	return strings.Join(parts, " ")
}

func countQualifier(op Operator, n float64) string {
	times := "times"
	if n == 1 {
		times = "time"
	}
	count := NumberValue(n).String()
	switch op {
	case OpLess:
		return fmt.Sprintf("less than %s %s", count, times)
	case OpLessEqual:
		return fmt.Sprintf("no more than %s %s", count, times)
	case OpGreater:
		return fmt.Sprintf("more than %s %s", count, times)
	case OpGreaterEqual:
		return fmt.Sprintf("%s %s at most", count, times)
	case OpEqual:
		return fmt.Sprintf("exactly %s %s", count, times)
	case OpNotEqual:
		return fmt.Sprintf("not exactly %s %s", count, times)
	}
	return ""
}
