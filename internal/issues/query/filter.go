// Package query turns client-supplied field/value pairs into typed filter
// predicates and partial updates over issues. Only fields known to
// domain.ParseField ever reach a store.
package query

import (
	"net/url"
	"sort"
	"strings"

	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/domain"
)

// Condition is a single equality test against one issue field
type Condition struct {
	Field domain.Field
	Raw   string
	Value any
}

// Satisfiable reports whether any stored issue could match. Pass-through
// text for the open flag and unparseable dates never can.
func (c Condition) Satisfiable() bool {
	return c.Field.Accepts(c.Value)
}

// Matches tests the condition against an issue.
func (c Condition) Matches(issue domain.Issue) bool {
	if !c.Satisfiable() {
		return false
	}
	return domain.Equal(issue.Value(c.Field), c.Value)
}

// Filter is a conjunction of conditions. The zero Filter matches every issue.
type Filter struct {
	Conditions []Condition
	// Ignored holds client keys that are not issue fields. Any entry makes
	// the filter unsatisfiable.
	Ignored []string
}

// BuildFilter coerces query parameters into a Filter. Unknown keys are
// recorded in Ignored, never reach a store, and make the filter match
// nothing. A malformed _id returns
// domain.ErrInvalidID.
func BuildFilter(params map[string]string) (Filter, error) {
	var f Filter
	for key, raw := range params {
		field, ok := domain.ParseField(key)
		if !ok {
			f.Ignored = append(f.Ignored, key)
			continue
		}
		v, err := domain.Coerce(field, raw)
		if err != nil {
			return Filter{}, err
		}
		f.Conditions = append(f.Conditions, Condition{Field: field, Raw: raw, Value: v})
	}
	sort.Slice(f.Conditions, func(i, j int) bool {
		return f.Conditions[i].Field.Order() < f.Conditions[j].Field.Order()
	})
	sort.Strings(f.Ignored)
	return f, nil
}

// Match reports whether the issue satisfies every condition.
func (f Filter) Match(issue domain.Issue) bool {
	if len(f.Ignored) > 0 {
		return false
	}
	for _, c := range f.Conditions {
		if !c.Matches(issue) {
			return false
		}
	}
	return true
}

// Satisfiable is false when some condition can never match. A key that
// names no issue field can never match either.
func (f Filter) Satisfiable() bool {
	if len(f.Ignored) > 0 {
		return false
	}
	for _, c := range f.Conditions {
		if !c.Satisfiable() {
			return false
		}
	}
	return true
}

// Key is a canonical representation of the filter, stable across
// parameter ordering.
func (f Filter) Key() string {
	if len(f.Conditions) == 0 {
		return "*"
	}
	parts := make([]string, 0, len(f.Conditions))
	for _, c := range f.Conditions {
		parts = append(parts, string(c.Field)+"="+url.QueryEscape(c.Raw))
	}
	return strings.Join(parts, "&")
}
