package metadata

import (
	"slices"
	"sort"
	"strings"
)

// Operator is a filter predicate operator supported by instance APIs
type Operator string

const (
	// OperatorEq matches fields equal to the value
	OperatorEq Operator = "eq"

	// OperatorToken matches fields containing every word of the value
	OperatorToken Operator = "token"

	// OperatorIn matches fields equal to any of the values
	OperatorIn Operator = "in"
)

// Junction combines the predicates of a filter
type Junction string

const (
	// JunctionAnd requires every predicate to match
	JunctionAnd Junction = "AND"

	// JunctionOr requires at least one predicate to match
	JunctionOr Junction = "OR"
)

// Predicate is a single field condition
type Predicate struct {
	Operator Operator
	Value    string
	Values   []string
}

// Eq builds an equality predicate
func Eq(value string) Predicate { return Predicate{Operator: OperatorEq, Value: value} }

// Token builds a token predicate
func Token(value string) Predicate { return Predicate{Operator: OperatorToken, Value: value} }

// In builds a membership predicate
func In(values ...string) Predicate { return Predicate{Operator: OperatorIn, Values: values} }

// IsEmpty reports whether the predicate has no value. Empty predicates are ignored,
// as instance APIs ignore filters on undefined values.
func (p Predicate) IsEmpty() bool {
	if p.Operator == OperatorIn {
		return len(p.Values) == 0
	}
	return p.Value == ""
}

// Expression renders the predicate in the instance API filter syntax for field
func (p Predicate) Expression(field string) string {
	if p.Operator == OperatorIn {
		return field + ":in:[" + strings.Join(p.Values, ",") + "]"
	}
	return field + ":" + string(p.Operator) + ":" + p.Value
}

// Query selects objects of a collection
type Query struct {
	// Fields is a field selection expression, e.g. "id,name,categoryCombo[id,name]"
	Fields string

	Filter map[string]Predicate

	// RootJunction combines the filter predicates, AND when empty
	RootJunction Junction
}

// ActiveFilter returns the non-empty predicates of the query sorted by field name
func (q Query) ActiveFilter() []string {
	fields := make([]string, 0, len(q.Filter))
	for field, predicate := range q.Filter {
		if !predicate.IsEmpty() {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	return fields
}

// Matches evaluates the query filter against an object
func (q Query) Matches(obj Object) bool {
	fields := q.ActiveFilter()
	if len(fields) == 0 {
		return true
	}

	or := q.RootJunction == JunctionOr
	for _, field := range fields {
		ok := q.Filter[field].matches(obj, field)
		if or && ok {
			return true
		}
		if !or && !ok {
			return false
		}
	}
	return !or
}

func (p Predicate) matches(obj Object, field string) bool {
	raw, ok := obj.Lookup(field)
	if !ok {
		return false
	}
	value, ok := raw.(string)
	if !ok {
		return false
	}

	switch p.Operator {
	case OperatorEq:
		return value == p.Value
	case OperatorIn:
		return slices.Contains(p.Values, value)
	case OperatorToken:
		haystack := strings.ToLower(value)
		for _, word := range strings.Fields(strings.ToLower(p.Value)) {
			if !strings.Contains(haystack, word) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// CleanOrgUnitPath returns the last segment of an organisation unit path such as
// "/ImspTQPwCqd/O6uvpzGd5pu". Other ids are returned unchanged.
func CleanOrgUnitPath(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}
