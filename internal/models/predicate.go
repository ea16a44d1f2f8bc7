package models

import (
	"strings"
	"time"
)

type Operator string

const (
	OpEq      Operator = "eq"
	OpGte     Operator = "gte"
	OpLte     Operator = "lte"
	OpNotNull Operator = "notnull"
)

// Predicate is a single backend-neutral condition on an event column.
// Value is one of float64, int64, bool, string or time.Time.
// When OrNull is set the condition also holds for a null column.
type Predicate struct {
	Column string
	Op     Operator
	Value  any
	OrNull bool
}

// Matches evaluates p against e the way the database backends do.
func (p Predicate) Matches(e *Event) bool {
	v, present := e.columnValue(p.Column)
	if !present {
		return p.OrNull
	}
	switch p.Op {
	case OpNotNull:
		return true
	case OpEq:
		c, ok := compareValues(v, p.Value)
		return ok && c == 0
	case OpGte:
		c, ok := compareValues(v, p.Value)
		return ok && c >= 0
	case OpLte:
		c, ok := compareValues(v, p.Value)
		return ok && c <= 0
	}
	return false
}

// MatchesAll reports whether e satisfies the conjunction of preds.
func MatchesAll(e *Event, preds []Predicate) bool {
	for _, p := range preds {
		if !p.Matches(e) {
			return false
		}
	}
	return true
}

// columnValue returns the value of a filterable column and whether it is non-null.
func (e *Event) columnValue(col string) (any, bool) {
	switch col {
	case ColLatitude:
		if e.Latitude == nil {
			return nil, false
		}
		return *e.Latitude, true
	case ColLongitude:
		if e.Longitude == nil {
			return nil, false
		}
		return *e.Longitude, true
	case ColCategory:
		return e.Category, true
	case ColMinBoothFee:
		if e.MinBoothFee == nil {
			return nil, false
		}
		return *e.MinBoothFee, true
	case ColStartDate:
		return e.StartDate, true
	case ColIsIndoor:
		return e.IsIndoor, true
	case ColRequiresInsurance:
		return e.RequiresInsurance, true
	case ColRequiresTent:
		return e.RequiresTent, true
	case ColRequiresHandmade:
		return e.RequiresHandmade, true
	case ColApplicationDeadline:
		if e.ApplicationDeadline == nil {
			return nil, false
		}
		return *e.ApplicationDeadline, true
	}
	return nil, false
}

func compareValues(a, b any) (int, bool) {
	switch av := a.(type) {
	case float64:
		bv, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		return compareFloat(av, bv), true
	case int64:
		if bv, ok := b.(int64); ok {
			switch {
			case av < bv:
				return -1, true
			case av > bv:
				return 1, true
			}
			return 0, true
		}
		bv, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		return compareFloat(float64(av), bv), true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case bool:
		bv, ok := b.(bool)
		if !ok || av != bv {
			return 1, ok
		}
		return 0, true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
