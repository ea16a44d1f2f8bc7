package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPredicateMatches(t *testing.T) {
	fee := int64(5000)
	lat := 35.7762
	deadline := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	e := &Event{
		Latitude:            &lat,
		MinBoothFee:         &fee,
		Category:            "craft_fair",
		StartDate:           time.Date(2025, 1, 11, 10, 0, 0, 0, time.UTC),
		RequiresInsurance:   true,
		ApplicationDeadline: &deadline,
	}

	tests := []struct {
		name string
		pred Predicate
		want bool
	}{
		{"lat gte inclusive", Predicate{Column: ColLatitude, Op: OpGte, Value: 35.7762}, true},
		{"lat lte below", Predicate{Column: ColLatitude, Op: OpLte, Value: 35.7}, false},
		{"fee lte int64", Predicate{Column: ColMinBoothFee, Op: OpLte, Value: int64(5000)}, true},
		{"fee eq zero", Predicate{Column: ColMinBoothFee, Op: OpEq, Value: int64(0), OrNull: true}, false},
		{"category eq", Predicate{Column: ColCategory, Op: OpEq, Value: "craft_fair"}, true},
		{"category other", Predicate{Column: ColCategory, Op: OpEq, Value: "festival"}, false},
		{"start gte", Predicate{Column: ColStartDate, Op: OpGte, Value: time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)}, true},
		{"start lte", Predicate{Column: ColStartDate, Op: OpLte, Value: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)}, false},
		{"bool eq false", Predicate{Column: ColRequiresInsurance, Op: OpEq, Value: false, OrNull: true}, false},
		{"bool eq true", Predicate{Column: ColRequiresInsurance, Op: OpEq, Value: true}, true},
		{"deadline not null", Predicate{Column: ColApplicationDeadline, Op: OpNotNull}, true},
		{"type mismatch", Predicate{Column: ColCategory, Op: OpEq, Value: int64(1)}, false},
		{"unknown column", Predicate{Column: "nope", Op: OpNotNull}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred.Matches(e))
		})
	}
}

func TestPredicateMatches_NullColumns(t *testing.T) {
	e := &Event{}

	assert.False(t, Predicate{Column: ColLatitude, Op: OpGte, Value: -90.0}.Matches(e))
	assert.False(t, Predicate{Column: ColLongitude, Op: OpNotNull}.Matches(e))
	assert.False(t, Predicate{Column: ColApplicationDeadline, Op: OpNotNull}.Matches(e))
	assert.True(t, Predicate{Column: ColMinBoothFee, Op: OpLte, Value: int64(100), OrNull: true}.Matches(e))
	assert.False(t, Predicate{Column: ColMinBoothFee, Op: OpLte, Value: int64(100)}.Matches(e))
}

func TestMatchesAll(t *testing.T) {
	lat, lng := 35.0, -78.0
	e := &Event{Latitude: &lat, Longitude: &lng}

	assert.True(t, MatchesAll(e, nil))
	assert.True(t, MatchesAll(e, []Predicate{
		{Column: ColLatitude, Op: OpGte, Value: 34.0},
		{Column: ColLatitude, Op: OpLte, Value: 36.0},
	}))
	assert.False(t, MatchesAll(e, []Predicate{
		{Column: ColLatitude, Op: OpGte, Value: 34.0},
		{Column: ColLongitude, Op: OpGte, Value: -77.0},
	}))
}
