package services

import (
	"math/rand"
	"testing"
	"time"

	"github.com/joshua-takyi/vendorwize/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// facetCorpus covers every combination the fee and flag facets care about.
func facetCorpus() []*models.Event {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	deadline := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	var events []*models.Event
	fees := []*int64{nil, ptr(int64(0)), ptr(int64(2500)), ptr(int64(5000)), ptr(int64(5001)), ptr(int64(15000))}
	for i, fee := range fees {
		for j := 0; j < 4; j++ {
			e := eventAt("event", 35.78, -78.64, base.AddDate(0, 0, i*4+j))
			e.MinBoothFee = fee
			e.Category = []string{"farmers_market", "craft_fair"}[j%2]
			e.IsIndoor = j%2 == 0
			e.RequiresInsurance = j == 1
			e.RequiresTent = j == 2
			e.RequiresHandmade = j == 3
			if (i+j)%3 == 0 {
				e.ApplicationDeadline = &deadline
			}
			events = append(events, e)
		}
	}
	return events
}

func matching(events []*models.Event, preds []models.Predicate) []*models.Event {
	var out []*models.Event
	for _, e := range events {
		if models.MatchesAll(e, preds) {
			out = append(out, e)
		}
	}
	return out
}

func TestComposePredicates_NoFiltersKeepsBase(t *testing.T) {
	base := NewBoundingBox(35.7796, -78.6382, 10).Predicates()
	preds := ComposePredicates(base, SearchFilters{})
	assert.Equal(t, base, preds)

	preds = ComposePredicates(base, SearchFilters{Category: "all"})
	assert.Equal(t, base, preds)
}

func TestComposePredicates_FreeOnlyWinsOverMaxFee(t *testing.T) {
	preds := ComposePredicates(nil, SearchFilters{FreeOnly: true, MaxFee: ptr(int64(100))})
	require.Len(t, preds, 1)
	assert.Equal(t, models.Predicate{Column: models.ColMinBoothFee, Op: models.OpEq, Value: int64(0), OrNull: true}, preds[0])
}

func TestComposePredicates_MaxFeeInCents(t *testing.T) {
	preds := ComposePredicates(nil, SearchFilters{MaxFee: ptr(int64(50))})
	require.Len(t, preds, 1)
	assert.Equal(t, models.Predicate{Column: models.ColMinBoothFee, Op: models.OpLte, Value: int64(5000), OrNull: true}, preds[0])
}

func TestFreeOnlyGuarantee(t *testing.T) {
	events := facetCorpus()
	got := matching(events, ComposePredicates(nil, SearchFilters{FreeOnly: true, MaxFee: ptr(int64(500))}))

	require.NotEmpty(t, got)
	for _, e := range got {
		if e.MinBoothFee != nil {
			assert.Equal(t, int64(0), *e.MinBoothFee)
		}
	}
	assert.Len(t, got, 8)
}

func TestMaxFeeGuarantee(t *testing.T) {
	events := facetCorpus()
	got := matching(events, ComposePredicates(nil, SearchFilters{MaxFee: ptr(int64(50))}))

	for _, e := range got {
		if e.MinBoothFee != nil {
			assert.LessOrEqual(t, *e.MinBoothFee, int64(5000))
		}
	}
	// nil, 0, 2500 and 5000 pass; 5001 and 15000 do not
	assert.Len(t, got, 16)
}

func TestFlagFacets(t *testing.T) {
	events := facetCorpus()

	for _, e := range matching(events, ComposePredicates(nil, SearchFilters{Indoor: true})) {
		assert.True(t, e.IsIndoor)
	}
	for _, e := range matching(events, ComposePredicates(nil, SearchFilters{NoInsurance: true})) {
		assert.False(t, e.RequiresInsurance)
	}
	for _, e := range matching(events, ComposePredicates(nil, SearchFilters{NoTent: true})) {
		assert.False(t, e.RequiresTent)
	}
	for _, e := range matching(events, ComposePredicates(nil, SearchFilters{HandmadeOk: true})) {
		assert.False(t, e.RequiresHandmade)
	}
	withDeadline := matching(events, ComposePredicates(nil, SearchFilters{HasDeadline: true}))
	require.NotEmpty(t, withDeadline)
	for _, e := range withDeadline {
		assert.NotNil(t, e.ApplicationDeadline)
	}
	for _, e := range matching(events, ComposePredicates(nil, SearchFilters{Category: "craft_fair"})) {
		assert.Equal(t, "craft_fair", e.Category)
	}
}

func TestDateFacets(t *testing.T) {
	events := facetCorpus()
	from := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 10, 23, 59, 59, 999_000_000, time.UTC)

	got := matching(events, ComposePredicates(nil, SearchFilters{DateFrom: &from, DateTo: &to}))
	require.Len(t, got, 6)
	for _, e := range got {
		assert.False(t, e.StartDate.Before(from))
		assert.False(t, e.StartDate.After(to))
	}
}

func TestComposePredicates_Commutative(t *testing.T) {
	events := facetCorpus()
	from := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	filterSets := []SearchFilters{
		{MaxFee: ptr(int64(60)), Indoor: true, HasDeadline: true},
		{FreeOnly: true, NoInsurance: true, NoTent: true},
		{Category: "farmers_market", HandmadeOk: true, DateFrom: &from, MaxFee: ptr(int64(25))},
		{Category: "craft_fair", Indoor: false, NoTent: true, HasDeadline: true, DateFrom: &from},
	}

	rng := rand.New(rand.NewSource(7))
	base := NewBoundingBox(35.7796, -78.6382, 10).Predicates()
	for _, f := range filterSets {
		preds := ComposePredicates(base, f)
		want := matching(events, preds)

		for i := 0; i < 20; i++ {
			shuffled := append([]models.Predicate(nil), preds...)
			rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
			assert.Equal(t, want, matching(events, shuffled))
		}
	}
}
