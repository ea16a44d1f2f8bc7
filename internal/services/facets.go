package services

import (
	"strings"
	"time"

	"github.com/joshua-takyi/vendorwize/internal/models"
)

// SearchFilters are the optional facets of a nearby search. Zero values
// leave a facet off.
type SearchFilters struct {
	Category    string     `json:"category,omitempty"`
	MaxFee      *int64     `json:"maxFee,omitempty"` // whole currency units
	FreeOnly    bool       `json:"freeOnly,omitempty"`
	DateFrom    *time.Time `json:"dateFrom,omitempty"`
	DateTo      *time.Time `json:"dateTo,omitempty"`
	Indoor      bool       `json:"indoor,omitempty"`
	NoInsurance bool       `json:"noInsurance,omitempty"`
	NoTent      bool       `json:"noTent,omitempty"`
	HandmadeOk  bool       `json:"handmadeOk,omitempty"`
	HasDeadline bool       `json:"hasDeadline,omitempty"`
}

type facet func(f SearchFilters) (models.Predicate, bool)

// facets is the full set of optional conditions. Each one is independent of
// the others, so the order only affects how the query is written.
var facets = []facet{
	categoryFacet,
	feeFacet,
	dateFromFacet,
	dateToFacet,
	flagFacet(func(f SearchFilters) bool { return f.Indoor }, models.ColIsIndoor, true, false),
	flagFacet(func(f SearchFilters) bool { return f.NoInsurance }, models.ColRequiresInsurance, false, true),
	flagFacet(func(f SearchFilters) bool { return f.NoTent }, models.ColRequiresTent, false, true),
	flagFacet(func(f SearchFilters) bool { return f.HandmadeOk }, models.ColRequiresHandmade, false, true),
	deadlineFacet,
}

// ComposePredicates appends the predicate of every enabled facet to base.
// The result is a pure conjunction.
func ComposePredicates(base []models.Predicate, f SearchFilters) []models.Predicate {
	preds := make([]models.Predicate, 0, len(base)+len(facets))
	preds = append(preds, base...)
	for _, fc := range facets {
		if p, ok := fc(f); ok {
			preds = append(preds, p)
		}
	}
	return preds
}

func categoryFacet(f SearchFilters) (models.Predicate, bool) {
	c := strings.TrimSpace(f.Category)
	if c == "" || strings.EqualFold(c, "all") {
		return models.Predicate{}, false
	}
	return models.Predicate{Column: models.ColCategory, Op: models.OpEq, Value: c}, true
}

// feeFacet covers both fee filters; freeOnly wins over maxFee.
func feeFacet(f SearchFilters) (models.Predicate, bool) {
	switch {
	case f.FreeOnly:
		return models.Predicate{Column: models.ColMinBoothFee, Op: models.OpEq, Value: int64(0), OrNull: true}, true
	case f.MaxFee != nil:
		return models.Predicate{Column: models.ColMinBoothFee, Op: models.OpLte, Value: *f.MaxFee * 100, OrNull: true}, true
	}
	return models.Predicate{}, false
}

func dateFromFacet(f SearchFilters) (models.Predicate, bool) {
	if f.DateFrom == nil {
		return models.Predicate{}, false
	}
	return models.Predicate{Column: models.ColStartDate, Op: models.OpGte, Value: f.DateFrom.UTC()}, true
}

func dateToFacet(f SearchFilters) (models.Predicate, bool) {
	if f.DateTo == nil {
		return models.Predicate{}, false
	}
	return models.Predicate{Column: models.ColStartDate, Op: models.OpLte, Value: f.DateTo.UTC()}, true
}

func deadlineFacet(f SearchFilters) (models.Predicate, bool) {
	if !f.HasDeadline {
		return models.Predicate{}, false
	}
	return models.Predicate{Column: models.ColApplicationDeadline, Op: models.OpNotNull}, true
}

func flagFacet(enabled func(SearchFilters) bool, column string, want, orNull bool) facet {
	return func(f SearchFilters) (models.Predicate, bool) {
		if !enabled(f) {
			return models.Predicate{}, false
		}
		return models.Predicate{Column: column, Op: models.OpEq, Value: want, OrNull: orNull}, true
	}
}
