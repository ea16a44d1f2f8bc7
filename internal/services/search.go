package services

import (
	"math"
	"net/url"

	"github.com/joshua-takyi/vendorwize/internal/config"
	"github.com/joshua-takyi/vendorwize/internal/helpers"
	"github.com/joshua-takyi/vendorwize/internal/models"
)

// maxFeeLimit keeps maxFee·100 inside int64.
const maxFeeLimit = math.MaxInt64 / 100

type SearchRequest struct {
	Latitude    float64
	Longitude   float64
	RadiusMiles float64
	Filters     SearchFilters
}

type SearchCenter struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type SearchResult struct {
	Events       []*models.Event `json:"events"`
	SearchCenter SearchCenter    `json:"searchCenter"`
	RadiusMiles  float64         `json:"radiusMiles"`
	Filters      SearchFilters   `json:"filters"`
}

// ParseSearchQuery turns the query string of a nearby search into a request,
// filling the center and radius from defaults when they are omitted.
func ParseSearchQuery(q url.Values, defaults config.SearchDefaults) (SearchRequest, error) {
	req := SearchRequest{
		Latitude:    defaults.Latitude,
		Longitude:   defaults.Longitude,
		RadiusMiles: defaults.RadiusMiles,
	}

	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"lat", &req.Latitude},
		{"lng", &req.Longitude},
		{"radius", &req.RadiusMiles},
	} {
		v, err := helpers.ParseOptionalFloat(q, f.key)
		if err != nil {
			return SearchRequest{}, invalid(f.key, "must be a number")
		}
		if v != nil {
			*f.dst = *v
		}
	}

	filters := SearchFilters{Category: q.Get("category")}

	maxFee, err := helpers.ParseOptionalInt(q, "maxFee")
	if err != nil {
		return SearchRequest{}, invalid("maxFee", "must be a whole number")
	}
	if maxFee != nil && *maxFee < 0 {
		return SearchRequest{}, invalid("maxFee", "must not be negative")
	}
	if maxFee != nil && *maxFee > maxFeeLimit {
		return SearchRequest{}, invalid("maxFee", "must be at most %d", int64(maxFeeLimit))
	}
	filters.MaxFee = maxFee

	if filters.DateFrom, err = helpers.ParseOptionalDate(q, "dateFrom", false); err != nil {
		return SearchRequest{}, invalid("dateFrom", "must be YYYY-MM-DD or an RFC 3339 timestamp")
	}
	if filters.DateTo, err = helpers.ParseOptionalDate(q, "dateTo", true); err != nil {
		return SearchRequest{}, invalid("dateTo", "must be YYYY-MM-DD or an RFC 3339 timestamp")
	}

	for _, f := range []struct {
		key string
		dst *bool
	}{
		{"freeOnly", &filters.FreeOnly},
		{"indoor", &filters.Indoor},
		{"noInsurance", &filters.NoInsurance},
		{"noTent", &filters.NoTent},
		{"handmadeOk", &filters.HandmadeOk},
		{"hasDeadline", &filters.HasDeadline},
	} {
		v, err := helpers.ParseFlag(q, f.key)
		if err != nil {
			return SearchRequest{}, invalid(f.key, "must be true or false")
		}
		*f.dst = v
	}

	req.Filters = filters
	if err := req.Validate(); err != nil {
		return SearchRequest{}, err
	}
	return req, nil
}

// Validate checks the geometric inputs.
func (r SearchRequest) Validate() error {
	switch {
	case math.IsNaN(r.Latitude) || math.Abs(r.Latitude) > 90:
		return invalid("lat", "must be between -90 and 90")
	case math.IsNaN(r.Longitude) || math.Abs(r.Longitude) > 180:
		return invalid("lng", "must be between -180 and 180")
	case math.IsNaN(r.RadiusMiles) || math.IsInf(r.RadiusMiles, 0) || r.RadiusMiles < 0:
		return invalid("radius", "must be a non-negative number of miles")
	case r.Filters.MaxFee != nil && *r.Filters.MaxFee < 0:
		return invalid("maxFee", "must not be negative")
	case r.Filters.MaxFee != nil && *r.Filters.MaxFee > maxFeeLimit:
		return invalid("maxFee", "must be at most %d", int64(maxFeeLimit))
	}
	return nil
}

// Predicates returns the geo predicates followed by the facet predicates.
func (r SearchRequest) Predicates() []models.Predicate {
	box := NewBoundingBox(r.Latitude, r.Longitude, r.RadiusMiles)
	return ComposePredicates(box.Predicates(), r.Filters)
}
