package services

import (
	"math"

	"github.com/joshua-takyi/vendorwize/internal/models"
)

// milesPerDegree is the flat-earth approximation used for both axes at the equator.
const milesPerDegree = 69.0

// BoundingBox approximates a circular search radius with a latitude/longitude rectangle.
// Records near the corners may lie farther than the radius from the center.
type BoundingBox struct {
	LatMin float64 `json:"latMin"`
	LatMax float64 `json:"latMax"`
	LonMin float64 `json:"lonMin"`
	LonMax float64 `json:"lonMax"`
	// AllLongitudes is set near the poles, where the longitude span covers the globe.
	AllLongitudes bool `json:"allLongitudes,omitempty"`
}

// NewBoundingBox builds the box around (lat, lng). The inputs are assumed
// valid: |lat| <= 90, |lng| <= 180 and a finite radius >= 0.
func NewBoundingBox(lat, lng, radiusMiles float64) BoundingBox {
	latDelta := radiusMiles / milesPerDegree

	cosLat := math.Cos(lat * math.Pi / 180)
	var lonDelta float64
	all := false
	if cosLat < 1e-9 {
		lonDelta, all = 180, true
	} else {
		lonDelta = radiusMiles / (milesPerDegree * cosLat)
		if lonDelta >= 180 {
			lonDelta, all = 180, true
		}
	}

	return BoundingBox{
		LatMin:        lat - latDelta,
		LatMax:        lat + latDelta,
		LonMin:        lng - lonDelta,
		LonMax:        lng + lonDelta,
		AllLongitudes: all,
	}
}

// Predicates restricts records to the box. Bounds are inclusive and records
// without coordinates never match.
func (b BoundingBox) Predicates() []models.Predicate {
	preds := []models.Predicate{
		{Column: models.ColLatitude, Op: models.OpGte, Value: b.LatMin},
		{Column: models.ColLatitude, Op: models.OpLte, Value: b.LatMax},
	}
	if b.AllLongitudes {
		return append(preds, models.Predicate{Column: models.ColLongitude, Op: models.OpNotNull})
	}
	return append(preds,
		models.Predicate{Column: models.ColLongitude, Op: models.OpGte, Value: b.LonMin},
		models.Predicate{Column: models.ColLongitude, Op: models.OpLte, Value: b.LonMax},
	)
}
