package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	EventsTable   = "events"
	EventsDbName  = "vendorwize"
	EventsColName = "events"
)

// Column names shared by every store backend.
const (
	ColLatitude            = "latitude"
	ColLongitude           = "longitude"
	ColCategory            = "category"
	ColMinBoothFee         = "min_booth_fee"
	ColStartDate           = "start_date"
	ColIsIndoor            = "is_indoor"
	ColRequiresInsurance   = "requires_insurance"
	ColRequiresTent        = "requires_tent"
	ColRequiresHandmade    = "requires_handmade"
	ColApplicationDeadline = "application_deadline"
)

// CoordinatePrecision is the number of fractional digits kept for latitude and longitude.
const CoordinatePrecision = 7

// Event is a vendor-market event listing.
type Event struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name" validate:"required,max=300"`
	Description string    `json:"description" bson:"description"`

	VenueName string   `json:"venue_name" bson:"venue_name"`
	Address   string   `json:"address" bson:"address"`
	City      string   `json:"city" bson:"city" validate:"required"`
	State     string   `json:"state" bson:"state" validate:"required"`
	ZipCode   string   `json:"zip_code" bson:"zip_code"`
	Latitude  *float64 `json:"latitude" bson:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" bson:"longitude" validate:"omitempty,gte=-180,lte=180"`

	StartDate    time.Time `json:"start_date" bson:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" bson:"end_date" validate:"required"`
	SetupTime    string    `json:"setup_time" bson:"setup_time"`       // e.g. "06:00"
	TeardownTime string    `json:"teardown_time" bson:"teardown_time"` // e.g. "18:00"

	Category          string   `json:"category" bson:"category"`
	Tags              []string `json:"tags" bson:"tags"`
	IsIndoor          bool     `json:"is_indoor" bson:"is_indoor"`
	HasShelter        bool     `json:"has_shelter" bson:"has_shelter"`
	IsRecurring       bool     `json:"is_recurring" bson:"is_recurring"`
	RecurrencePattern Document `json:"recurrence_pattern" bson:"recurrence_pattern"`

	ExpectedAttendance *int `json:"expected_attendance" bson:"expected_attendance" validate:"omitempty,gte=0"`
	VendorSpots        *int `json:"vendor_spots" bson:"vendor_spots" validate:"omitempty,gte=0"`

	// Fees are stored in cents.
	MinBoothFee *int64   `json:"min_booth_fee" bson:"min_booth_fee" validate:"omitempty,gte=0"`
	MaxBoothFee *int64   `json:"max_booth_fee" bson:"max_booth_fee" validate:"omitempty,gte=0"`
	FeeDetails  Document `json:"fee_details" bson:"fee_details"`

	ApplicationMethod   string     `json:"application_method" bson:"application_method"`
	ApplicationURL      string     `json:"application_url" bson:"application_url"`
	ApplicationPlatform string     `json:"application_platform" bson:"application_platform"`
	ApplicationDeadline *time.Time `json:"application_deadline" bson:"application_deadline"`
	IsJuried            bool       `json:"is_juried" bson:"is_juried"`
	ApplicationDetails  Document   `json:"application_details" bson:"application_details"`

	RequiresHandmade   bool     `json:"requires_handmade" bson:"requires_handmade"`
	RequiresTaxID      bool     `json:"requires_tax_id" bson:"requires_tax_id"`
	RequiresInsurance  bool     `json:"requires_insurance" bson:"requires_insurance"`
	RequiresTent       bool     `json:"requires_tent" bson:"requires_tent"`
	VendorRequirements Document `json:"vendor_requirements" bson:"vendor_requirements"`

	WeatherPolicy string   `json:"weather_policy" bson:"weather_policy"`
	Operations    Document `json:"operations" bson:"operations"`
	Policies      Document `json:"policies" bson:"policies"`
	Amenities     Document `json:"amenities" bson:"amenities"`

	OrganizerName        string   `json:"organizer_name" bson:"organizer_name"`
	OrganizerEmail       string   `json:"organizer_email" bson:"organizer_email"`
	OrganizerPhone       string   `json:"organizer_phone" bson:"organizer_phone"`
	OrganizerWebsite     string   `json:"organizer_website" bson:"organizer_website"`
	OrganizerDescription string   `json:"organizer_description" bson:"organizer_description"`
	SocialLinks          Document `json:"social_links" bson:"social_links"`

	IsActive     bool      `json:"is_active" bson:"is_active"`
	IsVerified   bool      `json:"is_verified" bson:"is_verified"`
	Region       string    `json:"region" bson:"region"`
	SourceURL    string    `json:"source_url" bson:"source_url"`
	ImportSource string    `json:"import_source" bson:"import_source"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Normalize rounds coordinates and truncates timestamps to what every
// backend can store losslessly.
func (e *Event) Normalize() {
	e.Latitude = roundCoordinate(e.Latitude)
	e.Longitude = roundCoordinate(e.Longitude)
	e.StartDate = StoreTime(e.StartDate)
	e.EndDate = StoreTime(e.EndDate)
	if e.ApplicationDeadline != nil {
		d := StoreTime(*e.ApplicationDeadline)
		e.ApplicationDeadline = &d
	}
	e.CreatedAt = StoreTime(e.CreatedAt)
	e.UpdatedAt = StoreTime(e.UpdatedAt)
}

// HasCoordinates reports whether both latitude and longitude are set.
func (e *Event) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// StoreTime converts t to UTC with millisecond precision.
func StoreTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC().Truncate(time.Millisecond)
}

func roundCoordinate(v *float64) *float64 {
	if v == nil {
		return nil
	}
	scale := math.Pow10(CoordinatePrecision)
	r := math.Round(*v*scale) / scale
	return &r
}
