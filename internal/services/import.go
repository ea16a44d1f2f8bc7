package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joshua-takyi/vendorwize/internal/config"
	"github.com/joshua-takyi/vendorwize/internal/helpers"
	"github.com/joshua-takyi/vendorwize/internal/models"
)

// maxImportErrors caps the error sample returned to the caller.
const maxImportErrors = 10

// Field precedence for imported records. The first path present wins;
// nested provider groups are preferred over legacy flat fields.
var (
	applicationMethodPaths   = []string{"application.method", "application_method"}
	applicationURLPaths      = []string{"application.url", "external_application_url"}
	applicationPlatformPaths = []string{"application.platform"}
	applicationDeadlinePaths = []string{"application.deadline", "application_deadline"}
	isJuriedPaths            = []string{"application.is_juried", "application.juried"}
	requiresHandmadePaths    = []string{"vendor_requirements.handmade_only", "vendor_requirements.requires_handmade"}
	requiresTaxIDPaths       = []string{"vendor_requirements.tax_id_required", "vendor_requirements.requires_tax_id"}
	requiresInsurancePaths   = []string{"vendor_requirements.insurance_required", "vendor_requirements.requires_insurance"}
	requiresTentPaths        = []string{"vendor_requirements.tent_required", "vendor_requirements.requires_tent"}
	weatherPolicyPaths       = []string{"operations.weather_policy", "weather_policy"}
	policiesPaths            = []string{"policies", "operations.policies"}
	amenitiesPaths           = []string{"amenities", "operations.amenities"}
	socialLinksPaths         = []string{"organizer.social_links", "social_links"}
)

// ExternalMoney is a provider fee. Providers send either {"amount": 12.5}
// or a bare number; amounts are in whole currency units.
type ExternalMoney struct {
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency,omitempty"`
}

func (m *ExternalMoney) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		if bytes.Equal(data, []byte("null")) {
			return nil
		}
		var amount float64
		if err := json.Unmarshal(data, &amount); err != nil {
			return fmt.Errorf("fee must be a number or an object with an amount")
		}
		m.Amount = &amount
		return nil
	}
	type plain ExternalMoney
	return json.Unmarshal(data, (*plain)(m))
}

type ExternalLocation struct {
	VenueName string   `json:"venue_name"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	ZipCode   string   `json:"zip_code"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type ExternalOrganizer struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

type ExternalProvenance struct {
	IsVerified   *bool  `json:"is_verified"`
	ImportSource string `json:"import_source"`
}

// ExternalEvent is the typed part of an enriched provider record. Loosely
// shaped groups are read from the raw document instead.
type ExternalEvent struct {
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	StartDate          string             `json:"start_date"`
	EndDate            string             `json:"end_date"`
	SetupTime          string             `json:"setup_time"`
	TeardownTime       string             `json:"teardown_time"`
	Category           string             `json:"category"`
	Tags               []string           `json:"tags"`
	IsIndoor           bool               `json:"is_indoor"`
	HasShelter         bool               `json:"has_shelter"`
	IsRecurring        bool               `json:"is_recurring"`
	RecurrencePattern  models.Document    `json:"recurrence_pattern"`
	ExpectedAttendance *int               `json:"expected_attendance"`
	VendorSpots        *int               `json:"vendor_spots"`
	MinBoothFee        *ExternalMoney     `json:"min_booth_fee"`
	MaxBoothFee        *ExternalMoney     `json:"max_booth_fee"`
	FeeDetails         models.Document    `json:"fee_details"`
	Location           ExternalLocation   `json:"location"`
	Organizer          ExternalOrganizer  `json:"organizer"`
	Region             string             `json:"region"`
	SourceURL          string             `json:"source_url"`
	Provenance         ExternalProvenance `json:"provenance"`
}

// ImportResult summarises a batch import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Total    int      `json:"total"`
	Errors   []string `json:"errors"`
}

// NormalizeExternalEvent maps one raw provider record onto the canonical
// event shape. The record is not persisted and gets no id or timestamps.
func NormalizeExternalEvent(data []byte, defaults config.ImportDefaults) (*models.Event, error) {
	var raw models.Document
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("record is not a JSON object: %w", err)
	}
	if raw == nil {
		return nil, errors.New("record is not a JSON object")
	}
	var ext ExternalEvent
	if err := json.Unmarshal(data, &ext); err != nil {
		return nil, fmt.Errorf("malformed record: %w", err)
	}

	name := strings.TrimSpace(ext.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	start, err := requiredTimestamp("start_date", ext.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := requiredTimestamp("end_date", ext.EndDate)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:        name,
		Description: strings.TrimSpace(ext.Description),

		VenueName: strings.TrimSpace(ext.Location.VenueName),
		Address:   strings.TrimSpace(ext.Location.Address),
		City:      helpers.FirstNonEmpty(ext.Location.City, defaults.City),
		State:     helpers.FirstNonEmpty(ext.Location.State, defaults.State),
		ZipCode:   strings.TrimSpace(ext.Location.ZipCode),
		Latitude:  ext.Location.Latitude,
		Longitude: ext.Location.Longitude,

		StartDate:    start,
		EndDate:      end,
		SetupTime:    strings.TrimSpace(ext.SetupTime),
		TeardownTime: strings.TrimSpace(ext.TeardownTime),

		Category:          strings.TrimSpace(ext.Category),
		Tags:              helpers.RemoveDuplicates(ext.Tags),
		IsIndoor:          ext.IsIndoor,
		HasShelter:        ext.HasShelter,
		IsRecurring:       ext.IsRecurring,
		RecurrencePattern: ext.RecurrencePattern,

		ExpectedAttendance: ext.ExpectedAttendance,
		VendorSpots:        ext.VendorSpots,

		MinBoothFee: feeCents(ext.MinBoothFee),
		MaxBoothFee: feeCents(ext.MaxBoothFee),
		FeeDetails:  ext.FeeDetails,

		OrganizerName:        strings.TrimSpace(ext.Organizer.Name),
		OrganizerEmail:       strings.TrimSpace(ext.Organizer.Email),
		OrganizerPhone:       strings.TrimSpace(ext.Organizer.Phone),
		OrganizerWebsite:     strings.TrimSpace(ext.Organizer.Website),
		OrganizerDescription: strings.TrimSpace(ext.Organizer.Description),

		IsActive:     true,
		Region:       strings.TrimSpace(ext.Region),
		SourceURL:    strings.TrimSpace(ext.SourceURL),
		ImportSource: helpers.FirstNonEmpty(ext.Provenance.ImportSource, defaults.Source),
	}
	if ext.Provenance.IsVerified != nil {
		event.IsVerified = *ext.Provenance.IsVerified
	}

	// application group
	event.ApplicationMethod, _ = raw.String(applicationMethodPaths...)
	event.ApplicationURL, _ = raw.String(applicationURLPaths...)
	event.ApplicationPlatform, _ = raw.String(applicationPlatformPaths...)
	event.IsJuried, _ = raw.Bool(isJuriedPaths...)
	event.ApplicationDetails = raw.Object("application")
	if s, ok := raw.String(applicationDeadlinePaths...); ok {
		deadline, err := helpers.ParseTimestamp(s)
		if err != nil {
			return nil, fmt.Errorf("application deadline: %w", err)
		}
		event.ApplicationDeadline = &deadline
	}

	// vendor requirements group
	event.RequiresHandmade, _ = raw.Bool(requiresHandmadePaths...)
	event.RequiresTaxID, _ = raw.Bool(requiresTaxIDPaths...)
	event.RequiresInsurance, _ = raw.Bool(requiresInsurancePaths...)
	event.RequiresTent, _ = raw.Bool(requiresTentPaths...)
	event.VendorRequirements = raw.Object("vendor_requirements")

	// operations group
	event.WeatherPolicy, _ = raw.String(weatherPolicyPaths...)
	event.Operations = raw.Object("operations")
	event.Policies = raw.Object(policiesPaths...)
	event.Amenities = raw.Object(amenitiesPaths...)
	event.SocialLinks = raw.Object(socialLinksPaths...)

	return event, nil
}

func requiredTimestamp(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := helpers.ParseTimestamp(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

func feeCents(m *ExternalMoney) *int64 {
	if m == nil || m.Amount == nil {
		return nil
	}
	cents := helpers.ToCents(*m.Amount)
	return &cents
}

// recordLabel names a record in error messages, falling back to its
// one-based position in the batch.
func recordLabel(data []byte, index int) string {
	var probe struct {
		Name any `json:"name"`
	}
	if err := json.Unmarshal(data, &probe); err == nil {
		if s, ok := probe.Name.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return fmt.Sprintf("record #%d", index+1)
}

// ImportEvents normalizes and stores each record independently. A failing
// record is logged and reported; the rest of the batch continues.
func (es *EventsService) ImportEvents(ctx context.Context, records []json.RawMessage) *ImportResult {
	result := &ImportResult{Total: len(records), Errors: []string{}}
	es.metrics.ImportBatchSize.Observe(float64(len(records)))

	imported := make([]*models.Event, 0, len(records))
	for i, data := range records {
		event, err := es.importOne(ctx, data)
		if err != nil {
			label := recordLabel(data, i)
			es.logger.Warn("skipping import record", "record", label, "index", i, "error", err)
			es.metrics.ImportRecords.WithLabelValues("failed").Inc()
			if len(result.Errors) < maxImportErrors {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", label, err))
			}
			continue
		}
		imported = append(imported, event)
		es.metrics.ImportRecords.WithLabelValues("imported").Inc()
	}

	result.Imported = len(imported)
	es.publish(ctx, ActionImported, imported...)
	es.logger.Info("import finished", "imported", result.Imported, "total", result.Total)
	return result
}

func (es *EventsService) importOne(ctx context.Context, data json.RawMessage) (*models.Event, error) {
	event, err := NormalizeExternalEvent(data, es.defaults.Import)
	if err != nil {
		return nil, err
	}
	return es.store(ctx, event)
}
