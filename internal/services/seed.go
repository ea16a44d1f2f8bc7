package services

import (
	"context"
	"time"

	"github.com/joshua-takyi/vendorwize/internal/models"
)

type sampleEvent struct {
	name, description            string
	venue, address, city, zip    string
	lat, lng                     float64
	start, end                   string
	category                     string
	boothFee                     int64 // cents
	attendance, spots            int
	organizer, website, deadline string
}

// sampleEvents are markets around Raleigh, NC used to populate an empty directory.
var sampleEvents = []sampleEvent{
	{
		name:        "State Farmers Market",
		description: "North Carolina's largest farmers market featuring local produce, plants, and artisan goods.",
		venue:       "NC State Farmers Market", address: "1201 Agriculture St", city: "Raleigh", zip: "27603",
		lat: 35.7564, lng: -78.6699,
		start: "2025-01-04T07:00:00", end: "2025-01-04T18:00:00",
		category: "farmers_market", boothFee: 5000, attendance: 5000, spots: 100,
		organizer: "NC Dept of Agriculture", website: "https://www.ncagr.gov/markets/",
	},
	{
		name:        "Downtown Raleigh Artisan Market",
		description: "Weekly artisan market in the heart of downtown featuring handcrafted goods and local art.",
		venue:       "Moore Square", address: "200 S Blount St", city: "Raleigh", zip: "27601",
		lat: 35.7762, lng: -78.6364,
		start: "2025-01-11T10:00:00", end: "2025-01-11T16:00:00",
		category: "craft_fair", boothFee: 7500, attendance: 2000, spots: 40,
		organizer: "Downtown Raleigh Alliance", website: "https://downtownraleigh.org",
	},
	{
		name:        "Durham Craft Market",
		description: "Monthly craft market celebrating local makers and artisans in Durham.",
		venue:       "Durham Central Park", address: "501 Foster St", city: "Durham", zip: "27701",
		lat: 35.9986, lng: -78.8986,
		start: "2025-01-18T09:00:00", end: "2025-01-18T14:00:00",
		category: "craft_fair", boothFee: 6000, attendance: 1500, spots: 35,
		organizer: "Durham Central Park",
	},
	{
		name:        "Cary Farmers Market",
		description: "Year-round farmers market featuring fresh produce and local goods.",
		venue:       "Downtown Cary Park", address: "316 N Academy St", city: "Cary", zip: "27513",
		lat: 35.7915, lng: -78.7811,
		start: "2025-01-25T08:00:00", end: "2025-01-25T12:00:00",
		category: "farmers_market", boothFee: 4000, attendance: 1200, spots: 50,
		organizer: "Town of Cary", website: "https://www.townofcary.org",
	},
	{
		name:        "Chapel Hill Spring Festival",
		description: "Annual spring festival with vendors, food trucks, and live entertainment.",
		venue:       "Franklin Street", address: "100 E Franklin St", city: "Chapel Hill", zip: "27514",
		lat: 35.9132, lng: -79.0558,
		start: "2025-03-15T11:00:00", end: "2025-03-16T18:00:00",
		category: "festival", boothFee: 15000, attendance: 10000, spots: 80,
		organizer: "Chapel Hill Downtown Partnership", website: "https://downtownchapelhill.com",
		deadline: "2025-02-15T00:00:00",
	},
	{
		name:        "Wake Forest Farmers Market",
		description: "Community farmers market with local produce and artisan goods.",
		venue:       "Wake Forest Town Hall", address: "301 S Brooks St", city: "Wake Forest", zip: "27587",
		lat: 35.9799, lng: -78.5097,
		start: "2025-02-01T09:00:00", end: "2025-02-01T13:00:00",
		category: "farmers_market", boothFee: 3500, attendance: 800, spots: 25,
		organizer: "Wake Forest Downtown",
	},
}

func (s sampleEvent) toEvent() *models.Event {
	const layout = "2006-01-02T15:04:05"
	start, _ := time.Parse(layout, s.start)
	end, _ := time.Parse(layout, s.end)
	lat, lng := s.lat, s.lng
	fee := s.boothFee
	attendance, spots := s.attendance, s.spots

	e := &models.Event{
		Name:               s.name,
		Description:        s.description,
		VenueName:          s.venue,
		Address:            s.address,
		City:               s.city,
		State:              "NC",
		ZipCode:            s.zip,
		Latitude:           &lat,
		Longitude:          &lng,
		StartDate:          start,
		EndDate:            end,
		Category:           s.category,
		MinBoothFee:        &fee,
		MaxBoothFee:        &fee,
		ExpectedAttendance: &attendance,
		VendorSpots:        &spots,
		OrganizerName:      s.organizer,
		OrganizerWebsite:   s.website,
		IsActive:           true,
		ImportSource:       "seed",
	}
	if s.deadline != "" {
		d, _ := time.Parse(layout, s.deadline)
		e.ApplicationDeadline = &d
	}
	return e
}

// SeedEvents stores the sample events. Failures are logged per event and
// the remaining samples are still inserted.
func (es *EventsService) SeedEvents(ctx context.Context) (int, error) {
	seeded := make([]*models.Event, 0, len(sampleEvents))
	for _, s := range sampleEvents {
		event, err := es.store(ctx, s.toEvent())
		if err != nil {
			if ctx.Err() != nil {
				return len(seeded), ctx.Err()
			}
			es.logger.Error("failed to seed event", "name", s.name, "error", err)
			continue
		}
		seeded = append(seeded, event)
	}
	es.publish(ctx, ActionSeeded, seeded...)
	es.logger.Info("seeding complete", "count", len(seeded))
	return len(seeded), nil
}
