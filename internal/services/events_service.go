package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/joshua-takyi/vendorwize/internal/config"
	"github.com/joshua-takyi/vendorwize/internal/metrics"
	"github.com/joshua-takyi/vendorwize/internal/models"
)

// Change feed actions.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionImported = "imported"
	ActionSeeded   = "seeded"
)

// EventPublisher announces stored events to downstream consumers.
type EventPublisher interface {
	PublishEvents(ctx context.Context, action string, events ...*models.Event) error
}

// Defaults groups the per-deployment defaults used by the service.
type Defaults struct {
	Search config.SearchDefaults
	Import config.ImportDefaults
}

type EventsService struct {
	eventsRepo models.EventsRepo
	publisher  EventPublisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
	clock      clockwork.Clock
	defaults   Defaults
}

func NewEventsService(eventsRepo models.EventsRepo, publisher EventPublisher, m *metrics.Metrics, logger *slog.Logger, defaults Defaults) *EventsService {
	return &EventsService{
		eventsRepo: eventsRepo,
		publisher:  publisher,
		metrics:    m,
		logger:     logger,
		clock:      clockwork.NewRealClock(),
		defaults:   defaults,
	}
}

// SetClock swaps the source of system timestamps. Pass nil for real time.
func (es *EventsService) SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	es.clock = c
}

// SearchDefaults returns the center and radius used when a search omits them.
func (es *EventsService) SearchDefaults() config.SearchDefaults {
	return es.defaults.Search
}

func (es *EventsService) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	created, err := es.store(ctx, event)
	if err != nil {
		return nil, err
	}
	es.publish(ctx, ActionCreated, created)
	return created, nil
}

// store assigns a fresh id and timestamps, validates and inserts one event.
// Any client supplied id is ignored.
func (es *EventsService) store(ctx context.Context, event *models.Event) (*models.Event, error) {
	if event == nil {
		return nil, invalid("", "event is required")
	}
	event.ID = uuid.New()
	now := es.clock.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	event.Normalize()

	if err := es.validate(event); err != nil {
		return nil, err
	}

	created, err := es.eventsRepo.CreateEvent(ctx, event)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateID) {
			return nil, invalid("id", "already exists")
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

func (es *EventsService) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return es.eventsRepo.GetEventByID(ctx, id)
}

func (es *EventsService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := es.eventsRepo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		events = []*models.Event{}
	}
	return events, nil
}

// SearchEvents returns the events inside the bounding box of the request
// that pass every enabled facet, ordered by start date.
func (es *EventsService) SearchEvents(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	events, err := es.eventsRepo.FindEvents(ctx, req.Predicates())
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	if events == nil {
		events = []*models.Event{}
	}

	es.metrics.Searches.Inc()
	es.metrics.SearchResults.Observe(float64(len(events)))

	return &SearchResult{
		Events:       events,
		SearchCenter: SearchCenter{Lat: req.Latitude, Lng: req.Longitude},
		RadiusMiles:  req.RadiusMiles,
		Filters:      req.Filters,
	}, nil
}

// ReplaceEvent rewrites every field of an existing event. The id and
// creation time are kept and the update time never moves backwards.
func (es *EventsService) ReplaceEvent(ctx context.Context, id uuid.UUID, event *models.Event) (*models.Event, error) {
	if event == nil {
		return nil, invalid("", "event is required")
	}
	existing, err := es.eventsRepo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.ID = id
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = es.clock.Now()
	event.Normalize()
	if event.UpdatedAt.Before(existing.UpdatedAt) {
		event.UpdatedAt = existing.UpdatedAt
	}

	if err := es.validate(event); err != nil {
		return nil, err
	}

	updated, err := es.eventsRepo.ReplaceEvent(ctx, event)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to replace event: %w", err)
	}
	es.publish(ctx, ActionUpdated, updated)
	return updated, nil
}

func (es *EventsService) DeleteAllEvents(ctx context.Context) (int64, error) {
	n, err := es.eventsRepo.DeleteAllEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete events: %w", err)
	}
	es.logger.Warn("all events deleted", "count", n)
	return n, nil
}

func (es *EventsService) validate(event *models.Event) error {
	if event.StartDate.IsZero() {
		return invalid("start_date", "is required")
	}
	if event.EndDate.IsZero() {
		return invalid("end_date", "is required")
	}
	if err := models.Validate.Struct(event); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return invalid(fe.Field(), "failed %s validation", fe.Tag())
		}
		return invalid("", "%v", err)
	}
	// end before start is stored, only logged
	if event.EndDate.Before(event.StartDate) {
		es.logger.Warn("event ends before it starts", "event_id", event.ID, "name", event.Name)
	}
	return nil
}

// publish never fails the caller: the write already succeeded.
func (es *EventsService) publish(ctx context.Context, action string, events ...*models.Event) {
	if len(events) == 0 {
		return
	}
	if err := es.publisher.PublishEvents(ctx, action, events...); err != nil {
		es.metrics.PublishErrors.Inc()
		es.logger.Warn("failed to publish event changes", "action", action, "count", len(events), "error", err)
	}
}
