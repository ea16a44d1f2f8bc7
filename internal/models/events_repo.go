package models

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("event not found")
	ErrDuplicateID = errors.New("event id already exists")
)

// EventsRepo is implemented by every store backend.
type EventsRepo interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error)
	// ListEvents returns every event ordered by start date, newest first.
	ListEvents(ctx context.Context) ([]*Event, error)
	// FindEvents returns the events matching all predicates ordered by start date, oldest first.
	FindEvents(ctx context.Context, preds []Predicate) ([]*Event, error)
	ReplaceEvent(ctx context.Context, event *Event) (*Event, error)
	DeleteAllEvents(ctx context.Context) (int64, error)
}
