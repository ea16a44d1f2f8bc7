package models

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo keeps events in process memory. It backs local development
// and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	events map[uuid.UUID]Event
}

func MemoryNewRepo() *MemoryRepo {
	return &MemoryRepo{
		events: make(map[uuid.UUID]Event),
	}
}

func (m *MemoryRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.events[event.ID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, event.ID)
	}
	m.events[event.ID] = *event
	stored := *event
	return &stored, nil
}

func (m *MemoryRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	event, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &event, nil
}

func (m *MemoryRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	events, err := m.FindEvents(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}

func (m *MemoryRepo) FindEvents(ctx context.Context, preds []Predicate) ([]*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]*Event, 0, len(m.events))
	for _, event := range m.events {
		if MatchesAll(&event, preds) {
			e := event
			events = append(events, &e)
		}
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].StartDate.Equal(events[j].StartDate) {
			return events[i].StartDate.Before(events[j].StartDate)
		}
		return events[i].ID.String() < events[j].ID.String()
	})
	return events, nil
}

func (m *MemoryRepo) ReplaceEvent(ctx context.Context, event *Event) (*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[event.ID]; !ok {
		return nil, ErrNotFound
	}
	m.events[event.ID] = *event
	stored := *event
	return &stored, nil
}

func (m *MemoryRepo) DeleteAllEvents(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	n := int64(len(m.events))
	m.events = make(map[uuid.UUID]Event)
	return n, nil
}
