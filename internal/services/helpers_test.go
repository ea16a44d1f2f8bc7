package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/joshua-takyi/vendorwize/internal/config"
	"github.com/joshua-takyi/vendorwize/internal/metrics"
	"github.com/joshua-takyi/vendorwize/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

var testDefaults = Defaults{
	Search: config.SearchDefaults{Latitude: 35.7796, Longitude: -78.6382, RadiusMiles: 50},
	Import: config.ImportDefaults{City: "Unknown", State: "NC", Source: "api_import"},
}

type recordingPublisher struct {
	mu      sync.Mutex
	actions []string
	events  []*models.Event
	err     error
}

func (p *recordingPublisher) PublishEvents(_ context.Context, action string, events ...*models.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	for range events {
		p.actions = append(p.actions, action)
	}
	p.events = append(p.events, events...)
	return nil
}

var errBrokerDown = errors.New("broker down")

type testEnv struct {
	svc       *EventsService
	repo      *models.MemoryRepo
	publisher *recordingPublisher
	clock     *clockwork.FakeClock
	reg       *prometheus.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := models.MemoryNewRepo()
	pub := &recordingPublisher{}
	reg := prometheus.NewRegistry()
	svc := NewEventsService(repo, pub, metrics.New(reg), slog.New(slog.NewTextHandler(io.Discard, nil)), testDefaults)
	clock := clockwork.NewFakeClockAt(time.Date(2025, 1, 1, 12, 0, 0, 123456789, time.UTC))
	svc.SetClock(clock)
	return &testEnv{svc: svc, repo: repo, publisher: pub, clock: clock, reg: reg}
}

func ptr[T any](v T) *T { return &v }

func eventAt(name string, lat, lng float64, start time.Time) *models.Event {
	return &models.Event{
		Name:      name,
		City:      "Raleigh",
		State:     "NC",
		Latitude:  ptr(lat),
		Longitude: ptr(lng),
		StartDate: start,
		EndDate:   start.Add(4 * time.Hour),
		IsActive:  true,
	}
}
