package container

import (
	"log/slog"

	"github.com/joshua-takyi/vendorwize/internal/config"
	"github.com/joshua-takyi/vendorwize/internal/metrics"
	"github.com/joshua-takyi/vendorwize/internal/models"
	"github.com/joshua-takyi/vendorwize/internal/services"
	"github.com/prometheus/client_golang/prometheus"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	EventsService *services.EventsService
}

// NewContainer wires the events service over an already connected store.
// Collectors are registered with reg and served from it.
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	repo models.EventsRepo,
	publisher services.EventPublisher,
	reg *prometheus.Registry,
) *Container {
	m := metrics.New(reg)
	eventsService := services.NewEventsService(repo, publisher, m, logger, services.Defaults{
		Search: cfg.Search,
		Import: cfg.Import,
	})

	return &Container{
		Config:        cfg,
		Logger:        logger,
		Metrics:       m,
		Gatherer:      reg,
		EventsService: eventsService,
	}
}
