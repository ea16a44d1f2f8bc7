package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/joshua-takyi/vendorwize/internal/config"
	"github.com/joshua-takyi/vendorwize/internal/connect"
	"github.com/joshua-takyi/vendorwize/internal/container"
	"github.com/joshua-takyi/vendorwize/internal/models"
	"github.com/joshua-takyi/vendorwize/internal/publisher"
	"github.com/joshua-takyi/vendorwize/internal/routes"
	"github.com/joshua-takyi/vendorwize/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// eventPublisher is a change feed the server closes on shutdown.
type eventPublisher interface {
	services.EventPublisher
	io.Closer
}

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	logger.Info("Starting VendorWize API server", "environment", cfg.Environment, "store", cfg.StoreBackend)

	ctx := context.Background()
	repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open event store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}

	var pub eventPublisher = publisher.NopPublisher{}
	if cfg.KafkaEnabled() {
		pub = publisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaEventsTopic, logger)
		logger.Info("Publishing event changes to Kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaEventsTopic)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	appContainer := container.NewContainer(cfg, logger, repo, pub, reg)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if err := pub.Close(); err != nil {
		logger.Error("Error closing event publisher", "error", err)
	}
	if err := closeStore(); err != nil {
		logger.Error("Error closing event store", "error", err)
	}

	logger.Info("Server exited")
}

// openStore connects the configured backend and returns it with its cleanup.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (models.EventsRepo, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.BackendSupabase:
		client, err := connect.InitSupabase(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Connected to Supabase successfully")
		return models.SupabaseNewRepo(client), noop, nil

	case config.BackendMongo:
		client, err := connect.MongoDBConnect(ctx, cfg.MongoDBURI, cfg.MongoDBPassword)
		if err != nil {
			return nil, nil, err
		}
		repo := models.MongodbNewRepo(client, cfg.MongoDBName)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = connect.MongoDBDisconnect(client)
			return nil, nil, err
		}
		logger.Info("Connected to MongoDB successfully", "database", cfg.MongoDBName)
		return repo, func() error { return connect.MongoDBDisconnect(client) }, nil

	case config.BackendMemory:
		logger.Warn("Using in-memory event store; data is lost on restart")
		return models.MemoryNewRepo(), noop, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
