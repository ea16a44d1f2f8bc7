package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/vendorwize/internal/container"
	"github.com/joshua-takyi/vendorwize/internal/handlers"
	"github.com/joshua-takyi/vendorwize/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	serviceName    = "vendorwize-api"
	serviceVersion = "1.0.0"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.New()
	r.Use(cors.New(corsConfig(container.Config.CORSOrigins)))

	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics(container.Metrics))
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(container.Gatherer, promhttp.HandlerOpts{})))

	events := r.Group("/api/events")
	{
		events.GET("", handlers.ListEvents(container.EventsService))
		events.GET("/near", handlers.SearchEvents(container.EventsService))
		events.GET("/:id", handlers.GetEvent(container.EventsService))
		events.POST("", handlers.CreateEvent(container.EventsService))
		events.PUT("/:id", handlers.ReplaceEvent(container.EventsService))
		events.POST("/import", handlers.ImportEvents(container.EventsService))
	}

	admin := r.Group("/api/admin")
	{
		admin.DELETE("/events", handlers.DeleteAllEvents(container.EventsService))
		admin.POST("/seed", handlers.SeedEvents(container.EventsService))
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
