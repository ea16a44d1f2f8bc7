package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/vendorwize/internal/models"
	"github.com/joshua-takyi/vendorwize/internal/services"
)

// DeleteAllConfirmation must be passed as ?confirm= to clear the directory.
const DeleteAllConfirmation = "delete-all-events"

type importRequest struct {
	Events *[]json.RawMessage `json:"events"`
}

func ListEvents(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := es.ListEvents(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

func SearchEvents(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := services.ParseSearchQuery(c.Request.URL.Query(), es.SearchDefaults())
		if err != nil {
			respondError(c, err)
			return
		}

		result, err := es.SearchEvents(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func GetEvent(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := eventID(c)
		if !ok {
			return
		}

		event, err := es.GetEvent(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"event": event})
	}
}

func CreateEvent(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event := models.Event{IsActive: true}
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body: "+err.Error()))
			return
		}

		created, err := es.CreateEvent(c.Request.Context(), &event)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"event": created})
	}
}

func ReplaceEvent(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := eventID(c)
		if !ok {
			return
		}

		event := models.Event{IsActive: true}
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body: "+err.Error()))
			return
		}

		updated, err := es.ReplaceEvent(c.Request.Context(), id, &event)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"event": updated})
	}
}

func ImportEvents(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req importRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body: "+err.Error()))
			return
		}
		if req.Events == nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("events array is required"))
			return
		}

		c.JSON(http.StatusOK, es.ImportEvents(c.Request.Context(), *req.Events))
	}
}

func DeleteAllEvents(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("confirm") != DeleteAllConfirmation {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("pass confirm="+DeleteAllConfirmation+" to delete every event"))
			return
		}

		n, err := es.DeleteAllEvents(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": n})
	}
}

func SeedEvents(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := es.SeedEvents(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "seeded", "count": n})
	}
}

func eventID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid event id"))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors onto status codes. Anything
// unclassified is handed to the ErrorHandler middleware.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(verr.Error()))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse("event not found"))
	default:
		_ = c.Error(err)
	}
}
