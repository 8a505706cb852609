package handler

import (
	"errors"
	"net/http"

	"certificates-backend/internal/domains/event"
	"certificates-backend/internal/domains/event/service"
	"certificates-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventHandler struct {
	service service.Service
}

func NewEventHandler(service service.Service) *EventHandler {
	return &EventHandler{service: service}
}

// Create - POST /events
func (h *EventHandler) Create(c *gin.Context) {
	var req event.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	var createdBy *uuid.UUID
	if id, ok := c.Get("userID"); ok {
		uid := id.(uuid.UUID)
		createdBy = &uid
	}

	ev, err := h.service.CreateEvent(c.Request.Context(), req, createdBy)
	if err != nil {
		response.InternalServerError(c, "failed to create event")
		return
	}
	response.Success(c, http.StatusCreated, ev)
}

// Get - GET /events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	ev, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, "failed to load event")
		return
	}
	response.Success(c, http.StatusOK, ev)
}

// List - GET /events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.ListEvents(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to list events")
		return
	}
	response.Success(c, http.StatusOK, events)
}

// Update - PUT /events/:id
func (h *EventHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	var req event.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	ev, err := h.service.UpdateEvent(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, "failed to update event")
		return
	}
	response.Success(c, http.StatusOK, ev)
}

// Delete - DELETE /events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), id); err != nil {
		if errors.Is(err, event.ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, "failed to delete event")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "event deleted"})
}
