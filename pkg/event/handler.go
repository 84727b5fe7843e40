package event

import (
	"context"
	"net/http"
	"time"

	"github.com/eventhub-br/eventhub/internal/handler"
	"github.com/eventhub-br/eventhub/pkg/model"

	"github.com/gin-gonic/gin"
)

func NewHandler(eventService eventService) Handler {
	return Handler{eventService}
}

type eventService interface {
	Create(ctx context.Context, input CreateEventInput) (*model.Event, error)
	Update(ctx context.Context, id uint, input CreateEventInput) (*model.Event, error)
	Deactivate(ctx context.Context, id uint) error
	FindById(ctx context.Context, id uint) (*model.Event, error)
	FindAll(ctx context.Context) ([]*model.Event, error)
}

type Handler struct {
	eventService eventService
}

type EventRequest struct {
	Name     string    `json:"name" binding:"required"`
	Details  string    `json:"details"`
	StartsAt time.Time `json:"startsAt" binding:"required"`
	EndsAt   time.Time `json:"endsAt" binding:"required,gtfield=StartsAt"`
	Location string    `json:"location"`
	Category string    `json:"category"`
	Capacity *int      `json:"capacity" binding:"omitempty,gt=0"`
	Price    float64   `json:"price" binding:"gte=0"`
}

// Create event
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /events createEvent
	//
	// Create event
	//
	// Create a new event. Administrators only.
	//
	// responses:
	//   201: Event
	//   400: Error
	//   401: Error
	//   403: Error
	var request EventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		return
	}

	e, err := h.eventService.Create(c.Request.Context(), CreateEventInput(request))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, e)
}

// Update event
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /events/{id} updateEvent
	//
	// Update event
	//
	// Update an event. Administrators only.
	//
	// responses:
	//   200: Event
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request EventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		return
	}

	e, err := h.eventService.Update(c.Request.Context(), id, CreateEventInput(request))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, e)
}

// Deactivate event
func (h Handler) Deactivate(c *gin.Context) {
	// swagger:route DELETE /events/{id} deactivateEvent
	//
	// Deactivate event
	//
	// Deactivate an event. Administrators only. Enrollments and attendances
	// are kept.
	//
	// responses:
	//   204:
	//   401: Error
	//   403: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	err := h.eventService.Deactivate(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// FindById event
func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /events/{id} findEventById
	//
	// Find event
	//
	// Find an event by id. Publicly accessible.
	//
	// responses:
	//   200: Event
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	e, err := h.eventService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, e)
}

// FindAll events
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /events findAllEvents
	//
	// Find all events
	//
	// Find all active events. Publicly accessible.
	//
	// responses:
	//   200: []Event
	events, err := h.eventService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}
