package attendance

import (
	"context"
	"net/http"

	"github.com/eventhub-br/eventhub/internal/handler"
	"github.com/eventhub-br/eventhub/pkg/audit"
	"github.com/eventhub-br/eventhub/pkg/model"

	"github.com/gin-gonic/gin"
)

func NewHandler(attendanceService attendanceService) Handler {
	return Handler{attendanceService}
}

type attendanceService interface {
	Confirm(ctx context.Context, admin *model.User, userId, eventId uint, present bool, meta audit.RequestMeta) (*model.Attendance, error)
	QuickRegister(ctx context.Context, admin *model.User, input QuickRegisterInput, meta audit.RequestMeta) (*model.User, error)
	ListUserEvents(ctx context.Context, userId uint) ([]UserEvent, error)
	ListEventAttendees(ctx context.Context, eventId uint) ([]Attendee, error)
}

type Handler struct {
	attendanceService attendanceService
}

type ConfirmRequest struct {
	UserID  uint  `json:"userId" binding:"required"`
	EventID uint  `json:"eventId" binding:"required"`
	Present *bool `json:"present"`
}

// Confirm attendance
func (h Handler) Confirm(c *gin.Context) {
	// swagger:route POST /attendances confirmAttendance
	//
	// Confirm attendance
	//
	// Record whether a user was present at an event. Omitting present defaults to true. The latest decision wins.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Attendance
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	var request ConfirmRequest
	if err := handler.DataBinder(c, &request); err != nil {
		return
	}

	admin, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	present := true
	if request.Present != nil {
		present = *request.Present
	}

	attendance, err := h.attendanceService.Confirm(c.Request.Context(), admin, request.UserID, request.EventID, present, audit.GetRequestMeta(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, attendance)
}

type QuickRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,brphone"`
	Document string `json:"document" binding:"omitempty,cpfcnpj"`
	EventID  uint   `json:"eventId" binding:"required"`
}

// QuickRegister user
func (h Handler) QuickRegister(c *gin.Context) {
	// swagger:route POST /attendances/quick-register quickRegister
	//
	// Quick register
	//
	// Sign up a walk-in participant with a temporary password, enrolled and confirmed present in one step.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: User
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   409: Error
	//   415: Error
	var request QuickRegisterRequest
	if err := handler.DataBinder(c, &request); err != nil {
		return
	}

	admin, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.attendanceService.QuickRegister(c.Request.Context(), admin, QuickRegisterInput{
		Name:     request.Name,
		Email:    request.Email,
		Phone:    request.Phone,
		Document: request.Document,
		EventID:  request.EventID,
	}, audit.GetRequestMeta(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ListUserEvents of a user
func (h Handler) ListUserEvents(c *gin.Context) {
	// swagger:route GET /users/{id}/events listUserEvents
	//
	// List user events
	//
	// Return every event a user is enrolled in along with their attendance status.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []UserEvent
	//   401: Error
	//   403: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	events, err := h.attendanceService.ListUserEvents(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// ListEventAttendees of an event
func (h Handler) ListEventAttendees(c *gin.Context) {
	// swagger:route GET /events/{id}/attendees listEventAttendees
	//
	// List event attendees
	//
	// Return every user enrolled in an event along with their attendance status.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Attendee
	//   401: Error
	//   403: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	attendees, err := h.attendanceService.ListEventAttendees(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, attendees)
}
