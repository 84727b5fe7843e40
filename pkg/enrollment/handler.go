package enrollment

import (
	"context"
	"net/http"

	"github.com/eventhub-br/eventhub/internal/handler"
	"github.com/eventhub-br/eventhub/pkg/audit"
	"github.com/eventhub-br/eventhub/pkg/model"

	"github.com/gin-gonic/gin"
)

func NewHandler(enrollmentService enrollmentService) Handler {
	return Handler{enrollmentService}
}

type enrollmentService interface {
	Enroll(ctx context.Context, user *model.User, eventId uint, meta audit.RequestMeta) (*model.Event, error)
	Cancel(ctx context.Context, user *model.User, eventId uint, meta audit.RequestMeta) error
	ListEnrolled(ctx context.Context, user *model.User) ([]*model.Event, error)
	ListConfirmed(ctx context.Context, user *model.User) ([]*model.Event, error)
}

type Handler struct {
	enrollmentService enrollmentService
}

// Enroll in event
func (h Handler) Enroll(c *gin.Context) {
	// swagger:route POST /events/{id}/enrollments enroll
	//
	// Enroll in event
	//
	// Enroll the authenticated user in the event.
	//
	// responses:
	//   201: Event
	//   400: Error
	//   401: Error
	//   404: Error
	//   409: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	eventId, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	e, err := h.enrollmentService.Enroll(c.Request.Context(), user, eventId, audit.GetRequestMeta(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, e)
}

// Cancel enrollment
func (h Handler) Cancel(c *gin.Context) {
	// swagger:route DELETE /events/{id}/enrollments cancelEnrollment
	//
	// Cancel enrollment
	//
	// Cancel the authenticated user's enrollment in the event. An existing
	// attendance record is kept.
	//
	// responses:
	//   204:
	//   401: Error
	//   404: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	eventId, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	err = h.enrollmentService.Cancel(c.Request.Context(), user, eventId, audit.GetRequestMeta(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListEnrolled events
func (h Handler) ListEnrolled(c *gin.Context) {
	// swagger:route GET /enrollments listEnrollments
	//
	// List enrollments
	//
	// List the active events the authenticated user is enrolled in.
	//
	// responses:
	//   200: []Event
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	events, err := h.enrollmentService.ListEnrolled(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// ListConfirmed events
func (h Handler) ListConfirmed(c *gin.Context) {
	// swagger:route GET /attendances/confirmed listConfirmedAttendance
	//
	// List confirmed attendance
	//
	// List the active events the authenticated user has a confirmed presence
	// at.
	//
	// responses:
	//   200: []Event
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	events, err := h.enrollmentService.ListConfirmed(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}
