package audit

import (
	"net/http"
	"strconv"

	"github.com/eventhub-br/eventhub/internal/handler"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func NewHandler(service *Service) Handler {
	return Handler{service}
}

type Handler struct {
	service *Service
}

// Query audit entries
func (h Handler) Query(c *gin.Context) {
	// swagger:route GET /audit queryAudit
	//
	// Query audit trail
	//
	// Returns the authenticated user's own audit entries, newest first.
	// Optionally filtered by action.
	//
	// responses:
	//   200: Page
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	action := c.Query("action")
	page := positiveIntQuery(c, "page", 1)
	pageSize := positiveIntQuery(c, "pageSize", defaultPageSize)
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	result, err := h.service.QueryByActor(c.Request.Context(), user, action, page, pageSize)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func positiveIntQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
