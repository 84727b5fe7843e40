package middleware

import (
	"log/slog"

	"github.com/eventhub-br/eventhub/internal/errdef"
	"github.com/eventhub-br/eventhub/internal/handler"

	"github.com/gin-gonic/gin"
)

func NewAuthorization(logger *slog.Logger) AuthorizationMiddleware {
	return AuthorizationMiddleware{
		logger: logger,
	}
}

type AuthorizationMiddleware struct {
	logger *slog.Logger
}

// RequireAdministrator guards the staff-only operations. It runs after
// TokenAuthentication so the user on the context is already verified active.
func (m AuthorizationMiddleware) RequireAdministrator(c *gin.Context) {
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(errdef.NewUnauthorized("user not authenticated"))
		c.Abort()
		return
	}

	if !user.IsAdministrator() {
		m.logger.ErrorContext(c.Request.Context(), "User tried to access administrator restricted endpoint", "user", user.ID)
		_ = c.Error(errdef.NewForbidden("administrator access denied"))
		c.Abort()
		return
	}

	c.Next()
}
