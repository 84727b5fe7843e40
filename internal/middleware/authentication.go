package middleware

import (
	"context"
	"log/slog"

	"github.com/eventhub-br/eventhub/internal/errdef"
	"github.com/eventhub-br/eventhub/internal/handler"
	"github.com/eventhub-br/eventhub/pkg/model"

	"github.com/gin-gonic/gin"
)

func NewAuthentication(logger *slog.Logger, tokenVerifier tokenVerifier, userService userService) AuthenticationMiddleware {
	return AuthenticationMiddleware{
		logger:        logger,
		tokenVerifier: tokenVerifier,
		userService:   userService,
	}
}

type tokenVerifier interface {
	VerifyToken(tokenString string) (string, error)
}

type userService interface {
	SignIn(ctx context.Context, email string, password string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type AuthenticationMiddleware struct {
	logger        *slog.Logger
	tokenVerifier tokenVerifier
	userService   userService
}

// BasicAuthentication authenticates the sign in route using email and
// password.
func (m AuthenticationMiddleware) BasicAuthentication(c *gin.Context) {
	email, password, ok := c.Request.BasicAuth()
	if !ok {
		m.handleError(c, errdef.NewUnauthorized("invalid Authorization header format"))
		return
	}

	user, err := m.userService.SignIn(c.Request.Context(), email, password)
	if err != nil {
		m.handleError(c, err)
		return
	}

	m.setUser(c, user)
	c.Next()
}

// TokenAuthentication resolves the bearer token to a user. The user is
// fetched fresh on every request so deactivating an account takes effect
// immediately, without any token revocation list.
func (m AuthenticationMiddleware) TokenAuthentication(c *gin.Context) {
	tokenString, err := handler.GetTokenFromHttpAuthHeader(c)
	if err != nil {
		m.handleError(c, errdef.NewUnauthorized("token not found"))
		return
	}

	email, err := m.tokenVerifier.VerifyToken(tokenString)
	if err != nil {
		m.logger.InfoContext(c.Request.Context(), "Token rejected", "error", err)
		m.handleError(c, errdef.NewUnauthorized("token not valid"))
		return
	}

	user, err := m.userService.FindByEmail(c.Request.Context(), email)
	if err != nil {
		m.handleError(c, errdef.NewUnauthorized("token not valid"))
		return
	}

	if !user.Active {
		m.handleError(c, errdef.NewUnauthorized("user is deactivated"))
		return
	}

	m.setUser(c, user)
	c.Next()
}

func (m AuthenticationMiddleware) setUser(c *gin.Context, user *model.User) {
	c.Set("user", user)
	ctx := model.NewContextWithUser(c.Request.Context(), user)
	c.Request = c.Request.WithContext(ctx)
}

func (m AuthenticationMiddleware) handleError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
