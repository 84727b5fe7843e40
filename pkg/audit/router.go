package audit

import (
	"github.com/eventhub-br/eventhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

func Routes(router *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	tokenAuthenticationRouter := router.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("/audit", handler.Query)
}
