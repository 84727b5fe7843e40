package enrollment

import (
	"github.com/eventhub-br/eventhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

func Routes(router *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	tokenAuthenticationRouter := router.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.POST("/events/:id/enrollments", handler.Enroll)
	tokenAuthenticationRouter.DELETE("/events/:id/enrollments", handler.Cancel)
	tokenAuthenticationRouter.GET("/enrollments", handler.ListEnrolled)
	tokenAuthenticationRouter.GET("/attendances/confirmed", handler.ListConfirmed)
}
