package attendance

import (
	"github.com/eventhub-br/eventhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

func Routes(router *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, handler Handler) {
	administratorRouter := router.Group("")
	administratorRouter.Use(authenticationMiddleware.TokenAuthentication, authorizationMiddleware.RequireAdministrator)
	administratorRouter.POST("/attendances", handler.Confirm)
	administratorRouter.POST("/attendances/quick-register", handler.QuickRegister)
	administratorRouter.GET("/users/:id/events", handler.ListUserEvents)
	administratorRouter.GET("/events/:id/attendees", handler.ListEventAttendees)
}
