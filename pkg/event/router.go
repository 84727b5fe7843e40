package event

import (
	"github.com/eventhub-br/eventhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

func Routes(router *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, handler Handler) {
	// catalog reads are public by policy, they never pass the
	// authentication gate
	router.GET("/events", handler.FindAll)
	router.GET("/events/:id", handler.FindById)

	administratorRouter := router.Group("")
	administratorRouter.Use(authenticationMiddleware.TokenAuthentication, authorizationMiddleware.RequireAdministrator)
	administratorRouter.POST("/events", handler.Create)
	administratorRouter.PUT("/events/:id", handler.Update)
	administratorRouter.DELETE("/events/:id", handler.Deactivate)
}
