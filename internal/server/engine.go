package server

import (
	"log/slog"

	"github.com/eventhub-br/eventhub/internal/middleware"
	"github.com/eventhub-br/eventhub/pkg/attendance"
	"github.com/eventhub-br/eventhub/pkg/audit"
	"github.com/eventhub-br/eventhub/pkg/enrollment"
	"github.com/eventhub-br/eventhub/pkg/event"
	"github.com/eventhub-br/eventhub/pkg/health"
	"github.com/eventhub-br/eventhub/pkg/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redocMiddleware "github.com/go-openapi/runtime/middleware"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Handlers struct {
	User       user.Handler
	Event      event.Handler
	Enrollment enrollment.Handler
	Attendance attendance.Handler
	Audit      audit.Handler
}

func GetEngine(logger *slog.Logger, basePath string, allowedOrigin string, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, handlers Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CorrelationID())
	r.Use(sloggin.New(logger))
	r.Use(otelgin.Middleware("eventhub"))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{allowedOrigin}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)

	redoc(router, basePath)

	router.GET("/health", health.Health)

	user.Routes(router, authenticationMiddleware, authorizationMiddleware, handlers.User)
	event.Routes(router, authenticationMiddleware, authorizationMiddleware, handlers.Event)
	enrollment.Routes(router, authenticationMiddleware, handlers.Enrollment)
	attendance.Routes(router, authenticationMiddleware, authorizationMiddleware, handlers.Attendance)
	audit.Routes(router, authenticationMiddleware, handlers.Audit)

	return r
}

func redoc(router *gin.RouterGroup, basePath string) {
	router.StaticFile("/swagger.yaml", "./swagger/swagger.yaml")

	redocOpts := redocMiddleware.RedocOpts{
		BasePath: basePath,
		SpecURL:  "./swagger.yaml",
	}
	router.GET("/docs", func(c *gin.Context) {
		redocHandler := redocMiddleware.Redoc(redocOpts, nil)
		redocHandler.ServeHTTP(c.Writer, c.Request)
	})
}
