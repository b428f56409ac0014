package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-management-api/api/swagger"
	"user-management-api/internal/adapter/gin/handler"
	"user-management-api/internal/adapter/gin/middleware"
	"user-management-api/pkg/logger"
)

// SwaggerDocPath is where the OpenAPI document is served
const SwaggerDocPath = "/swagger/users.swagger.json"

// UserPrefixes are the route groups the user handlers are mounted under
var UserPrefixes = []string{"/users", "/api/users"}

// Options controls how the router is assembled
type Options struct {
	ServiceName string
	AuthEnabled bool
	SwaggerFile string // optional path on disk overriding the embedded OpenAPI document
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	opts Options,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(logger.RequestID())
	router.Use(rateLimiter.Handler())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": opts.ServiceName,
		})
	})

	swaggerUI := gin.WrapH(httpSwagger.Handler(httpSwagger.URL(SwaggerDocPath)))
	router.GET("/swagger/*any", func(c *gin.Context) {
		if c.Request.URL.Path == SwaggerDocPath {
			if opts.SwaggerFile != "" {
				c.File(opts.SwaggerFile)
				return
			}
			c.Data(http.StatusOK, "application/json; charset=utf-8", swagger.Document)
			return
		}
		swaggerUI(c)
	})

	for _, prefix := range UserPrefixes {
		users := router.Group(prefix)
		if opts.AuthEnabled {
			users.Use(middleware.BearerAuth(log))
		}
		users.Use(middleware.Logger(log))
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	return router
}
