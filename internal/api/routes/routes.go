// Package routes defines the HTTP routes for the chat service.
package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/chatroom/chat-service/docs"
	"github.com/chatroom/chat-service/internal/api/handlers"
	"github.com/chatroom/chat-service/internal/api/middleware"
)

// BasePath is the prefix of every API route.
const BasePath = "/api/v1/chat"

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler   *handlers.HealthHandler
	UsersHandler    *handlers.UsersHandler
	MessagesHandler *handlers.MessagesHandler
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	v1 := r.Group(BasePath)
	{
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		users := v1.Group("/users")
		{
			users.POST("", cfg.UsersHandler.CreateUser)
			users.GET("", cfg.UsersHandler.FindUser)
			users.POST("/login", cfg.UsersHandler.Login)
			users.GET("/:id", cfg.UsersHandler.GetUser)
		}

		messages := v1.Group("/messages")
		{
			messages.GET("", cfg.MessagesHandler.ListMessages)
			messages.POST("", cfg.MessagesHandler.SendMessage)
		}
	}

	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.HandleMethodNotAllowed = true
	r.NoRoute(middleware.NotFound())
	r.NoMethod(middleware.MethodNotAllowed())
}

// SetupWithMiddleware installs the global middleware and then the routes.
// Recovery runs inside the request logger so recovered panics are logged
// with their final status.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware, cors middleware.CORSConfig) {
	r.Use(loggingMw.RequestID())
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())
	r.Use(middleware.NewCORSMiddleware(cors))

	Setup(r, cfg)
}
