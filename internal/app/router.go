package app

import (
	"github.com/gin-gonic/gin"

	"github.com/skillforge-io/skillforge-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:       cfg.ServiceName,
		AuthHandler:       handlers.Auth,
		AuthMiddleware:    middleware.Auth,
		EnrollmentHandler: handlers.Enrollment,
		QuizHandler:       handlers.Quiz,
		OptionHandler:     handlers.Option,
		ToolHandler:       handlers.Tool,
		CatalogHandler:    handlers.Catalog,
	})
}
