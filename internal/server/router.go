package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/skillforge-io/skillforge-backend/internal/handlers"
	"github.com/skillforge-io/skillforge-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName       string
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	EnrollmentHandler *handlers.EnrollmentHandler
	QuizHandler       *handlers.QuizHandler
	OptionHandler     *handlers.OptionHandler
	ToolHandler       *handlers.ToolHandler
	CatalogHandler    *handlers.CatalogHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/token", cfg.AuthHandler.IssueToken)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Catalog
	api.POST("/domains", cfg.CatalogHandler.CreateDomain)
	api.POST("/domains/:id/modules", cfg.CatalogHandler.LinkModule)
	api.POST("/domains/:id/members", cfg.CatalogHandler.JoinDomain)
	api.POST("/modules", cfg.CatalogHandler.CreateModule)
	api.POST("/quizzes", cfg.CatalogHandler.CreateQuiz)
	api.POST("/quizzes/:id/questions", cfg.CatalogHandler.CreateQuestion)
	api.POST("/options", cfg.CatalogHandler.CreateOption)
	api.POST("/tools", cfg.CatalogHandler.CreateTool)

	// Enrollment
	api.POST("/enrollments", cfg.EnrollmentHandler.Enroll)
	api.GET("/modules/:id/enrollment", cfg.EnrollmentHandler.GetEnrollment)
	api.PATCH("/modules/:id/enrollment", cfg.EnrollmentHandler.UpdateEnrollment)

	// Quiz scoring
	api.POST("/quizzes/:id/attempts", cfg.QuizHandler.SubmitAttempt)
	api.GET("/quizzes/:id/result", cfg.QuizHandler.GetResult)

	// Option assignment
	api.POST("/questions/:id/options", cfg.OptionHandler.AssignOptions)
	api.DELETE("/options/:id", cfg.OptionHandler.DeleteOption)

	// Tool assignment
	api.POST("/scopes/:id/tool", cfg.ToolHandler.AssignTool)
	api.PUT("/scopes/:id/tool", cfg.ToolHandler.SwitchTool)

	return router
}
