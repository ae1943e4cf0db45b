package app

import (
	"github.com/skillforge-io/skillforge-backend/internal/handlers"
	"github.com/skillforge-io/skillforge-backend/internal/logger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Enrollment *handlers.EnrollmentHandler
	Quiz       *handlers.QuizHandler
	Option     *handlers.OptionHandler
	Tool       *handlers.ToolHandler
	Catalog    *handlers.CatalogHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       handlers.NewAuthHandler(log, services.Token),
		Enrollment: handlers.NewEnrollmentHandler(log, services.Enrollment),
		Quiz:       handlers.NewQuizHandler(log, services.Scoring),
		Option:     handlers.NewOptionHandler(log, services.Options),
		Tool:       handlers.NewToolHandler(log, services.Tools),
		Catalog:    handlers.NewCatalogHandler(log, services.Catalog),
	}
}
