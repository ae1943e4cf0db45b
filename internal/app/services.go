package app

import (
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/audit"
	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/services"
)

type Services struct {
	Token      services.TokenService
	ChangeLog  services.ChangeLogService
	Scope      services.ScopeService
	Enrollment services.EnrollmentService
	Scoring    services.QuizScoringService
	Options    services.QuizOptionService
	Tools      services.ToolService
	Catalog    services.CatalogService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")

	// The audit bus is optional: without a redis addr the changelog still
	// writes rows, it just stops fanning out.
	var bus audit.Bus
	if cfg.RedisAddr != "" {
		b, err := audit.NewRedisBus(log, cfg.RedisAddr, cfg.AuditChannel)
		if err != nil {
			log.Warn("audit bus init failed, continuing without fan-out", "error", err)
		} else {
			bus = b
		}
	}

	changeLog := services.NewChangeLogService(db, log, r.ChangeLog, bus)
	scope := services.NewScopeService(db, log, r.UserDomain, r.DomainModule)

	return Services{
		Token:      services.NewTokenService(log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		ChangeLog:  changeLog,
		Scope:      scope,
		Enrollment: services.NewEnrollmentService(db, log, r.User, r.Module, r.UserModule, scope, changeLog),
		Scoring: services.NewQuizScoringService(
			db, log,
			r.User, r.Quiz, r.QuizQuestion, r.QuizOption, r.UserQuizResponse,
			r.UserDomain, r.UserModule,
			changeLog,
		),
		Options: services.NewQuizOptionService(db, log, r.QuizQuestion, r.QuizOption, changeLog),
		Tools:   services.NewToolService(db, log, r.Tool, r.UserDomain, r.UserTool, changeLog),
		Catalog: services.NewCatalogService(
			db, log,
			r.User, r.Domain, r.Module, r.DomainModule, r.UserDomain,
			r.Quiz, r.QuizQuestion, r.QuizOption, r.Tool,
		),
	}
}
