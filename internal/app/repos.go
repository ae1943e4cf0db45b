package app

import (
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/repos"
)

type Repos struct {
	User             repos.UserRepo
	Domain           repos.DomainRepo
	Module           repos.ModuleRepo
	DomainModule     repos.DomainModuleRepo
	UserDomain       repos.UserDomainRepo
	UserModule       repos.UserModuleRepo
	Quiz             repos.QuizRepo
	QuizQuestion     repos.QuizQuestionRepo
	QuizOption       repos.QuizOptionRepo
	UserQuizResponse repos.UserQuizResponseRepo
	Tool             repos.ToolRepo
	UserTool         repos.UserToolRepo
	ChangeLog        repos.ChangeLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:             repos.NewUserRepo(db, log),
		Domain:           repos.NewDomainRepo(db, log),
		Module:           repos.NewModuleRepo(db, log),
		DomainModule:     repos.NewDomainModuleRepo(db, log),
		UserDomain:       repos.NewUserDomainRepo(db, log),
		UserModule:       repos.NewUserModuleRepo(db, log),
		Quiz:             repos.NewQuizRepo(db, log),
		QuizQuestion:     repos.NewQuizQuestionRepo(db, log),
		QuizOption:       repos.NewQuizOptionRepo(db, log),
		UserQuizResponse: repos.NewUserQuizResponseRepo(db, log),
		Tool:             repos.NewToolRepo(db, log),
		UserTool:         repos.NewUserToolRepo(db, log),
		ChangeLog:        repos.NewChangeLogRepo(db, log),
	}
}
