package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/apierr"
	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/repos"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

type CreateModuleInput struct {
	Title          string
	Description    string
	DurationHours  int
	Difficulty     string
	ThresholdScore *float64
}

// CatalogService is the administrative write path for the entities the
// enrollment engine reads: domains, modules, quizzes, questions, options,
// tools and the links between them.
type CatalogService interface {
	CreateDomain(ctx context.Context, name, description string) (*types.Domain, error)
	CreateModule(ctx context.Context, input CreateModuleInput) (*types.Module, error)
	LinkModuleToDomain(ctx context.Context, domainID, moduleID uuid.UUID) (*types.DomainModule, error)
	RegisterUserDomain(ctx context.Context, userID, domainID uuid.UUID) (*types.UserDomain, error)
	CreateQuiz(ctx context.Context, moduleID uuid.UUID, title string) (*types.Quiz, error)
	CreateQuestion(ctx context.Context, quizID uuid.UUID, text string, marks, position int) (*types.QuizQuestion, error)
	CreateOption(ctx context.Context, text string, isCorrect bool) (*types.QuizQuestionOption, error)
	CreateTool(ctx context.Context, name, description string) (*types.Tool, error)
}

type catalogService struct {
	db               *gorm.DB
	log              *logger.Logger
	userRepo         repos.UserRepo
	domainRepo       repos.DomainRepo
	moduleRepo       repos.ModuleRepo
	domainModuleRepo repos.DomainModuleRepo
	userDomainRepo   repos.UserDomainRepo
	quizRepo         repos.QuizRepo
	questionRepo     repos.QuizQuestionRepo
	optionRepo       repos.QuizOptionRepo
	toolRepo         repos.ToolRepo
	now              func() time.Time
}

func NewCatalogService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	domainRepo repos.DomainRepo,
	moduleRepo repos.ModuleRepo,
	domainModuleRepo repos.DomainModuleRepo,
	userDomainRepo repos.UserDomainRepo,
	quizRepo repos.QuizRepo,
	questionRepo repos.QuizQuestionRepo,
	optionRepo repos.QuizOptionRepo,
	toolRepo repos.ToolRepo,
) CatalogService {
	return &catalogService{
		db:               db,
		log:              baseLog.With("service", "CatalogService"),
		userRepo:         userRepo,
		domainRepo:       domainRepo,
		moduleRepo:       moduleRepo,
		domainModuleRepo: domainModuleRepo,
		userDomainRepo:   userDomainRepo,
		quizRepo:         quizRepo,
		questionRepo:     questionRepo,
		optionRepo:       optionRepo,
		toolRepo:         toolRepo,
		now:              time.Now,
	}
}

func (s *catalogService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *catalogService) CreateDomain(ctx context.Context, name, description string) (*types.Domain, error) {
	name = strings.TrimSpace(name)
	var created *types.Domain
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		existing, err := s.domainRepo.GetByNames(ctx, tx, []string{name})
		if err != nil {
			return apierr.Internal("load_domain_failed", err)
		}
		if len(existing) > 0 {
			return apierr.Conflict("domain_name_taken", fmt.Errorf("a domain named %q already exists", name))
		}
		row := &types.Domain{ID: uuid.New(), Name: name, Description: description}
		if _, err := s.domainRepo.Create(ctx, tx, []*types.Domain{row}); err != nil {
			return apierr.Internal("create_domain_failed", err)
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *catalogService) CreateModule(ctx context.Context, input CreateModuleInput) (*types.Module, error) {
	title := strings.TrimSpace(input.Title)
	var created *types.Module
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		existing, err := s.moduleRepo.GetByTitles(ctx, tx, []string{title})
		if err != nil {
			return apierr.Internal("load_module_failed", err)
		}
		if len(existing) > 0 {
			return apierr.Conflict("module_title_taken", fmt.Errorf("a module titled %q already exists", title))
		}
		threshold := types.DefaultThresholdScore
		if input.ThresholdScore != nil {
			threshold = *input.ThresholdScore
		}
		if threshold < 0 || threshold > 100 {
			return apierr.InvalidState("invalid_threshold", fmt.Errorf("threshold score must be within 0-100, got %v", threshold))
		}
		row := &types.Module{
			ID:             uuid.New(),
			Title:          title,
			Description:    input.Description,
			DurationHours:  input.DurationHours,
			Difficulty:     input.Difficulty,
			ThresholdScore: threshold,
		}
		if _, err := s.moduleRepo.Create(ctx, tx, []*types.Module{row}); err != nil {
			return apierr.Internal("create_module_failed", err)
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *catalogService) LinkModuleToDomain(ctx context.Context, domainID, moduleID uuid.UUID) (*types.DomainModule, error) {
	var link *types.DomainModule
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		domains, err := s.domainRepo.GetByIDs(ctx, tx, []uuid.UUID{domainID})
		if err != nil {
			return apierr.Internal("load_domain_failed", err)
		}
		if len(domains) == 0 {
			return apierr.NotFound("domain_not_found", fmt.Errorf("domain does not exist"))
		}
		modules, err := s.moduleRepo.GetByIDs(ctx, tx, []uuid.UUID{moduleID})
		if err != nil {
			return apierr.Internal("load_module_failed", err)
		}
		if len(modules) == 0 {
			return apierr.NotFound("module_not_found", fmt.Errorf("module does not exist"))
		}
		existing, err := s.domainModuleRepo.GetByDomainAndModule(ctx, tx, domainID, moduleID)
		if err != nil {
			return apierr.Internal("load_domain_module_failed", err)
		}
		if existing != nil {
			link = existing
			return nil
		}
		row := &types.DomainModule{ID: uuid.New(), DomainID: domainID, ModuleID: moduleID}
		if _, err := s.domainModuleRepo.Create(ctx, tx, []*types.DomainModule{row}); err != nil {
			return apierr.Internal("create_domain_module_failed", err)
		}
		link = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (s *catalogService) RegisterUserDomain(ctx context.Context, userID, domainID uuid.UUID) (*types.UserDomain, error) {
	var scope *types.UserDomain
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		users, err := s.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
		if err != nil {
			return apierr.Internal("load_user_failed", err)
		}
		if len(users) == 0 || !users[0].IsActive() {
			return apierr.NotFound("user_not_found", fmt.Errorf("user does not exist or is deactivated"))
		}
		domains, err := s.domainRepo.GetByIDs(ctx, tx, []uuid.UUID{domainID})
		if err != nil {
			return apierr.Internal("load_domain_failed", err)
		}
		if len(domains) == 0 {
			return apierr.NotFound("domain_not_found", fmt.Errorf("domain does not exist"))
		}
		existing, err := s.userDomainRepo.GetByUserAndDomain(ctx, tx, userID, domainID)
		if err != nil {
			return apierr.Internal("load_user_domain_failed", err)
		}
		if existing != nil {
			scope = existing
			return nil
		}
		row := &types.UserDomain{ID: uuid.New(), UserID: userID, DomainID: domainID}
		if _, err := s.userDomainRepo.Create(ctx, tx, []*types.UserDomain{row}); err != nil {
			return apierr.Internal("create_user_domain_failed", err)
		}
		scope = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scope, nil
}

func (s *catalogService) CreateQuiz(ctx context.Context, moduleID uuid.UUID, title string) (*types.Quiz, error) {
	var created *types.Quiz
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		modules, err := s.moduleRepo.GetByIDs(ctx, tx, []uuid.UUID{moduleID})
		if err != nil {
			return apierr.Internal("load_module_failed", err)
		}
		if len(modules) == 0 {
			return apierr.NotFound("module_not_found", fmt.Errorf("module does not exist"))
		}
		row := &types.Quiz{ID: uuid.New(), ModuleID: moduleID, Title: strings.TrimSpace(title)}
		if _, err := s.quizRepo.Create(ctx, tx, []*types.Quiz{row}); err != nil {
			return apierr.Internal("create_quiz_failed", err)
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *catalogService) CreateQuestion(ctx context.Context, quizID uuid.UUID, text string, marks, position int) (*types.QuizQuestion, error) {
	if marks < 0 {
		return nil, apierr.InvalidState("invalid_marks", fmt.Errorf("marks must be non-negative"))
	}
	var created *types.QuizQuestion
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		quizzes, err := s.quizRepo.GetByIDs(ctx, tx, []uuid.UUID{quizID})
		if err != nil {
			return apierr.Internal("load_quiz_failed", err)
		}
		if len(quizzes) == 0 {
			return apierr.NotFound("quiz_not_found", fmt.Errorf("quiz does not exist"))
		}
		row := &types.QuizQuestion{
			ID:           uuid.New(),
			QuizID:       quizID,
			QuestionText: strings.TrimSpace(text),
			Marks:        marks,
			Position:     position,
		}
		if _, err := s.questionRepo.Create(ctx, tx, []*types.QuizQuestion{row}); err != nil {
			return apierr.Internal("create_question_failed", err)
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *catalogService) CreateOption(ctx context.Context, text string, isCorrect bool) (*types.QuizQuestionOption, error) {
	row := &types.QuizQuestionOption{ID: uuid.New(), OptionText: strings.TrimSpace(text), IsCorrect: isCorrect}
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.optionRepo.Create(ctx, tx, []*types.QuizQuestionOption{row}); err != nil {
			// Unique option text; surface the constraint as a conflict.
			return apierr.Conflict("option_text_taken", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *catalogService) CreateTool(ctx context.Context, name, description string) (*types.Tool, error) {
	name = strings.TrimSpace(name)
	var created *types.Tool
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		existing, err := s.toolRepo.GetByNames(ctx, tx, []string{name})
		if err != nil {
			return apierr.Internal("load_tool_failed", err)
		}
		if len(existing) > 0 {
			return apierr.Conflict("tool_name_taken", fmt.Errorf("a tool named %q already exists", name))
		}
		row := &types.Tool{ID: uuid.New(), Name: name, Description: description}
		if _, err := s.toolRepo.Create(ctx, tx, []*types.Tool{row}); err != nil {
			return apierr.Internal("create_tool_failed", err)
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
