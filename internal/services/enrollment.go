package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/apierr"
	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/repos"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

// EnrollmentPatch carries the optional field updates an administrative caller
// may apply. Derivation order: Score beats Status (see Update).
type EnrollmentPatch struct {
	Score             *float64
	ThresholdScore    *float64
	Status            *types.EnrollmentStatus
	QuestionsAnswered *int
}

type EnrollResult struct {
	Enrollment      *types.UserModule
	AlreadyEnrolled bool
}

type EnrollmentService interface {
	Enroll(ctx context.Context, userID, moduleID uuid.UUID, domainID *uuid.UUID) (*EnrollResult, error)
	Get(ctx context.Context, userID, moduleID uuid.UUID, domainID *uuid.UUID) (*types.UserModule, error)
	Update(ctx context.Context, userID, moduleID uuid.UUID, patch EnrollmentPatch, domainID *uuid.UUID) (*types.UserModule, error)
}

type enrollmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	moduleRepo     repos.ModuleRepo
	userModuleRepo repos.UserModuleRepo
	scope          ScopeService
	changeLog      ChangeLogService
	now            func() time.Time
}

func NewEnrollmentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	moduleRepo repos.ModuleRepo,
	userModuleRepo repos.UserModuleRepo,
	scope ScopeService,
	changeLog ChangeLogService,
) EnrollmentService {
	return &enrollmentService{
		db:             db,
		log:            baseLog.With("service", "EnrollmentService"),
		userRepo:       userRepo,
		moduleRepo:     moduleRepo,
		userModuleRepo: userModuleRepo,
		scope:          scope,
		changeLog:      changeLog,
		now:            time.Now,
	}
}

func (s *enrollmentService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *enrollmentService) requireActiveUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	users, err := s.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
	if err != nil {
		return nil, apierr.Internal("load_user_failed", err)
	}
	if len(users) == 0 || !users[0].IsActive() {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user does not exist or is deactivated"))
	}
	return users[0], nil
}

func (s *enrollmentService) Enroll(ctx context.Context, userID, moduleID uuid.UUID, domainID *uuid.UUID) (*EnrollResult, error) {
	var result *EnrollResult
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.requireActiveUser(ctx, tx, userID); err != nil {
			return err
		}
		modules, err := s.moduleRepo.GetByIDs(ctx, tx, []uuid.UUID{moduleID})
		if err != nil {
			return apierr.Internal("load_module_failed", err)
		}
		if len(modules) == 0 {
			return apierr.NotFound("module_not_found", fmt.Errorf("module does not exist"))
		}
		module := modules[0]

		scope, err := s.scope.ResolveEnrollmentScope(ctx, tx, userID, moduleID, domainID)
		if err != nil {
			return err
		}

		existing, err := s.userModuleRepo.GetByScopeAndModule(ctx, tx, scope.ID, moduleID)
		if err != nil {
			return apierr.Internal("load_enrollment_failed", err)
		}
		if existing != nil {
			result = &EnrollResult{Enrollment: existing, AlreadyEnrolled: true}
			return nil
		}

		row := &types.UserModule{
			ID:             uuid.New(),
			UserDomainID:   scope.ID,
			ModuleID:       moduleID,
			Status:         types.EnrollmentTodo,
			ThresholdScore: module.ThresholdScore,
			JoinedOn:       s.now(),
		}
		if _, err := s.userModuleRepo.Create(ctx, tx, []*types.UserModule{row}); err != nil {
			return apierr.Internal("create_enrollment_failed", err)
		}
		s.changeLog.Record(ctx, tx, ChangeTypeModule, row.ID, userID, nil, map[string]any{
			"event":     "enrolled",
			"module_id": moduleID,
			"domain_id": scope.DomainID,
		})
		result = &EnrollResult{Enrollment: row}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *enrollmentService) Get(ctx context.Context, userID, moduleID uuid.UUID, domainID *uuid.UUID) (*types.UserModule, error) {
	if _, err := s.requireActiveUser(ctx, nil, userID); err != nil {
		return nil, err
	}
	scope, err := s.scope.ResolveEnrollmentScope(ctx, nil, userID, moduleID, domainID)
	if err != nil {
		return nil, err
	}
	row, err := s.userModuleRepo.GetByScopeAndModule(ctx, nil, scope.ID, moduleID)
	if err != nil {
		return nil, apierr.Internal("load_enrollment_failed", err)
	}
	if row == nil {
		return nil, apierr.NotFound("enrollment_not_found", fmt.Errorf("no enrollment for this scope and module"))
	}
	return row, nil
}

func (s *enrollmentService) Update(ctx context.Context, userID, moduleID uuid.UUID, patch EnrollmentPatch, domainID *uuid.UUID) (*types.UserModule, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apierr.InvalidState("invalid_status", fmt.Errorf("unknown enrollment status %q", *patch.Status))
	}
	if patch.Score != nil && (*patch.Score < 0 || *patch.Score > 100) {
		return nil, apierr.InvalidState("invalid_score", fmt.Errorf("score must be within 0-100, got %v", *patch.Score))
	}
	if patch.ThresholdScore != nil && (*patch.ThresholdScore < 0 || *patch.ThresholdScore > 100) {
		return nil, apierr.InvalidState("invalid_threshold", fmt.Errorf("threshold score must be within 0-100, got %v", *patch.ThresholdScore))
	}

	var updated *types.UserModule
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.requireActiveUser(ctx, tx, userID); err != nil {
			return err
		}
		scope, err := s.scope.ResolveEnrollmentScope(ctx, tx, userID, moduleID, domainID)
		if err != nil {
			return err
		}
		row, err := s.userModuleRepo.GetByScopeAndModule(ctx, tx, scope.ID, moduleID)
		if err != nil {
			return apierr.Internal("load_enrollment_failed", err)
		}
		if row == nil {
			return apierr.NotFound("enrollment_not_found", fmt.Errorf("no enrollment for this scope and module"))
		}

		if patch.QuestionsAnswered != nil {
			row.QuestionsAnswered = *patch.QuestionsAnswered
		}
		if patch.ThresholdScore != nil {
			row.ThresholdScore = *patch.ThresholdScore
		}
		if patch.Score != nil {
			row.Score = *patch.Score
		}
		s.deriveStatus(row, patch)

		if err := s.userModuleRepo.Save(ctx, tx, row); err != nil {
			return apierr.Internal("save_enrollment_failed", err)
		}
		s.changeLog.Record(ctx, tx, ChangeTypeModule, row.ID, userID, nil, map[string]any{
			"event":  "enrollment_updated",
			"status": row.Status,
			"score":  row.Score,
		})
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// deriveStatus re-derives Status/CompletedOn after patch application. A score
// update wins over an explicit status: the score is compared against the
// effective threshold (patched override first, stored value otherwise).
// CompletedOn stays in lockstep with Status: set exactly while completed.
func (s *enrollmentService) deriveStatus(row *types.UserModule, patch EnrollmentPatch) {
	if patch.Score != nil {
		if *patch.Score >= row.ThresholdScore {
			row.Status = types.EnrollmentCompleted
			now := s.now()
			row.CompletedOn = &now
		} else {
			row.Status = types.EnrollmentInProgress
			row.CompletedOn = nil
		}
		return
	}
	if patch.Status != nil {
		row.Status = *patch.Status
		if row.Status == types.EnrollmentCompleted {
			if row.CompletedOn == nil {
				now := s.now()
				row.CompletedOn = &now
			}
		} else {
			row.CompletedOn = nil
		}
	}
}
