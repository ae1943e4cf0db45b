package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/apierr"
	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/repos"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

// RequiredOptionCount is the exact option count a fully assigned question
// carries. Assignment calls must land the question on this count, not below
// or above it.
const RequiredOptionCount = 4

// DefaultMaxCorrectOptions caps correct options per question. The product
// copy historically advertised a lower cap; the enforced bound is this one.
const DefaultMaxCorrectOptions = 4

const MinCorrectOptions = 1

type QuizOptionService interface {
	AssignOptions(ctx context.Context, questionID uuid.UUID, optionIDs []uuid.UUID) ([]uuid.UUID, error)
	DeleteOption(ctx context.Context, optionID uuid.UUID, reason string, actingUserID uuid.UUID) error
}

type quizOptionService struct {
	db           *gorm.DB
	log          *logger.Logger
	questionRepo repos.QuizQuestionRepo
	optionRepo   repos.QuizOptionRepo
	changeLog    ChangeLogService

	// MaxCorrect is overridable for deployments that want a tighter bound.
	maxCorrect int
}

func NewQuizOptionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	questionRepo repos.QuizQuestionRepo,
	optionRepo repos.QuizOptionRepo,
	changeLog ChangeLogService,
) QuizOptionService {
	return &quizOptionService{
		db:           db,
		log:          baseLog.With("service", "QuizOptionService"),
		questionRepo: questionRepo,
		optionRepo:   optionRepo,
		changeLog:    changeLog,
		maxCorrect:   DefaultMaxCorrectOptions,
	}
}

func (s *quizOptionService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// AssignOptions runs the precondition chain in a fixed order; the first
// violated check decides the failure kind.
func (s *quizOptionService) AssignOptions(ctx context.Context, questionID uuid.UUID, optionIDs []uuid.UUID) ([]uuid.UUID, error) {
	var assigned []uuid.UUID
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		questions, err := s.questionRepo.GetByIDs(ctx, tx, []uuid.UUID{questionID})
		if err != nil {
			return apierr.Internal("load_question_failed", err)
		}
		if len(questions) == 0 {
			return apierr.NotFound("question_not_found", fmt.Errorf("question does not exist"))
		}

		incoming, err := s.optionRepo.GetByIDs(ctx, tx, optionIDs)
		if err != nil {
			return apierr.Internal("load_options_failed", err)
		}
		incomingByID := make(map[uuid.UUID]*types.QuizQuestionOption, len(incoming))
		for _, o := range incoming {
			incomingByID[o.ID] = o
		}
		var missing []uuid.UUID
		for _, id := range optionIDs {
			if _, ok := incomingByID[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			sortIDs(missing)
			return apierr.NotFound("options_not_found",
				fmt.Errorf("%d referenced options do not exist", len(missing))).
				WithMeta("missing_option_ids", missing)
		}

		var duplicates []uuid.UUID
		for _, o := range incoming {
			if o.QuestionID != nil && *o.QuestionID == questionID {
				duplicates = append(duplicates, o.ID)
			}
		}
		if len(duplicates) > 0 {
			sortIDs(duplicates)
			return apierr.Conflict("options_already_assigned",
				fmt.Errorf("%d options already belong to this question", len(duplicates))).
				WithMeta("duplicate_option_ids", duplicates)
		}

		existing, err := s.optionRepo.GetByQuestionID(ctx, tx, questionID)
		if err != nil {
			return apierr.Internal("load_existing_options_failed", err)
		}
		existingCorrect := 0
		for _, o := range existing {
			if o.IsCorrect {
				existingCorrect++
			}
		}
		incomingCorrect := 0
		for _, o := range incoming {
			if o.IsCorrect {
				incomingCorrect++
			}
		}
		totalCorrect := existingCorrect + incomingCorrect
		if totalCorrect < MinCorrectOptions {
			return apierr.InvalidState("no_correct_option",
				fmt.Errorf("every question needs at least one correct option"))
		}
		if totalCorrect > s.maxCorrect {
			return apierr.InvalidState("too_many_correct_options",
				fmt.Errorf("question would have %d correct options, cap is %d", totalCorrect, s.maxCorrect))
		}

		totalOptions := len(existing) + len(incoming)
		if totalOptions != RequiredOptionCount {
			return apierr.InvalidState("wrong_option_count",
				fmt.Errorf("assignment must complete the question to exactly %d options, would end at %d", RequiredOptionCount, totalOptions))
		}

		if err := s.optionRepo.AttachToQuestion(ctx, tx, questionID, optionIDs); err != nil {
			return apierr.Internal("attach_options_failed", err)
		}
		assigned = append([]uuid.UUID(nil), optionIDs...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assigned, nil
}

func (s *quizOptionService) DeleteOption(ctx context.Context, optionID uuid.UUID, reason string, actingUserID uuid.UUID) error {
	return s.inTx(ctx, func(tx *gorm.DB) error {
		options, err := s.optionRepo.GetByIDs(ctx, tx, []uuid.UUID{optionID})
		if err != nil {
			return apierr.Internal("load_option_failed", err)
		}
		if len(options) == 0 {
			return apierr.NotFound("option_not_found", fmt.Errorf("option does not exist"))
		}

		// Detach first so historical responses drop to a null option reference
		// instead of dangling.
		if err := s.optionRepo.Detach(ctx, tx, optionID); err != nil {
			return apierr.Internal("detach_option_failed", err)
		}
		if err := s.optionRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{optionID}); err != nil {
			return apierr.Internal("delete_option_failed", err)
		}
		s.changeLog.Record(ctx, tx, ChangeTypeQuizOption, optionID, actingUserID, &reason, map[string]any{
			"event":       "option_deleted",
			"option_text": options[0].OptionText,
		})
		return nil
	})
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
}
