package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/apierr"
	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/repos"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

// Attempt classification is a fixed three-tier scale, deliberately separate
// from the per-enrollment threshold used by EnrollmentService.Update.
const (
	attemptPassLine     = 70.0
	attemptProgressLine = 40.0
)

type AttemptOutcome string

const (
	OutcomePassed     AttemptOutcome = "passed"
	OutcomeInProgress AttemptOutcome = "in_progress"
	OutcomeFailed     AttemptOutcome = "failed"
)

type AnswerInput struct {
	QuestionID uuid.UUID
	OptionID   uuid.UUID
}

type AttemptResult struct {
	QuizID           uuid.UUID              `json:"quiz_id"`
	ModuleID         uuid.UUID              `json:"module_id"`
	EnrollmentID     uuid.UUID              `json:"enrollment_id"`
	TotalQuestions   int                    `json:"total_questions"`
	SubmittedAnswers int                    `json:"submitted_answers"`
	ScoredAnswers    int                    `json:"scored_answers"`
	CorrectAnswers   int                    `json:"correct_answers"`
	MarksObtained    int                    `json:"marks_obtained"`
	TotalMarks       int                    `json:"total_marks"`
	Percentage       float64                `json:"percentage"`
	Outcome          AttemptOutcome         `json:"outcome"`
	EnrollmentStatus types.EnrollmentStatus `json:"enrollment_status"`
	CompletedOn      *time.Time             `json:"completed_on,omitempty"`
}

type QuizResultSnapshot struct {
	QuizID            uuid.UUID              `json:"quiz_id"`
	ModuleID          uuid.UUID              `json:"module_id"`
	Score             float64                `json:"score"`
	Status            types.EnrollmentStatus `json:"status"`
	CompletedOn       *time.Time             `json:"completed_on,omitempty"`
	QuestionsAnswered int                    `json:"questions_answered"`
}

type QuizScoringService interface {
	AttemptQuiz(ctx context.Context, userID, quizID uuid.UUID, answers []AnswerInput) (*AttemptResult, error)
	GetQuizResult(ctx context.Context, userID, quizID uuid.UUID) (*QuizResultSnapshot, error)
}

type quizScoringService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	quizRepo       repos.QuizRepo
	questionRepo   repos.QuizQuestionRepo
	optionRepo     repos.QuizOptionRepo
	responseRepo   repos.UserQuizResponseRepo
	userDomainRepo repos.UserDomainRepo
	userModuleRepo repos.UserModuleRepo
	changeLog      ChangeLogService
	now            func() time.Time
}

func NewQuizScoringService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	quizRepo repos.QuizRepo,
	questionRepo repos.QuizQuestionRepo,
	optionRepo repos.QuizOptionRepo,
	responseRepo repos.UserQuizResponseRepo,
	userDomainRepo repos.UserDomainRepo,
	userModuleRepo repos.UserModuleRepo,
	changeLog ChangeLogService,
) QuizScoringService {
	return &quizScoringService{
		db:             db,
		log:            baseLog.With("service", "QuizScoringService"),
		userRepo:       userRepo,
		quizRepo:       quizRepo,
		questionRepo:   questionRepo,
		optionRepo:     optionRepo,
		responseRepo:   responseRepo,
		userDomainRepo: userDomainRepo,
		userModuleRepo: userModuleRepo,
		changeLog:      changeLog,
		now:            time.Now,
	}
}

func (s *quizScoringService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *quizScoringService) requireActiveUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	users, err := s.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
	if err != nil {
		return apierr.Internal("load_user_failed", err)
	}
	if len(users) == 0 || !users[0].IsActive() {
		return apierr.NotFound("user_not_found", fmt.Errorf("user does not exist or is deactivated"))
	}
	return nil
}

func (s *quizScoringService) AttemptQuiz(ctx context.Context, userID, quizID uuid.UUID, answers []AnswerInput) (*AttemptResult, error) {
	var result *AttemptResult
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		if err := s.requireActiveUser(ctx, tx, userID); err != nil {
			return err
		}

		quizzes, err := s.quizRepo.GetByIDs(ctx, tx, []uuid.UUID{quizID})
		if err != nil {
			return apierr.Internal("load_quiz_failed", err)
		}
		if len(quizzes) == 0 {
			return apierr.NotFound("quiz_not_found", fmt.Errorf("quiz does not exist"))
		}
		quiz := quizzes[0]

		questions, err := s.questionRepo.GetByQuizIDs(ctx, tx, []uuid.UUID{quizID})
		if err != nil {
			return apierr.Internal("load_questions_failed", err)
		}
		questionByID := make(map[uuid.UUID]*types.QuizQuestion, len(questions))
		totalMarks := 0
		for _, q := range questions {
			questionByID[q.ID] = q
			totalMarks += q.Marks
		}

		// One scored answer per question: repeats of a question within the
		// submission are dropped after the first, keeping a single response
		// row per (user, quiz, question) and the score within 0-100.
		deduped := make([]AnswerInput, 0, len(answers))
		seenQuestions := make(map[uuid.UUID]struct{}, len(answers))
		for _, a := range answers {
			if _, ok := seenQuestions[a.QuestionID]; ok {
				continue
			}
			seenQuestions[a.QuestionID] = struct{}{}
			deduped = append(deduped, a)
		}

		optionIDs := make([]uuid.UUID, 0, len(deduped))
		for _, a := range deduped {
			if a.OptionID != uuid.Nil {
				optionIDs = append(optionIDs, a.OptionID)
			}
		}
		options, err := s.optionRepo.GetByIDs(ctx, tx, optionIDs)
		if err != nil {
			return apierr.Internal("load_options_failed", err)
		}
		optionByID := make(map[uuid.UUID]*types.QuizQuestionOption, len(options))
		for _, o := range options {
			optionByID[o.ID] = o
		}

		// Answers pointing at a question or option that no longer resolves are
		// skipped, not failed: stale ids from a re-edited quiz must not void
		// the whole attempt.
		var rows []*types.UserQuizResponse
		correct := 0
		obtained := 0
		attemptedAt := s.now()
		for _, a := range deduped {
			question, qok := questionByID[a.QuestionID]
			option, ook := optionByID[a.OptionID]
			if !qok || !ook {
				continue
			}
			marks := 0
			if option.IsCorrect {
				marks = question.Marks
				correct++
			}
			obtained += marks
			optID := option.ID
			rows = append(rows, &types.UserQuizResponse{
				ID:            uuid.New(),
				UserID:        userID,
				QuizID:        quizID,
				QuestionID:    question.ID,
				OptionID:      &optID,
				IsCorrect:     option.IsCorrect,
				MarksObtained: marks,
				CreatedAt:     attemptedAt,
			})
		}
		if _, err := s.responseRepo.Create(ctx, tx, rows); err != nil {
			return apierr.Internal("save_responses_failed", err)
		}

		denominator := totalMarks
		if denominator < 1 {
			denominator = 1
		}
		percentage := math.Round(float64(obtained)/float64(denominator)*100*100) / 100
		outcome := classifyAttempt(percentage)

		enrollment, err := s.findEnrollment(ctx, tx, userID, quiz.ModuleID)
		if err != nil {
			return err
		}
		if enrollment == nil {
			return apierr.NotEnrolled("not_enrolled", fmt.Errorf("no enrollment exists for this module; scoring never creates one"))
		}

		enrollment.QuestionsAnswered = len(deduped)
		enrollment.Score = percentage
		if outcome == OutcomePassed {
			enrollment.Status = types.EnrollmentCompleted
			enrollment.CompletedOn = &attemptedAt
		} else {
			enrollment.Status = types.EnrollmentInProgress
			enrollment.CompletedOn = nil
		}
		if err := s.userModuleRepo.Save(ctx, tx, enrollment); err != nil {
			return apierr.Internal("save_enrollment_failed", err)
		}
		s.changeLog.Record(ctx, tx, ChangeTypeModule, enrollment.ID, userID, nil, map[string]any{
			"event":      "quiz_attempt",
			"quiz_id":    quizID,
			"percentage": percentage,
			"outcome":    outcome,
		})

		result = &AttemptResult{
			QuizID:           quizID,
			ModuleID:         quiz.ModuleID,
			EnrollmentID:     enrollment.ID,
			TotalQuestions:   len(questions),
			SubmittedAnswers: len(answers),
			ScoredAnswers:    len(rows),
			CorrectAnswers:   correct,
			MarksObtained:    obtained,
			TotalMarks:       totalMarks,
			Percentage:       percentage,
			Outcome:          outcome,
			EnrollmentStatus: enrollment.Status,
			CompletedOn:      enrollment.CompletedOn,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *quizScoringService) GetQuizResult(ctx context.Context, userID, quizID uuid.UUID) (*QuizResultSnapshot, error) {
	if err := s.requireActiveUser(ctx, nil, userID); err != nil {
		return nil, err
	}
	quizzes, err := s.quizRepo.GetByIDs(ctx, nil, []uuid.UUID{quizID})
	if err != nil {
		return nil, apierr.Internal("load_quiz_failed", err)
	}
	if len(quizzes) == 0 {
		return nil, apierr.NotFound("quiz_not_found", fmt.Errorf("quiz does not exist"))
	}
	quiz := quizzes[0]

	enrollment, err := s.findEnrollment(ctx, nil, userID, quiz.ModuleID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, apierr.NotFound("enrollment_not_found", fmt.Errorf("no enrollment for this user and module"))
	}
	return &QuizResultSnapshot{
		QuizID:            quizID,
		ModuleID:          quiz.ModuleID,
		Score:             enrollment.Score,
		Status:            enrollment.Status,
		CompletedOn:       enrollment.CompletedOn,
		QuestionsAnswered: enrollment.QuestionsAnswered,
	}, nil
}

// findEnrollment walks the user's scopes for the module. With multiple
// qualifying scopes the oldest enrollment wins (joined_on ordering from the
// repo).
func (s *quizScoringService) findEnrollment(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) (*types.UserModule, error) {
	memberships, err := s.userDomainRepo.GetByUserID(ctx, tx, userID)
	if err != nil {
		return nil, apierr.Internal("load_user_domains_failed", err)
	}
	scopeIDs := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		scopeIDs = append(scopeIDs, m.ID)
	}
	enrollments, err := s.userModuleRepo.GetByScopesAndModule(ctx, tx, scopeIDs, moduleID)
	if err != nil {
		return nil, apierr.Internal("load_enrollments_failed", err)
	}
	if len(enrollments) == 0 {
		return nil, nil
	}
	return enrollments[0], nil
}

func classifyAttempt(percentage float64) AttemptOutcome {
	switch {
	case percentage >= attemptPassLine:
		return OutcomePassed
	case percentage >= attemptProgressLine:
		return OutcomeInProgress
	default:
		return OutcomeFailed
	}
}
