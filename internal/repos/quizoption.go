package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

type QuizOptionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.QuizQuestionOption) ([]*types.QuizQuestionOption, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.QuizQuestionOption, error)
	GetByQuestionID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) ([]*types.QuizQuestionOption, error)
	AttachToQuestion(ctx context.Context, tx *gorm.DB, questionID uuid.UUID, optionIDs []uuid.UUID) error
	Detach(ctx context.Context, tx *gorm.DB, optionID uuid.UUID) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type quizOptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizOptionRepo(db *gorm.DB, baseLog *logger.Logger) QuizOptionRepo {
	repoLog := baseLog.With("repo", "QuizOptionRepo")
	return &quizOptionRepo{db: db, log: repoLog}
}

func (r *quizOptionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.QuizQuestionOption) ([]*types.QuizQuestionOption, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.QuizQuestionOption{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *quizOptionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.QuizQuestionOption, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizQuestionOption
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizOptionRepo) GetByQuestionID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) ([]*types.QuizQuestionOption, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizQuestionOption
	if questionID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("question_id = ?", questionID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizOptionRepo) AttachToQuestion(ctx context.Context, tx *gorm.DB, questionID uuid.UUID, optionIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(optionIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.QuizQuestionOption{}).
		Where("id IN ?", optionIDs).
		Update("question_id", questionID).Error; err != nil {
		return err
	}
	return nil
}

func (r *quizOptionRepo) Detach(ctx context.Context, tx *gorm.DB, optionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if optionID == uuid.Nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.QuizQuestionOption{}).
		Where("id = ?", optionID).
		Update("question_id", nil).Error; err != nil {
		return err
	}
	return nil
}

func (r *quizOptionRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", ids).
		Delete(&types.QuizQuestionOption{}).Error; err != nil {
		return err
	}
	return nil
}
