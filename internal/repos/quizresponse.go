package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

type UserQuizResponseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.UserQuizResponse) ([]*types.UserQuizResponse, error)
	GetByUserAndQuiz(ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID) ([]*types.UserQuizResponse, error)
}

type userQuizResponseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserQuizResponseRepo(db *gorm.DB, baseLog *logger.Logger) UserQuizResponseRepo {
	repoLog := baseLog.With("repo", "UserQuizResponseRepo")
	return &userQuizResponseRepo{db: db, log: repoLog}
}

func (r *userQuizResponseRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserQuizResponse) ([]*types.UserQuizResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.UserQuizResponse{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userQuizResponseRepo) GetByUserAndQuiz(ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID) ([]*types.UserQuizResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserQuizResponse
	if userID == uuid.Nil || quizID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
