package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

type UserToolRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.UserTool) (*types.UserTool, error)
	GetByUserDomainID(ctx context.Context, tx *gorm.DB, userDomainID uuid.UUID) (*types.UserTool, error)
	Save(ctx context.Context, tx *gorm.DB, row *types.UserTool) error
}

type userToolRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserToolRepo(db *gorm.DB, baseLog *logger.Logger) UserToolRepo {
	repoLog := baseLog.With("repo", "UserToolRepo")
	return &userToolRepo{db: db, log: repoLog}
}

func (r *userToolRepo) Create(ctx context.Context, tx *gorm.DB, row *types.UserTool) (*types.UserTool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *userToolRepo) GetByUserDomainID(ctx context.Context, tx *gorm.DB, userDomainID uuid.UUID) (*types.UserTool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserTool
	if userDomainID == uuid.Nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_domain_id = ?", userDomainID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *userToolRepo) Save(ctx context.Context, tx *gorm.DB, row *types.UserTool) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
		return err
	}
	return nil
}
