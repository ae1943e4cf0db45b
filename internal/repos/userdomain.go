package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

type UserDomainRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.UserDomain) ([]*types.UserDomain, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.UserDomain, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserDomain, error)
	GetByUserAndDomain(ctx context.Context, tx *gorm.DB, userID, domainID uuid.UUID) (*types.UserDomain, error)
}

type userDomainRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserDomainRepo(db *gorm.DB, baseLog *logger.Logger) UserDomainRepo {
	repoLog := baseLog.With("repo", "UserDomainRepo")
	return &userDomainRepo{db: db, log: repoLog}
}

func (r *userDomainRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserDomain) ([]*types.UserDomain, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.UserDomain{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userDomainRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.UserDomain, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserDomain
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

func (r *userDomainRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserDomain, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserDomain
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userDomainRepo) GetByUserAndDomain(ctx context.Context, tx *gorm.DB, userID, domainID uuid.UUID) (*types.UserDomain, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserDomain
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND domain_id = ?", userID, domainID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
