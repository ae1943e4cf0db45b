package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

type UserModuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.UserModule) ([]*types.UserModule, error)
	GetByScopeAndModule(ctx context.Context, tx *gorm.DB, userDomainID, moduleID uuid.UUID) (*types.UserModule, error)
	// GetByScopesAndModule returns every enrollment for the module across the
	// given scopes, oldest join first.
	GetByScopesAndModule(ctx context.Context, tx *gorm.DB, userDomainIDs []uuid.UUID, moduleID uuid.UUID) ([]*types.UserModule, error)
	Save(ctx context.Context, tx *gorm.DB, row *types.UserModule) error
}

type userModuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserModuleRepo(db *gorm.DB, baseLog *logger.Logger) UserModuleRepo {
	repoLog := baseLog.With("repo", "UserModuleRepo")
	return &userModuleRepo{db: db, log: repoLog}
}

func (r *userModuleRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserModule) ([]*types.UserModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.UserModule{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userModuleRepo) GetByScopeAndModule(ctx context.Context, tx *gorm.DB, userDomainID, moduleID uuid.UUID) (*types.UserModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserModule
	if err := transaction.WithContext(ctx).
		Where("user_domain_id = ? AND module_id = ?", userDomainID, moduleID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *userModuleRepo) GetByScopesAndModule(ctx context.Context, tx *gorm.DB, userDomainIDs []uuid.UUID, moduleID uuid.UUID) ([]*types.UserModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserModule
	if len(userDomainIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_domain_id IN ? AND module_id = ?", userDomainIDs, moduleID).
		Order("joined_on ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userModuleRepo) Save(ctx context.Context, tx *gorm.DB, row *types.UserModule) error {
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
