package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

type DomainModuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.DomainModule) ([]*types.DomainModule, error)
	GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.DomainModule, error)
	GetByDomainAndModule(ctx context.Context, tx *gorm.DB, domainID, moduleID uuid.UUID) (*types.DomainModule, error)
}

type domainModuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDomainModuleRepo(db *gorm.DB, baseLog *logger.Logger) DomainModuleRepo {
	repoLog := baseLog.With("repo", "DomainModuleRepo")
	return &domainModuleRepo{db: db, log: repoLog}
}

func (r *domainModuleRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.DomainModule) ([]*types.DomainModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.DomainModule{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *domainModuleRepo) GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.DomainModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.DomainModule
	if len(moduleIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("module_id IN ?", moduleIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *domainModuleRepo) GetByDomainAndModule(ctx context.Context, tx *gorm.DB, domainID, moduleID uuid.UUID) (*types.DomainModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.DomainModule
	if err := transaction.WithContext(ctx).
		Where("domain_id = ? AND module_id = ?", domainID, moduleID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
