package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

type ModuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Module) ([]*types.Module, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Module, error)
	GetByTitles(ctx context.Context, tx *gorm.DB, titles []string) ([]*types.Module, error)
}

type moduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleRepo(db *gorm.DB, baseLog *logger.Logger) ModuleRepo {
	repoLog := baseLog.With("repo", "ModuleRepo")
	return &moduleRepo{db: db, log: repoLog}
}

func (r *moduleRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Module) ([]*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Module{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *moduleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Module
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

func (r *moduleRepo) GetByTitles(ctx context.Context, tx *gorm.DB, titles []string) ([]*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Module
	if len(titles) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("title IN ?", titles).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
