package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

type ToolRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Tool) ([]*types.Tool, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Tool, error)
	GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Tool, error)
}

type toolRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewToolRepo(db *gorm.DB, baseLog *logger.Logger) ToolRepo {
	repoLog := baseLog.With("repo", "ToolRepo")
	return &toolRepo{db: db, log: repoLog}
}

func (r *toolRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Tool) ([]*types.Tool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Tool{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *toolRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Tool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Tool
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

func (r *toolRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Tool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Tool
	if len(names) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("name IN ?", names).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
