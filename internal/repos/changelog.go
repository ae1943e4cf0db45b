package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

type ChangeLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ChangeLog) ([]*types.ChangeLog, error)
}

type changeLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChangeLogRepo(db *gorm.DB, baseLog *logger.Logger) ChangeLogRepo {
	repoLog := baseLog.With("repo", "ChangeLogRepo")
	return &changeLogRepo{db: db, log: repoLog}
}

func (r *changeLogRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ChangeLog) ([]*types.ChangeLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.ChangeLog{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
