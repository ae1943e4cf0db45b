package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

type DomainRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Domain) ([]*types.Domain, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Domain, error)
	GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Domain, error)
}

type domainRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDomainRepo(db *gorm.DB, baseLog *logger.Logger) DomainRepo {
	repoLog := baseLog.With("repo", "DomainRepo")
	return &domainRepo{db: db, log: repoLog}
}

func (r *domainRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Domain) ([]*types.Domain, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Domain{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *domainRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Domain, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Domain
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

func (r *domainRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Domain, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Domain
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
