package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/audit"
	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/repos"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

// Change type tags recorded by the engine.
const (
	ChangeTypeModule     = "module"
	ChangeTypeQuizOption = "quiz-question-option"
	ChangeTypeUserTool   = "user-tool"
)

// ChangeLogService is a write-only sink. Record never fails the caller: an
// audit miss is logged, the primary mutation stands (the sink keeps no veto
// over business writes).
type ChangeLogService interface {
	Record(ctx context.Context, tx *gorm.DB, changeType string, changeTypeID, userID uuid.UUID, reason *string, details map[string]any)
}

type changeLogService struct {
	db            *gorm.DB
	log           *logger.Logger
	changeLogRepo repos.ChangeLogRepo
	bus           audit.Bus
	now           func() time.Time
}

func NewChangeLogService(
	db *gorm.DB,
	baseLog *logger.Logger,
	changeLogRepo repos.ChangeLogRepo,
	bus audit.Bus,
) ChangeLogService {
	return &changeLogService{
		db:            db,
		log:           baseLog.With("service", "ChangeLogService"),
		changeLogRepo: changeLogRepo,
		bus:           bus,
		now:           time.Now,
	}
}

func (s *changeLogService) Record(ctx context.Context, tx *gorm.DB, changeType string, changeTypeID, userID uuid.UUID, reason *string, details map[string]any) {
	row := &types.ChangeLog{
		ChangeType:   changeType,
		ChangeTypeID: changeTypeID,
		UserID:       userID,
		Reason:       reason,
		CreatedAt:    s.now(),
	}
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			s.log.Warn("changelog details marshal failed", "error", err, "change_type", changeType)
		} else {
			row.Details = datatypes.JSON(raw)
		}
	}
	if _, err := s.changeLogRepo.Create(ctx, tx, []*types.ChangeLog{row}); err != nil {
		s.log.Warn("changelog write failed", "error", err, "change_type", changeType, "change_type_id", changeTypeID)
		return
	}

	if s.bus == nil {
		return
	}
	entry := audit.Entry{
		ChangeType:   changeType,
		ChangeTypeID: changeTypeID,
		UserID:       userID,
		Details:      details,
		OccurredAt:   row.CreatedAt,
	}
	if reason != nil {
		entry.Reason = *reason
	}
	if err := s.bus.Publish(ctx, entry); err != nil {
		s.log.Warn("changelog publish failed", "error", err, "change_type", changeType)
	}
}
