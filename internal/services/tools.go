package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/apierr"
	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/repos"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

// ToolSwitchCooldown is the minimum wall-clock interval between tool switches
// on one scope, measured from the assignment's UpdatedOn.
const ToolSwitchCooldown = 30 * 24 * time.Hour

type ToolService interface {
	Assign(ctx context.Context, userDomainID, toolID uuid.UUID) (*types.UserTool, error)
	Switch(ctx context.Context, userDomainID, toolID uuid.UUID, reason string, actingUserID uuid.UUID) (*types.UserTool, error)
}

type toolService struct {
	db             *gorm.DB
	log            *logger.Logger
	toolRepo       repos.ToolRepo
	userDomainRepo repos.UserDomainRepo
	userToolRepo   repos.UserToolRepo
	changeLog      ChangeLogService
	now            func() time.Time
}

func NewToolService(
	db *gorm.DB,
	baseLog *logger.Logger,
	toolRepo repos.ToolRepo,
	userDomainRepo repos.UserDomainRepo,
	userToolRepo repos.UserToolRepo,
	changeLog ChangeLogService,
) ToolService {
	return &toolService{
		db:             db,
		log:            baseLog.With("service", "ToolService"),
		toolRepo:       toolRepo,
		userDomainRepo: userDomainRepo,
		userToolRepo:   userToolRepo,
		changeLog:      changeLog,
		now:            time.Now,
	}
}

func (s *toolService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *toolService) loadToolAndScope(ctx context.Context, tx *gorm.DB, userDomainID, toolID uuid.UUID) (*types.UserDomain, *types.Tool, error) {
	tools, err := s.toolRepo.GetByIDs(ctx, tx, []uuid.UUID{toolID})
	if err != nil {
		return nil, nil, apierr.Internal("load_tool_failed", err)
	}
	if len(tools) == 0 {
		return nil, nil, apierr.NotFound("tool_not_found", fmt.Errorf("tool does not exist"))
	}
	scopes, err := s.userDomainRepo.GetByIDs(ctx, tx, []uuid.UUID{userDomainID})
	if err != nil {
		return nil, nil, apierr.Internal("load_user_domain_failed", err)
	}
	if len(scopes) == 0 {
		return nil, nil, apierr.NotFound("user_domain_not_found", fmt.Errorf("enrollment scope does not exist"))
	}
	return scopes[0], tools[0], nil
}

// Assign is create-only: a scope that already holds a tool must go through
// Switch.
func (s *toolService) Assign(ctx context.Context, userDomainID, toolID uuid.UUID) (*types.UserTool, error) {
	var created *types.UserTool
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		scope, _, err := s.loadToolAndScope(ctx, tx, userDomainID, toolID)
		if err != nil {
			return err
		}
		existing, err := s.userToolRepo.GetByUserDomainID(ctx, tx, userDomainID)
		if err != nil {
			return apierr.Internal("load_user_tool_failed", err)
		}
		if existing != nil {
			return apierr.Conflict("tool_already_assigned",
				fmt.Errorf("scope already has an active tool; use switch"))
		}

		now := s.now()
		row := &types.UserTool{
			ID:           uuid.New(),
			UserDomainID: userDomainID,
			ToolID:       toolID,
			AssignedOn:   now,
			UpdatedOn:    now,
		}
		if _, err := s.userToolRepo.Create(ctx, tx, row); err != nil {
			return apierr.Internal("create_user_tool_failed", err)
		}
		s.changeLog.Record(ctx, tx, ChangeTypeUserTool, scope.UserID, scope.UserID, nil, map[string]any{
			"event":   "tool_assigned",
			"tool_id": toolID,
		})
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *toolService) Switch(ctx context.Context, userDomainID, toolID uuid.UUID, reason string, actingUserID uuid.UUID) (*types.UserTool, error) {
	var updated *types.UserTool
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		scope, _, err := s.loadToolAndScope(ctx, tx, userDomainID, toolID)
		if err != nil {
			return err
		}
		existing, err := s.userToolRepo.GetByUserDomainID(ctx, tx, userDomainID)
		if err != nil {
			return apierr.Internal("load_user_tool_failed", err)
		}
		if existing == nil {
			return apierr.NotFound("user_tool_not_found",
				fmt.Errorf("scope has no tool assignment; use assign"))
		}
		if existing.ToolID == toolID {
			return apierr.Conflict("tool_unchanged",
				fmt.Errorf("requested tool is already assigned"))
		}

		elapsed := s.now().Sub(existing.UpdatedOn)
		if elapsed < ToolSwitchCooldown {
			remaining := ToolSwitchCooldown - elapsed
			remainingDays := int(math.Ceil(remaining.Hours() / 24))
			return apierr.RateLimited("tool_switch_cooldown",
				fmt.Errorf("tool can be switched again in %d day(s)", remainingDays)).
				WithMeta("remaining_days", remainingDays)
		}

		previousToolID := existing.ToolID
		existing.ToolID = toolID
		existing.UpdatedOn = s.now()
		if err := s.userToolRepo.Save(ctx, tx, existing); err != nil {
			return apierr.Internal("save_user_tool_failed", err)
		}
		s.changeLog.Record(ctx, tx, ChangeTypeUserTool, scope.UserID, actingUserID, &reason, map[string]any{
			"event":            "tool_switched",
			"tool_id":          toolID,
			"previous_tool_id": previousToolID,
		})
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
