package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/apierr"
	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/repos"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

// ScopeService resolves which user-domain an enrollment-scoped action targets.
// A module can be offered through several domains; the enrollment row is
// always keyed per domain, so the scope must be unambiguous before any
// read or write.
type ScopeService interface {
	ResolveEnrollmentScope(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID, requestedDomainID *uuid.UUID) (*types.UserDomain, error)
}

type scopeService struct {
	db               *gorm.DB
	log              *logger.Logger
	userDomainRepo   repos.UserDomainRepo
	domainModuleRepo repos.DomainModuleRepo
}

func NewScopeService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userDomainRepo repos.UserDomainRepo,
	domainModuleRepo repos.DomainModuleRepo,
) ScopeService {
	return &scopeService{
		db:               db,
		log:              baseLog.With("service", "ScopeService"),
		userDomainRepo:   userDomainRepo,
		domainModuleRepo: domainModuleRepo,
	}
}

func (s *scopeService) ResolveEnrollmentScope(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID, requestedDomainID *uuid.UUID) (*types.UserDomain, error) {
	memberships, err := s.userDomainRepo.GetByUserID(ctx, tx, userID)
	if err != nil {
		return nil, apierr.Internal("load_user_domains_failed", err)
	}
	links, err := s.domainModuleRepo.GetByModuleIDs(ctx, tx, []uuid.UUID{moduleID})
	if err != nil {
		return nil, apierr.Internal("load_domain_modules_failed", err)
	}

	offering := make(map[uuid.UUID]bool, len(links))
	for _, link := range links {
		if link != nil {
			offering[link.DomainID] = true
		}
	}

	var candidates []*types.UserDomain
	for _, membership := range memberships {
		if membership != nil && offering[membership.DomainID] {
			candidates = append(candidates, membership)
		}
	}

	if len(candidates) == 0 {
		return nil, apierr.AccessDenied("no_qualifying_domain",
			fmt.Errorf("user is not assigned to any domain offering this module"))
	}

	if requestedDomainID != nil {
		for _, candidate := range candidates {
			if candidate.DomainID == *requestedDomainID {
				return candidate, nil
			}
		}
		return nil, apierr.AccessDenied("domain_not_qualifying",
			fmt.Errorf("requested domain does not grant access to this module for this user"))
	}

	if len(candidates) > 1 {
		domainIDs := make([]uuid.UUID, 0, len(candidates))
		for _, candidate := range candidates {
			domainIDs = append(domainIDs, candidate.DomainID)
		}
		sort.Slice(domainIDs, func(i, j int) bool { return domainIDs[i].String() < domainIDs[j].String() })
		return nil, apierr.AmbiguousScope("multiple_qualifying_domains",
			fmt.Errorf("module is reachable through %d domains, a domain id is required", len(domainIDs))).
			WithMeta("candidate_domain_ids", domainIDs)
	}

	return candidates[0], nil
}
