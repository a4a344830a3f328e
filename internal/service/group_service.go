package service

import (
	"context"
	"fmt"

	"squad-be/internal/domain"
	"squad-be/internal/repository"
	"squad-be/pkg/redis"

	"go.uber.org/zap"
)

// GroupService coordinates squad lifecycle transitions and warm-up progress.
// Transition legality is decided by the status graph, but the write itself is
// a conditional update in the repository; the service maps a missed update to
// a conflict the caller can retry.
type GroupService struct {
	groups       repository.GroupRepository
	graph        *domain.StatusGraph
	cacheService *CacheService
	logger       *zap.Logger
	minReadyPct  int
}

func NewGroupService(groups repository.GroupRepository, redisClient *redis.Client, logger *zap.Logger, minReadyPct int) *GroupService {
	var cacheService *CacheService
	if redisClient != nil {
		cacheService = NewCacheService(redisClient, logger)
	}
	return &GroupService{
		groups:       groups,
		graph:        domain.NewStatusGraph(),
		cacheService: cacheService,
		logger:       logger,
		minReadyPct:  minReadyPct,
	}
}

// GetGroup returns a group with its members attached
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*domain.Group, error) {
	group, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.ErrGroupNotFound
	}

	members, err := s.loadMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members

	return group, nil
}

// GetAvailableTransitions returns the lifecycle moves open to a group from
// its current status
func (s *GroupService) GetAvailableTransitions(ctx context.Context, groupID string) ([]domain.GroupStatus, error) {
	group, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.ErrGroupNotFound
	}

	return s.graph.AvailableTransitions(group.Status), nil
}

// AttemptTransition validates and applies a lifecycle transition.
//
// The read is always taken from the database, never the cache: the status we
// validate against is the status the conditional update compares with. A
// missed update with the group still present means another caller moved the
// status between our read and write; that surfaces as ErrStatusConflict and
// the caller should re-read and retry.
func (s *GroupService) AttemptTransition(ctx context.Context, groupID string, target domain.GroupStatus) (*domain.Group, error) {
	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if group == nil {
		return nil, domain.ErrGroupNotFound
	}

	if !s.graph.IsValidTransition(group.Status, target) {
		return nil, &domain.InvalidTransitionError{From: group.Status, To: target}
	}

	updated, err := s.groups.CompareAndSetStatus(ctx, groupID, group.Status, target)
	if err != nil {
		return nil, fmt.Errorf("failed to write group status: %w", err)
	}
	if !updated {
		// Either the group vanished or its status moved under us.
		current, err := s.groups.GetGroup(ctx, groupID)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read group after missed update: %w", err)
		}
		if current == nil {
			return nil, domain.ErrGroupNotFound
		}
		s.logger.Warn("Concurrent status write detected",
			zap.String("group_id", groupID),
			zap.String("expected", string(group.Status)),
			zap.String("found", string(current.Status)),
			zap.String("target", string(target)))
		return nil, domain.ErrStatusConflict
	}

	if s.cacheService != nil {
		s.cacheService.InvalidateGroupCaches(groupID)
	}

	s.logger.Info("Group transitioned",
		zap.String("group_id", groupID),
		zap.String("from", string(group.Status)),
		zap.String("to", string(target)))

	group.Status = target
	return group, nil
}

// GetWarmUpProgress computes the prompt-based readiness of a group's members.
// minReadyPct <= 0 uses the service-configured threshold.
func (s *GroupService) GetWarmUpProgress(ctx context.Context, groupID string, minReadyPct int) (*domain.WarmUpProgress, error) {
	group, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.ErrGroupNotFound
	}

	members, err := s.loadMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if minReadyPct <= 0 {
		minReadyPct = s.minReadyPct
	}

	progress := domain.CalculateWarmUpProgress(members, minReadyPct)
	return &progress, nil
}

// loadGroup reads a group through the cache when available
func (s *GroupService) loadGroup(ctx context.Context, groupID string) (*domain.Group, error) {
	if s.cacheService != nil {
		return s.cacheService.GetGroupWithCache(ctx, groupID, s.groups.GetGroup)
	}
	return s.groups.GetGroup(ctx, groupID)
}

// loadMembers reads a member snapshot through the cache when available
func (s *GroupService) loadMembers(ctx context.Context, groupID string) ([]domain.Member, error) {
	if s.cacheService != nil {
		return s.cacheService.GetMembersWithCache(ctx, groupID, s.groups.ListMembers)
	}
	return s.groups.ListMembers(ctx, groupID)
}
