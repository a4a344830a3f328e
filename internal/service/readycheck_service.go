package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"squad-be/internal/domain"
	"squad-be/internal/repository"
	"squad-be/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Replay window for the create double-submit guard. The key carries
// idemPending until the insert commits, then the created check's ID.
const (
	idemPending = "pending"
	idemWindow  = 10 * time.Second
)

// checkSnapshot is what gets cached for a group's ready checks. The raw rows
// are cached, never the active/expired partition: partitioning depends on the
// clock at read time, so it is recomputed on every call even on a cache hit.
type checkSnapshot struct {
	Checks    []domain.ReadyCheck         `json:"checks"`
	Responses []domain.ReadyCheckResponse `json:"responses"`
}

// ReadyCheckService opens and tracks time-boxed consensus votes scoped to a
// group. There is no background job: a check drifts from active to expired
// purely by the clock, observed at read time.
type ReadyCheckService struct {
	checks        repository.ReadyCheckRepository
	groups        repository.GroupRepository
	redis         *redis.Client
	cacheService  *CacheService
	logger        *zap.Logger
	defaultExpiry time.Duration
}

func NewReadyCheckService(checks repository.ReadyCheckRepository, groups repository.GroupRepository, redisClient *redis.Client, logger *zap.Logger, defaultExpiryMinutes int) *ReadyCheckService {
	if defaultExpiryMinutes <= 0 {
		defaultExpiryMinutes = domain.DefaultCheckExpiryMinutes
	}
	var cacheService *CacheService
	if redisClient != nil {
		cacheService = NewCacheService(redisClient, logger)
	}
	return &ReadyCheckService{
		checks:        checks,
		groups:        groups,
		redis:         redisClient,
		cacheService:  cacheService,
		logger:        logger,
		defaultExpiry: time.Duration(defaultExpiryMinutes) * time.Minute,
	}
}

// CreateReadyCheck opens a new check for a group. The caller must be a
// non-dropped member of the group. An explicit zero expiry creates a check
// that is already expired; an omitted expiry uses the configured default.
func (s *ReadyCheckService) CreateReadyCheck(ctx context.Context, groupID, userID string, req *domain.CreateReadyCheckRequest) (*domain.ReadyCheck, error) {
	member, err := s.requireMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}

	expiry := s.defaultExpiry
	if req.ExpiresInMinutes != nil {
		expiry = time.Duration(*req.ExpiresInMinutes) * time.Minute
	}

	// Double-submit guard: the same member re-posting the same title within
	// the window gets the original check back, not a twin. The key holds a
	// placeholder until the insert lands, then the check's ID.
	var idemKey string
	if s.redis != nil {
		idemKey = s.redis.KeyBuilder.KeyCustom("idem:check:%s:%s:%s", groupID, member.ID, req.Title)
		acquired, err := s.redis.SetNX(ctx, idemKey, idemPending, idemWindow)
		if err != nil {
			s.logger.Warn("Idempotency lock unavailable, proceeding",
				zap.String("group_id", groupID),
				zap.Error(err))
		} else if !acquired {
			if existingID, getErr := s.redis.Get(ctx, idemKey); getErr == nil && existingID != "" && existingID != idemPending {
				if existing, loadErr := s.checks.GetCheck(ctx, existingID); loadErr == nil && existing != nil {
					s.logger.Info("Duplicate create returned original check",
						zap.String("check_id", existing.ID),
						zap.String("group_id", groupID),
						zap.String("member_id", member.ID))
					return existing, nil
				}
			}
			// First insert still in flight, nothing to hand back yet.
			return nil, domain.ErrDuplicateCheck
		}
	}

	now := time.Now().UTC()
	check := &domain.ReadyCheck{
		GroupID:     groupID,
		Title:       req.Title,
		TriggeredBy: member.ID,
		ContextID:   req.ContextID,
		ExpiresAt:   now.Add(expiry),
	}

	if err := s.checks.InsertCheck(ctx, check); err != nil {
		return nil, fmt.Errorf("failed to create ready check: %w", err)
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, idemKey, check.ID, idemWindow); err != nil {
			s.logger.Warn("Failed to record idempotency key",
				zap.String("check_id", check.ID),
				zap.Error(err))
		}
	}

	if s.cacheService != nil {
		if err := s.cacheService.InvalidateCheckBoard(ctx, groupID); err != nil {
			s.logger.Warn("Failed to invalidate check board after create",
				zap.String("group_id", groupID),
				zap.Error(err))
		}
	}

	s.logger.Info("Ready check created",
		zap.String("check_id", check.ID),
		zap.String("group_id", groupID),
		zap.String("triggered_by", member.ID),
		zap.Time("expires_at", check.ExpiresAt))

	return check, nil
}

// Respond records a member's answer to a check. Re-submissions replace the
// previous answer and refresh its timestamp; the storage upsert makes this
// safe under concurrent submissions from the same member.
//
// Late answers to an expired check are accepted and counted. They still
// inform the eventual review; the board partition already tells callers the
// check has closed.
func (s *ReadyCheckService) Respond(ctx context.Context, checkID, userID string, response domain.ResponseValue) error {
	check, err := s.checks.GetCheck(ctx, checkID)
	if err != nil {
		return fmt.Errorf("failed to load ready check: %w", err)
	}
	if check == nil {
		return domain.ErrCheckNotFound
	}

	member, err := s.requireMember(ctx, check.GroupID, userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if !check.IsActiveAt(now) {
		s.logger.Warn("Late response accepted on expired check",
			zap.String("check_id", checkID),
			zap.String("member_id", member.ID),
			zap.Time("expires_at", check.ExpiresAt))
	}

	if err := s.checks.UpsertResponse(ctx, checkID, member.ID, response, now); err != nil {
		return err
	}

	if s.cacheService != nil {
		if err := s.cacheService.CacheMemberAnswer(ctx, check.GroupID, checkID, member.ID, response); err != nil {
			s.logger.Warn("Failed to cache member answer",
				zap.String("check_id", checkID),
				zap.String("member_id", member.ID),
				zap.Error(err))
		}
	}

	s.logger.Info("Ready check response recorded",
		zap.String("check_id", checkID),
		zap.String("member_id", member.ID),
		zap.String("response", string(response)))

	return nil
}

// GetChecks returns the group's checks partitioned into active and expired
// at this instant, with responses and tallies attached. The partition is
// recomputed on every call; nothing is written when a check crosses its
// expiry.
func (s *ReadyCheckService) GetChecks(ctx context.Context, groupID string) (*domain.ReadyCheckBoard, error) {
	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if group == nil {
		return nil, domain.ErrGroupNotFound
	}

	snapshot, err := s.loadSnapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}

	members, err := s.groups.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	expected := 0
	for _, m := range members {
		if m.Status != domain.MemberDropped {
			expected++
		}
	}

	responsesByCheck := make(map[string][]domain.ReadyCheckResponse, len(snapshot.Checks))
	for _, resp := range snapshot.Responses {
		responsesByCheck[resp.ReadyCheckID] = append(responsesByCheck[resp.ReadyCheckID], resp)
	}

	now := time.Now().UTC()
	board := &domain.ReadyCheckBoard{
		Active:  []domain.ReadyCheckWithResponses{},
		Expired: []domain.ReadyCheckWithResponses{},
	}

	for _, check := range snapshot.Checks {
		responses := responsesByCheck[check.ID]
		entry := domain.ReadyCheckWithResponses{
			ReadyCheck: check,
			Responses:  responses,
			Tally:      domain.TallyResponses(responses, expected),
		}
		if entry.Responses == nil {
			entry.Responses = []domain.ReadyCheckResponse{}
		}
		if check.IsActiveAt(now) {
			board.Active = append(board.Active, entry)
		} else {
			board.Expired = append(board.Expired, entry)
		}
	}

	return board, nil
}

// loadSnapshot fetches the raw checks and responses for a group, cache-aside
func (s *ReadyCheckService) loadSnapshot(ctx context.Context, groupID string) (*checkSnapshot, error) {
	var cacheKey string
	if s.redis != nil {
		cacheKey = s.redis.KeyBuilder.KeyCheckBoard(groupID)
		cachedData, err := s.redis.Get(ctx, cacheKey)
		if err == nil && cachedData != "" {
			var snapshot checkSnapshot
			if unmarshalErr := json.Unmarshal([]byte(cachedData), &snapshot); unmarshalErr == nil {
				return &snapshot, nil
			}
			s.logger.Warn("Check snapshot cache corrupted, falling back to database",
				zap.String("group_id", groupID))
		} else if err != nil && err != goredis.Nil {
			s.logger.Warn("Check snapshot cache error, falling back to database",
				zap.String("group_id", groupID),
				zap.Error(err))
		}
	}

	checks, err := s.checks.ListChecks(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ready checks: %w", err)
	}

	checkIDs := make([]string, len(checks))
	for i, check := range checks {
		checkIDs[i] = check.ID
	}

	responses, err := s.checks.ListResponses(ctx, checkIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	snapshot := &checkSnapshot{Checks: checks, Responses: responses}

	if s.redis != nil {
		if data, marshalErr := json.Marshal(snapshot); marshalErr == nil {
			_ = s.redis.Set(ctx, cacheKey, string(data), redis.TTLCheckBoard)
		}
	}

	return snapshot, nil
}

// requireMember resolves the caller's membership record and rejects
// non-members and dropped members
func (s *ReadyCheckService) requireMember(ctx context.Context, groupID, userID string) (*domain.Member, error) {
	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if group == nil {
		return nil, domain.ErrGroupNotFound
	}

	member, err := s.groups.GetMemberByUserID(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}
	if member == nil || member.Status == domain.MemberDropped {
		return nil, domain.ErrNotGroupMember
	}

	return member, nil
}
