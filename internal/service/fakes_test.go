package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"squad-be/internal/domain"
)

// fakeGroupRepo is an in-memory GroupRepository for service tests.
type fakeGroupRepo struct {
	mu      sync.Mutex
	groups  map[string]*domain.Group
	members map[string][]domain.Member

	// casHook runs before CompareAndSetStatus applies, letting tests
	// interleave a concurrent write between the service's read and write.
	casHook func()
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups:  make(map[string]*domain.Group),
		members: make(map[string][]domain.Member),
	}
}

func (f *fakeGroupRepo) addGroup(g *domain.Group) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groups[g.ID] = g
}

func (f *fakeGroupRepo) addMember(m domain.Member) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[m.GroupID] = append(f.members[m.GroupID], m)
}

func (f *fakeGroupRepo) GetGroup(ctx context.Context, groupID string) (*domain.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[groupID]
	if !ok {
		return nil, nil
	}
	copied := *g
	copied.Members = nil
	return &copied, nil
}

func (f *fakeGroupRepo) ListMembers(ctx context.Context, groupID string) ([]domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Member, len(f.members[groupID]))
	copy(out, f.members[groupID])
	return out, nil
}

func (f *fakeGroupRepo) GetMemberByUserID(ctx context.Context, groupID, userID string) (*domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members[groupID] {
		if m.UserID == userID {
			copied := m
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeGroupRepo) CompareAndSetStatus(ctx context.Context, groupID string, expected, target domain.GroupStatus) (bool, error) {
	if f.casHook != nil {
		f.casHook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[groupID]
	if !ok || g.Status != expected {
		return false, nil
	}
	g.Status = target
	g.UpdatedAt = time.Now()
	return true, nil
}

// fakeCheckRepo is an in-memory ReadyCheckRepository for service tests.
type fakeCheckRepo struct {
	mu        sync.Mutex
	nextID    int
	checks    map[string]*domain.ReadyCheck
	responses map[string]map[string]domain.ReadyCheckResponse
}

func newFakeCheckRepo() *fakeCheckRepo {
	return &fakeCheckRepo{
		checks:    make(map[string]*domain.ReadyCheck),
		responses: make(map[string]map[string]domain.ReadyCheckResponse),
	}
}

func (f *fakeCheckRepo) InsertCheck(ctx context.Context, check *domain.ReadyCheck) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	check.ID = fmt.Sprintf("check-%d", f.nextID)
	check.CreatedAt = time.Now().UTC()
	copied := *check
	f.checks[check.ID] = &copied
	return nil
}

func (f *fakeCheckRepo) GetCheck(ctx context.Context, checkID string) (*domain.ReadyCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.checks[checkID]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCheckRepo) ListChecks(ctx context.Context, groupID string) ([]domain.ReadyCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ReadyCheck
	for i := 1; i <= f.nextID; i++ {
		id := fmt.Sprintf("check-%d", i)
		if c, ok := f.checks[id]; ok && c.GroupID == groupID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCheckRepo) ListResponses(ctx context.Context, checkIDs []string) ([]domain.ReadyCheckResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ReadyCheckResponse
	for _, id := range checkIDs {
		for _, r := range f.responses[id] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCheckRepo) UpsertResponse(ctx context.Context, checkID, memberID string, response domain.ResponseValue, respondedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.responses[checkID] == nil {
		f.responses[checkID] = make(map[string]domain.ReadyCheckResponse)
	}
	f.responses[checkID][memberID] = domain.ReadyCheckResponse{
		ReadyCheckID: checkID,
		MemberID:     memberID,
		Response:     response,
		RespondedAt:  respondedAt,
	}
	return nil
}
