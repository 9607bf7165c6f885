package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
)

// MockProfileResolver is a mock of service.ProfileResolver
type MockProfileResolver struct {
	mock.Mock
}

func NewMockProfileResolver(t *testing.T) *MockProfileResolver {
	m := &MockProfileResolver{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProfileResolver) Resolve(ctx context.Context, userID string) *entity.UserProfile {
	args := m.Called(ctx, userID)
	return args.Get(0).(*entity.UserProfile)
}

func (m *MockProfileResolver) ResolveMany(ctx context.Context, userIDs []string) map[string]*entity.UserProfile {
	args := m.Called(ctx, userIDs)
	return args.Get(0).(map[string]*entity.UserProfile)
}

func (m *MockProfileResolver) GetOrCreate(ctx context.Context, claimed *entity.UserProfile) (*entity.UserProfile, error) {
	args := m.Called(ctx, claimed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserProfile), args.Error(1)
}

func (m *MockProfileResolver) Forget(ctx context.Context, userID string) {
	m.Called(ctx, userID)
}

// MockAuditService is a mock of service.AuditService
type MockAuditService struct {
	mock.Mock
}

func NewMockAuditService(t *testing.T) *MockAuditService {
	m := &MockAuditService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuditService) Log(ctx context.Context, entry service.AuditEntry) {
	m.Called(ctx, entry)
}

// ExpectAction はアクションのみを検証する期待値を登録します
func (m *MockAuditService) ExpectAction(action entity.AuditAction) *mock.Call {
	return m.On("Log", mock.Anything, mock.MatchedBy(func(e service.AuditEntry) bool {
		return e.Action == action
	}))
}

// MockGroupMediaCleaner is a mock of service.GroupMediaCleaner
type MockGroupMediaCleaner struct {
	mock.Mock
}

func NewMockGroupMediaCleaner(t *testing.T) *MockGroupMediaCleaner {
	m := &MockGroupMediaCleaner{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockGroupMediaCleaner) DeleteGroupMedia(ctx context.Context, groupID uuid.UUID) (int, error) {
	args := m.Called(ctx, groupID)
	return args.Int(0), args.Error(1)
}

// MockEventPublisher is a mock of service.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventPublisher) Publish(ctx context.Context, event service.MembershipEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
