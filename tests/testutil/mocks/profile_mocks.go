package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
)

// MockUserProfileRepository is a mock of repository.UserProfileRepository
type MockUserProfileRepository struct {
	mock.Mock
}

func NewMockUserProfileRepository(t *testing.T) *MockUserProfileRepository {
	m := &MockUserProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserProfileRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) FindByUserIDs(ctx context.Context, userIDs []string) ([]*entity.UserProfile, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockAuditLogRepository is a mock of repository.AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func NewMockAuditLogRepository(t *testing.T) *MockAuditLogRepository {
	m := &MockAuditLogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) ListByResource(ctx context.Context, resourceType entity.AuditResourceType, resourceID uuid.UUID, limit int) ([]*entity.AuditLog, error) {
	args := m.Called(ctx, resourceType, resourceID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.AuditLog), args.Error(1)
}
