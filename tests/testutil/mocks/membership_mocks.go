package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
)

// MockGroupRepository is a mock of repository.GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func NewMockGroupRepository(t *testing.T) *MockGroupRepository {
	m := &MockGroupRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockGroupRepository) Create(ctx context.Context, group *entity.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Group), args.Error(1)
}

func (m *MockGroupRepository) UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.GroupSettings) error {
	args := m.Called(ctx, id, settings)
	return args.Error(0)
}

func (m *MockGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGroupRepository) FindByCode(ctx context.Context, code valueobject.GroupCode) (*entity.Group, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Group), args.Error(1)
}

func (m *MockGroupRepository) FindByMemberID(ctx context.Context, userID string) ([]*entity.Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Group), args.Error(1)
}

func (m *MockGroupRepository) ExistsByCode(ctx context.Context, code valueobject.GroupCode) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) AddMember(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) RemoveMember(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) AddAdmin(ctx context.Context, id uuid.UUID, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockGroupRepository) RemoveAdmin(ctx context.Context, id uuid.UUID, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockJoinRequestRepository is a mock of repository.JoinRequestRepository
type MockJoinRequestRepository struct {
	mock.Mock
}

func NewMockJoinRequestRepository(t *testing.T) *MockJoinRequestRepository {
	m := &MockJoinRequestRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockJoinRequestRepository) Create(ctx context.Context, request *entity.JoinRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) UpdateStatus(ctx context.Context, request *entity.JoinRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) FindPendingByGroupAndUser(ctx context.Context, groupID uuid.UUID, userID string) (*entity.JoinRequest, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) ListPendingByGroupID(ctx context.Context, groupID uuid.UUID, limit int) ([]*entity.JoinRequest, error) {
	args := m.Called(ctx, groupID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) CountPendingByGroupID(ctx context.Context, groupID uuid.UUID) (int, error) {
	args := m.Called(ctx, groupID)
	return args.Int(0), args.Error(1)
}

func (m *MockJoinRequestRepository) DeleteByGroupID(ctx context.Context, groupID uuid.UUID) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) DeleteResolvedBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockPhotoRepository is a mock of repository.PhotoRepository
type MockPhotoRepository struct {
	mock.Mock
}

func NewMockPhotoRepository(t *testing.T) *MockPhotoRepository {
	m := &MockPhotoRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPhotoRepository) DeleteByGroupID(ctx context.Context, groupID uuid.UUID) (int64, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommentRepository is a mock of repository.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func NewMockCommentRepository(t *testing.T) *MockCommentRepository {
	m := &MockCommentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCommentRepository) DeleteByGroupID(ctx context.Context, groupID uuid.UUID) (int64, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionManager is a mock of repository.TransactionManager
// 期待値で返すエラーがnilの場合のみfnを実行します
type MockTransactionManager struct {
	mock.Mock
}

func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
