package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/audit"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
	"github.com/Hiro-mackay/tripshare/tests/testutil/mocks"
)

type countingRecorder struct {
	mu      sync.Mutex
	actions []string
	dropped int
}

func (r *countingRecorder) RecordMembershipOperation(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
}

func (r *countingRecorder) RecordAuditDropped() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropped++
}

func TestService_Log_PersistsAndPublishes(t *testing.T) {
	repo := mocks.NewMockAuditLogRepository(t)
	publisher := mocks.NewMockEventPublisher(t)
	recorder := &countingRecorder{}

	groupID := uuid.New()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.AuditLog) bool {
		return l.Action == entity.AuditActionMemberJoin &&
			l.ResourceID == groupID &&
			l.ActorID == "user-1" &&
			l.RequestID == "req-42" &&
			l.ID != uuid.Nil &&
			!l.CreatedAt.IsZero()
	})).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e service.MembershipEvent) bool {
		return e.Type == "group.member_join" && e.GroupID == groupID && e.SubjectID == "user-1"
	})).Return(nil).Once()

	svc := audit.NewService(repo, publisher, recorder, 10)
	ctx := logger.ContextWithRequestID(context.Background(), "req-42")

	svc.Log(ctx, service.AuditEntry{
		ActorID:      "user-1",
		Action:       entity.AuditActionMemberJoin,
		ResourceType: entity.AuditResourceGroup,
		ResourceID:   groupID,
		GroupID:      groupID,
		SubjectID:    "user-1",
	})
	svc.Shutdown()

	assert.Equal(t, []string{"group.member_join"}, recorder.actions)
}

func TestService_Log_RepositoryFailure_StillPublishes(t *testing.T) {
	repo := mocks.NewMockAuditLogRepository(t)
	publisher := mocks.NewMockEventPublisher(t)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	svc := audit.NewService(repo, publisher, nil, 10)
	svc.Log(context.Background(), service.AuditEntry{
		ActorID:      "admin",
		Action:       entity.AuditActionGroupDelete,
		ResourceType: entity.AuditResourceGroup,
		ResourceID:   uuid.New(),
	})
	svc.Shutdown()
}

func TestService_Log_ExplicitRequestID_Kept(t *testing.T) {
	repo := mocks.NewMockAuditLogRepository(t)
	publisher := mocks.NewMockEventPublisher(t)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.AuditLog) bool {
		return l.RequestID == "explicit"
	})).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	svc := audit.NewService(repo, publisher, nil, 10)
	ctx := logger.ContextWithRequestID(context.Background(), "from-context")
	svc.Log(ctx, service.AuditEntry{Action: entity.AuditActionGroupUpdate, RequestID: "explicit"})
	svc.Shutdown()
}

func TestService_Shutdown_Idempotent(t *testing.T) {
	repo := mocks.NewMockAuditLogRepository(t)
	publisher := mocks.NewMockEventPublisher(t)

	svc := audit.NewService(repo, publisher, nil, 1)

	require.NotPanics(t, func() {
		svc.Shutdown()
		svc.Shutdown()
	})
}
