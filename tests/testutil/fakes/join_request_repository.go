package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

// JoinRequestRepository はインメモリのJoinRequestRepository実装です
// 同一グループ・同一ユーザーの保留中リクエストは1件のみ保存できます
type JoinRequestRepository struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*entity.JoinRequest
}

func NewJoinRequestRepository() *JoinRequestRepository {
	return &JoinRequestRepository{requests: make(map[uuid.UUID]*entity.JoinRequest)}
}

func cloneJoinRequest(r *entity.JoinRequest) *entity.JoinRequest {
	c := *r
	return &c
}

func (r *JoinRequestRepository) Create(ctx context.Context, request *entity.JoinRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.requests {
		if existing.GroupID == request.GroupID && existing.UserID == request.UserID && existing.IsPending() {
			return apperror.NewConflictError("pending join request already exists")
		}
	}
	r.requests[request.ID] = cloneJoinRequest(request)
	return nil
}

func (r *JoinRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, apperror.NewJoinRequestNotFoundError()
	}
	return cloneJoinRequest(req), nil
}

func (r *JoinRequestRepository) UpdateStatus(ctx context.Context, request *entity.JoinRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[request.ID]
	if !ok {
		return apperror.NewJoinRequestNotFoundError()
	}
	if !stored.IsPending() {
		return apperror.NewJoinRequestNotPendingError()
	}
	stored.Status = request.Status
	stored.ResolvedBy = request.ResolvedBy
	stored.UpdatedAt = request.UpdatedAt
	return nil
}

func (r *JoinRequestRepository) FindPendingByGroupAndUser(ctx context.Context, groupID uuid.UUID, userID string) (*entity.JoinRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range r.requests {
		if req.GroupID == groupID && req.UserID == userID && req.IsPending() {
			return cloneJoinRequest(req), nil
		}
	}
	return nil, apperror.NewJoinRequestNotFoundError()
}

func (r *JoinRequestRepository) ListPendingByGroupID(ctx context.Context, groupID uuid.UUID, limit int) ([]*entity.JoinRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*entity.JoinRequest, 0)
	for _, req := range r.requests {
		if req.GroupID == groupID && req.IsPending() {
			result = append(result, cloneJoinRequest(req))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *JoinRequestRepository) CountPendingByGroupID(ctx context.Context, groupID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, req := range r.requests {
		if req.GroupID == groupID && req.IsPending() {
			count++
		}
	}
	return count, nil
}

func (r *JoinRequestRepository) DeleteByGroupID(ctx context.Context, groupID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, req := range r.requests {
		if req.GroupID == groupID {
			delete(r.requests, id)
		}
	}
	return nil
}

func (r *JoinRequestRepository) DeleteResolvedBefore(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, req := range r.requests {
		if !req.IsPending() && req.UpdatedAt.Before(before) {
			delete(r.requests, id)
			deleted++
		}
	}
	return deleted, nil
}

// Len はテストの検証用に保存件数を返します
func (r *JoinRequestRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}
