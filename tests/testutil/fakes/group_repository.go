// Package fakes はテスト用のインメモリなリポジトリ実装を提供します
package fakes

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

// GroupRepository はインメモリのGroupRepository実装です
// 読み書きはすべてコピーで行い、呼び出し側の変更がストアに漏れないようにします
type GroupRepository struct {
	mu     sync.Mutex
	groups map[uuid.UUID]*entity.Group
}

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{groups: make(map[uuid.UUID]*entity.Group)}
}

func cloneGroup(g *entity.Group) *entity.Group {
	c := *g
	c.AdminIDs = slices.Clone(g.AdminIDs)
	c.MemberIDs = slices.Clone(g.MemberIDs)
	return &c
}

func (r *GroupRepository) Create(ctx context.Context, group *entity.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[group.ID]; ok {
		return apperror.NewConflictError("group already exists")
	}
	for _, g := range r.groups {
		if g.Code.Equals(group.Code) {
			return apperror.NewConflictError("group code already exists")
		}
	}
	r.groups[group.ID] = cloneGroup(group)
	return nil
}

func (r *GroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[id]
	if !ok {
		return nil, apperror.NewGroupNotFoundError()
	}
	return cloneGroup(g), nil
}

func (r *GroupRepository) UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.GroupSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[id]
	if !ok {
		return apperror.NewGroupNotFoundError()
	}
	g.ApplySettings(settings)
	return nil
}

func (r *GroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[id]; !ok {
		return apperror.NewGroupNotFoundError()
	}
	delete(r.groups, id)
	return nil
}

func (r *GroupRepository) FindByCode(ctx context.Context, code valueobject.GroupCode) (*entity.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.groups {
		if g.Code.Equals(code) {
			return cloneGroup(g), nil
		}
	}
	return nil, apperror.NewGroupNotFoundError()
}

func (r *GroupRepository) FindByMemberID(ctx context.Context, userID string) ([]*entity.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	groups := make([]*entity.Group, 0)
	for _, g := range r.groups {
		if g.IsMember(userID) {
			groups = append(groups, cloneGroup(g))
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CreatedAt.After(groups[j].CreatedAt)
	})
	return groups, nil
}

func (r *GroupRepository) ExistsByCode(ctx context.Context, code valueobject.GroupCode) (bool, error) {
	_, err := r.FindByCode(ctx, code)
	if apperror.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

func (r *GroupRepository) AddMember(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[id]
	if !ok {
		return false, apperror.NewGroupNotFoundError()
	}
	return g.AddMember(userID), nil
}

func (r *GroupRepository) RemoveMember(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[id]
	if !ok {
		return false, apperror.NewGroupNotFoundError()
	}
	return g.RemoveMember(userID), nil
}

func (r *GroupRepository) AddAdmin(ctx context.Context, id uuid.UUID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[id]
	if !ok {
		return apperror.NewGroupNotFoundError()
	}
	if !g.IsMember(userID) {
		return apperror.NewNotMemberError()
	}
	g.GrantAdmin(userID)
	return nil
}

func (r *GroupRepository) RemoveAdmin(ctx context.Context, id uuid.UUID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[id]
	if !ok {
		return apperror.NewGroupNotFoundError()
	}
	g.RevokeAdmin(userID)
	return nil
}

// Get はテストの検証用にグループのコピーを返します
func (r *GroupRepository) Get(id uuid.UUID) (*entity.Group, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[id]
	if !ok {
		return nil, false
	}
	return cloneGroup(g), true
}

// All はテストの検証用に全グループのコピーを返します
func (r *GroupRepository) All() []*entity.Group {
	r.mu.Lock()
	defer r.mu.Unlock()

	groups := make([]*entity.Group, 0, len(r.groups))
	for _, g := range r.groups {
		groups = append(groups, cloneGroup(g))
	}
	return groups
}

