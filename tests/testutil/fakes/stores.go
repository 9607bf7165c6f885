package fakes

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/pkg/apperror"
)

// MediaRepository は写真とコメントの件数だけを保持するインメモリ実装です
// PhotoRepositoryとCommentRepositoryの両方として使えます
type MediaRepository struct {
	mu     sync.Mutex
	counts map[uuid.UUID]int64
}

func NewMediaRepository() *MediaRepository {
	return &MediaRepository{counts: make(map[uuid.UUID]int64)}
}

// Seed はグループにn件のレコードを追加します
func (r *MediaRepository) Seed(groupID uuid.UUID, n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[groupID] += n
}

// Count はグループのレコード数を返します
func (r *MediaRepository) Count(groupID uuid.UUID) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[groupID]
}

func (r *MediaRepository) DeleteByGroupID(ctx context.Context, groupID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.counts[groupID]
	delete(r.counts, groupID)
	return n, nil
}

// UserProfileRepository はインメモリのUserProfileRepository実装です
type UserProfileRepository struct {
	mu       sync.Mutex
	profiles map[string]*entity.UserProfile
}

func NewUserProfileRepository() *UserProfileRepository {
	return &UserProfileRepository{profiles: make(map[string]*entity.UserProfile)}
}

func (r *UserProfileRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperror.NewNotFoundError("user profile")
	}
	c := *p
	return &c, nil
}

func (r *UserProfileRepository) FindByUserIDs(ctx context.Context, userIDs []string) ([]*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*entity.UserProfile, 0, len(userIDs))
	for _, id := range userIDs {
		if p, ok := r.profiles[id]; ok {
			c := *p
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *UserProfileRepository) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *profile
	r.profiles[profile.UserID] = &c
	return nil
}

// AuditLogRepository はインメモリのAuditLogRepository実装です
type AuditLogRepository struct {
	mu   sync.Mutex
	logs []*entity.AuditLog
}

func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{}
}

func (r *AuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func (r *AuditLogRepository) ListByResource(ctx context.Context, resourceType entity.AuditResourceType, resourceID uuid.UUID, limit int) ([]*entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*entity.AuditLog, 0)
	for i := len(r.logs) - 1; i >= 0; i-- {
		l := r.logs[i]
		if l.ResourceType == resourceType && l.ResourceID == resourceID {
			result = append(result, l)
			if limit > 0 && len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

// TransactionManager はfnをそのまま実行するTransactionManager実装です
type TransactionManager struct{}

func (TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// AuditRecorder は監査エントリをメモリに記録するAuditService実装です
type AuditRecorder struct {
	mu      sync.Mutex
	entries []service.AuditEntry
}

func (r *AuditRecorder) Log(ctx context.Context, entry service.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

// Actions は記録されたアクションを順に返します
func (r *AuditRecorder) Actions() []entity.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()

	actions := make([]entity.AuditAction, 0, len(r.entries))
	for _, e := range r.entries {
		actions = append(actions, e.Action)
	}
	return actions
}

// MediaCleaner はオブジェクト削除を記録するGroupMediaCleaner実装です
type MediaCleaner struct {
	mu      sync.Mutex
	cleaned []uuid.UUID
}

func (c *MediaCleaner) DeleteGroupMedia(ctx context.Context, groupID uuid.UUID) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleaned = append(c.cleaned, groupID)
	return 0, nil
}

// Cleaned はオブジェクト削除されたグループIDを返します
func (c *MediaCleaner) Cleaned() []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uuid.UUID(nil), c.cleaned...)
}
