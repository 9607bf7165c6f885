package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
)

// AuditLogRepository は監査ログの永続化インターフェースです
type AuditLogRepository interface {
	// Create は監査ログを作成します
	Create(ctx context.Context, log *entity.AuditLog) error
	// ListByResource はリソースタイプとIDで監査ログを新しい順に取得します
	ListByResource(ctx context.Context, resourceType entity.AuditResourceType, resourceID uuid.UUID, limit int) ([]*entity.AuditLog, error)
}
