package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
)

// AuditService はメンバーシップ操作を記録するサービスインターフェースです
type AuditService interface {
	// Log は監査ログを非同期で記録します
	Log(ctx context.Context, entry AuditEntry)
}

// AuditEntry は監査ログの記録に必要な情報を定義します
type AuditEntry struct {
	ActorID      string
	Action       entity.AuditAction
	ResourceType entity.AuditResourceType
	ResourceID   uuid.UUID
	GroupID      uuid.UUID
	SubjectID    string
	Details      map[string]interface{}
	RequestID    string
}
