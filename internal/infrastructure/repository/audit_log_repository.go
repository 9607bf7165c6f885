package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/database"
)

// AuditLogRepository は監査ログリポジトリの実装です
type AuditLogRepository struct {
	*database.BaseRepository
}

// NewAuditLogRepository は新しいAuditLogRepositoryを作成します
func NewAuditLogRepository(txManager *database.TxManager) *AuditLogRepository {
	return &AuditLogRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create は監査ログを作成します
func (r *AuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	var details []byte
	if log.Details != nil {
		var err error
		details, err = json.Marshal(log.Details)
		if err != nil {
			return err
		}
	}

	var requestID *string
	if log.RequestID != "" {
		requestID = &log.RequestID
	}

	_, err := r.Querier(ctx).Exec(ctx, `
		INSERT INTO audit_logs (id, actor_id, action, resource_type, resource_id, details, request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		log.ID,
		log.ActorID,
		string(log.Action),
		string(log.ResourceType),
		log.ResourceID,
		details,
		requestID,
		log.CreatedAt,
	)
	return r.HandleError(err, nil)
}

// ListByResource はリソースの監査ログを新しい順に返します
func (r *AuditLogRepository) ListByResource(ctx context.Context, resourceType entity.AuditResourceType, resourceID uuid.UUID, limit int) ([]*entity.AuditLog, error) {
	rows, err := r.Querier(ctx).Query(ctx, `
		SELECT id, actor_id, action, resource_type, resource_id, details, request_id, created_at
		FROM audit_logs
		WHERE resource_type = $1 AND resource_id = $2
		ORDER BY created_at DESC
		LIMIT $3`,
		string(resourceType), resourceID, limit,
	)
	if err != nil {
		return nil, r.HandleError(err, nil)
	}
	defer rows.Close()

	logs := make([]*entity.AuditLog, 0)
	for rows.Next() {
		var (
			l            entity.AuditLog
			action, kind string
			details      []byte
			requestID    *string
		)
		if err := rows.Scan(&l.ID, &l.ActorID, &action, &kind, &l.ResourceID, &details, &requestID, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Action = entity.AuditAction(action)
		l.ResourceType = entity.AuditResourceType(kind)
		if requestID != nil {
			l.RequestID = *requestID
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &l.Details); err != nil {
				return nil, err
			}
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

// インターフェースの実装を保証
var _ repository.AuditLogRepository = (*AuditLogRepository)(nil)
