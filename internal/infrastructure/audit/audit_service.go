package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/tripshare/internal/domain/entity"
	"github.com/Hiro-mackay/tripshare/internal/domain/repository"
	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// Recorder は監査処理の計測を受け取ります
type Recorder interface {
	RecordMembershipOperation(action string)
	RecordAuditDropped()
}

type noopRecorder struct{}

func (noopRecorder) RecordMembershipOperation(string) {}
func (noopRecorder) RecordAuditDropped()              {}

// queued はキューに積まれたエントリと発生時刻です
type queued struct {
	entry service.AuditEntry
	at    time.Time
}

// Service は監査ログの永続化とメンバーシップイベントの配信を非同期で行います
type Service struct {
	repo      repository.AuditLogRepository
	publisher service.EventPublisher
	recorder  Recorder
	entries   chan queued
	done      chan struct{}
	closeOnce sync.Once
}

// NewService は新しいAudit Serviceを作成しワーカーを開始します
func NewService(repo repository.AuditLogRepository, publisher service.EventPublisher, recorder Recorder, bufferSize int) *Service {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	s := &Service{
		repo:      repo,
		publisher: publisher,
		recorder:  recorder,
		entries:   make(chan queued, bufferSize),
		done:      make(chan struct{}),
	}
	go s.processLoop()
	return s
}

// Log は監査エントリをキューに追加します（非ブロッキング）
// リクエストIDが未設定の場合はコンテキストから補完します
func (s *Service) Log(ctx context.Context, entry service.AuditEntry) {
	if entry.RequestID == "" {
		if requestID, ok := ctx.Value(logger.RequestIDKey).(string); ok {
			entry.RequestID = requestID
		}
	}

	select {
	case s.entries <- queued{entry: entry, at: time.Now()}:
	default:
		s.recorder.RecordAuditDropped()
		logger.Warn(ctx, "audit log buffer full, dropping entry",
			"action", string(entry.Action),
			"resource_id", entry.ResourceID.String(),
		)
	}
}

// processLoop はバッファからエントリを読み取り、保存と配信を行います
func (s *Service) processLoop() {
	defer close(s.done)
	for item := range s.entries {
		s.handle(item)
	}
}

func (s *Service) handle(item queued) {
	entry := item.entry
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if entry.RequestID != "" {
		ctx = logger.ContextWithRequestID(ctx, entry.RequestID)
	}

	log := &entity.AuditLog{
		ID:           uuid.New(),
		ActorID:      entry.ActorID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Details:      entry.Details,
		RequestID:    entry.RequestID,
		CreatedAt:    item.at,
	}
	if err := s.repo.Create(ctx, log); err != nil {
		logger.Error(ctx, "failed to write audit log", "error", err, "action", string(entry.Action))
	}

	err := s.publisher.Publish(ctx, service.MembershipEvent{
		Type:       string(entry.Action),
		GroupID:    entry.GroupID,
		ActorID:    entry.ActorID,
		SubjectID:  entry.SubjectID,
		OccurredAt: item.at,
	})
	if err != nil {
		logger.Warn(ctx, "failed to publish membership event", "error", err, "action", string(entry.Action))
	}

	s.recorder.RecordMembershipOperation(string(entry.Action))
}

// Shutdown はキューに残ったエントリを処理してから停止します
func (s *Service) Shutdown() {
	s.closeOnce.Do(func() { close(s.entries) })
	<-s.done
}

// インターフェースの実装を保証
var _ service.AuditService = (*Service)(nil)
