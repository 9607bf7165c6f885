package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MembershipEvent はメンバーシップ変更の通知イベント
type MembershipEvent struct {
	Type       string    `json:"type"`
	GroupID    uuid.UUID `json:"groupId"`
	ActorID    string    `json:"actorId"`
	SubjectID  string    `json:"subjectId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher はメンバーシップイベントを外部へ配信します
type EventPublisher interface {
	Publish(ctx context.Context, event MembershipEvent) error
}
