// Package events はメンバーシップイベントをNATSへ配信します
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// Config はNATS接続設定を定義します
type Config struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

// conn はPublishのみを使うNATS接続の抽象です
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATSPublisher はイベントを{prefix}.group.{event}へ配信します
type NATSPublisher struct {
	conn   conn
	prefix string
}

// NewNATSPublisher はNATSに接続してPublisherを作成します
func NewNATSPublisher(cfg Config) (*NATSPublisher, error) {
	if cfg.MaxReconnects == 0 {
		cfg.MaxReconnects = -1
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = 2 * time.Second
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name("tripshare-api"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn(context.Background(), "nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info(context.Background(), "nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return newPublisher(nc, cfg.SubjectPrefix), nil
}

func newPublisher(c conn, prefix string) *NATSPublisher {
	if prefix == "" {
		prefix = "tripshare"
	}
	return &NATSPublisher{conn: c, prefix: prefix}
}

// Publish はイベントをJSONで配信します
func (p *NATSPublisher) Publish(ctx context.Context, event service.MembershipEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := Subject(p.prefix, event.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	logger.Debug(ctx, "membership event published", "subject", subject, "group_id", event.GroupID.String())
	return nil
}

// Close は送信済みメッセージをフラッシュして接続を閉じます
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// Health は接続状態を確認します
func (p *NATSPublisher) Health(context.Context) error {
	if status, ok := p.conn.(interface{ IsConnected() bool }); ok && !status.IsConnected() {
		return errors.New("nats connection is not established")
	}
	return nil
}

// Subject はイベント種別から配信先サブジェクトを返します
// 例: group.member_join -> tripshare.group.member_join, join_request.submit -> tripshare.group.join_request.submit
func Subject(prefix, eventType string) string {
	return prefix + ".group." + strings.TrimPrefix(eventType, "group.")
}

// NoopPublisher はNATS未設定時に使う何もしない実装です
type NoopPublisher struct{}

// Publish は何もしません
func (NoopPublisher) Publish(context.Context, service.MembershipEvent) error {
	return nil
}

var (
	_ service.EventPublisher = (*NATSPublisher)(nil)
	_ service.EventPublisher = NoopPublisher{}
)
