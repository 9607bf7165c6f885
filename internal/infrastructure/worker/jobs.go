package worker

import (
	"context"
	"time"

	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// JoinRequestRetentionJobConfig は解決済み参加リクエスト削除ジョブの設定です
type JoinRequestRetentionJobConfig struct {
	// Retention は承認/拒否後に参加リクエストを保持する期間です
	Retention time.Duration
	Interval  time.Duration
}

// NewJoinRequestRetentionJob は解決済み参加リクエストを定期削除するジョブを作成します
// pendingのリクエストは対象外です
func NewJoinRequestRetentionJob(cleanupFn func(ctx context.Context, before time.Time) (int64, error), cfg JoinRequestRetentionJobConfig) Job {
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}

	return Job{
		Name:     "join_request_retention",
		Interval: cfg.Interval,
		Fn: func(ctx context.Context) error {
			before := time.Now().Add(-cfg.Retention)
			count, err := cleanupFn(ctx, before)
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info(ctx, "resolved join requests purged", "deleted", count, "before", before)
			}
			return nil
		},
	}
}

// NewHealthCheckJob はヘルスチェックジョブを作成します（ストア接続確認など）
func NewHealthCheckJob(checkFn func(ctx context.Context) error) Job {
	return Job{
		Name:     "health_check",
		Interval: 5 * time.Minute,
		Fn: func(ctx context.Context) error {
			if err := checkFn(ctx); err != nil {
				logger.Warn(ctx, "health check failed", "error", err)
				return err
			}
			return nil
		},
	}
}
