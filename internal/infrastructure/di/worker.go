package di

import (
	"github.com/Hiro-mackay/tripshare/internal/infrastructure/worker"
)

// NewWorkerManager はバックグラウンドジョブを登録したManagerを作成します
func NewWorkerManager(c *Container) *worker.Manager {
	m := worker.NewManager(c.Metrics)

	m.Register(worker.NewJoinRequestRetentionJob(
		c.Repos.JoinRequests.DeleteResolvedBefore,
		worker.JoinRequestRetentionJobConfig{Retention: c.config.Membership.JoinRequestRetention},
	))
	m.Register(worker.NewHealthCheckJob(c.StoreHealth))

	return m
}
