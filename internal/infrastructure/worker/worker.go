package worker

import (
	"context"
	"sync"
	"time"

	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// Job は定期実行ジョブを定義します
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Recorder はジョブの実行結果を受け取ります
type Recorder interface {
	RecordJobRun(job string, err error)
}

type noopRecorder struct{}

func (noopRecorder) RecordJobRun(string, error) {}

// Manager はバックグラウンドワーカーを管理します
type Manager struct {
	jobs     []Job
	recorder Recorder
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewManager は新しいWorker Managerを作成します
func NewManager(recorder Recorder) *Manager {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		recorder: recorder,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Register は定期実行ジョブを登録します
func (m *Manager) Register(job Job) {
	m.jobs = append(m.jobs, job)
}

// Start は全ジョブのワーカーを開始します
func (m *Manager) Start() {
	for _, job := range m.jobs {
		m.wg.Add(1)
		go m.runJob(job)
	}
	logger.Info(m.ctx, "worker manager started", "jobs", len(m.jobs))
}

// runJob は単一ジョブのワーカーループを実行します
func (m *Manager) runJob(job Job) {
	defer m.wg.Done()

	logger.Info(m.ctx, "worker started", "job", job.Name, "interval", job.Interval)

	// 最初の実行を即座に行う
	m.execute(job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			logger.Info(context.Background(), "worker stopping", "job", job.Name)
			return
		case <-ticker.C:
			m.execute(job)
		}
	}
}

func (m *Manager) execute(job Job) {
	err := job.Fn(m.ctx)
	m.recorder.RecordJobRun(job.Name, err)
	if err != nil {
		logger.Error(m.ctx, "worker job failed", "job", job.Name, "error", err)
	}
}

// Shutdown はすべてのワーカーを安全に停止します
func (m *Manager) Shutdown(timeout time.Duration) {
	ctx := context.Background()
	logger.Info(ctx, "shutting down worker manager...")
	m.cancel()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info(ctx, "worker manager stopped gracefully")
	case <-time.After(timeout):
		logger.Warn(ctx, "worker manager shutdown timed out")
	}
}
