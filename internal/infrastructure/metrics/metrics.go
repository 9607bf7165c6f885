// Package metrics はPrometheusメトリクスを提供します
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tripshare"

// Metrics はアプリケーションのメトリクスを保持します
type Metrics struct {
	registry *prometheus.Registry

	httpDuration  *prometheus.HistogramVec
	membershipOps *prometheus.CounterVec
	auditDropped  prometheus.Counter
	jobRuns       *prometheus.CounterVec
}

// New は専用レジストリにメトリクスを登録して返します
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		membershipOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "membership",
			Name:      "operations_total",
			Help:      "Successful membership mutations by action.",
		}, []string{"action"}),
		auditDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "dropped_total",
			Help:      "Audit entries dropped because the buffer was full.",
		}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "job_runs_total",
			Help:      "Background job executions by job and result.",
		}, []string{"job", "result"}),
	}

	registry.MustRegister(m.httpDuration, m.membershipOps, m.auditDropped, m.jobRuns)
	return m
}

// Handler は/metrics用のHTTPハンドラーを返します
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry はレジストリを返します
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest はHTTPリクエストの所要時間を記録します
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// RecordMembershipOperation はメンバーシップ変更を数えます
func (m *Metrics) RecordMembershipOperation(action string) {
	m.membershipOps.WithLabelValues(action).Inc()
}

// RecordAuditDropped は破棄された監査エントリを数えます
func (m *Metrics) RecordAuditDropped() {
	m.auditDropped.Inc()
}

// RecordJobRun はジョブの実行結果を数えます
func (m *Metrics) RecordJobRun(job string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.jobRuns.WithLabelValues(job, result).Inc()
}
