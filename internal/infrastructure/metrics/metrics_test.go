package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/internal/infrastructure/metrics"
)

func TestMetrics_RecordMembershipOperation_CountsByAction(t *testing.T) {
	m := metrics.New()

	m.RecordMembershipOperation("group.member_join")
	m.RecordMembershipOperation("group.member_join")
	m.RecordMembershipOperation("group.member_leave")

	count, err := testutil.GatherAndCount(m.Registry(), "tripshare_membership_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_Handler_ExposesRecordedSeries(t *testing.T) {
	m := metrics.New()
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/groups", http.StatusCreated, 12*time.Millisecond)
	m.RecordJobRun("health_check", errors.New("down"))
	m.RecordAuditDropped()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `tripshare_http_request_duration_seconds_count{method="POST",route="/api/v1/groups",status="201"} 1`)
	assert.Contains(t, body, `tripshare_worker_job_runs_total{job="health_check",result="failure"} 1`)
	assert.Contains(t, body, `tripshare_audit_dropped_total 1`)
}
