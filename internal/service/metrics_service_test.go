package service

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-portal/internal/gateway"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()

	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/students", http.StatusOK, 20*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/students", http.StatusOK, 40*time.Millisecond)
	m.RecordGatewayCall("students.list", string(gateway.SourceRemote))
	m.RecordGatewayCall("students.list", string(gateway.SourceFallback))
	m.RecordRemoteFailure("students.list")
	m.ObserveDBQuery("activity_insert", 4*time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.RequestsTotal)
	assert.InDelta(t, 30, snap.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(2), snap.GatewayCalls)
	assert.Equal(t, uint64(1), snap.GatewayFallbacks)
	assert.Equal(t, uint64(1), snap.RemoteFailures)
	assert.Equal(t, uint64(1), snap.DBQueryCount)
	assert.InDelta(t, 4, snap.AverageDBQueryDurationMs, 0.001)
	assert.Positive(t, snap.Goroutines)
}

func TestMetricsServiceHandlerExposesGatewayCounters(t *testing.T) {
	m := NewMetricsService()
	m.RecordGatewayCall("fees.list", string(gateway.SourceFallback))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `gateway_calls_total{operation="fees.list",source="fallback"} 1`)
}

func TestMetricsServiceNilIsSafe(t *testing.T) {
	var m *MetricsService
	m.RecordGatewayCall("x", "remote")
	m.ObserveDBQuery("x", time.Millisecond)
	assert.Zero(t, m.Snapshot().RequestsTotal)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
