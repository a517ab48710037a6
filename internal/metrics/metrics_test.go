package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func gatherCounter(t *testing.T, registry *prometheus.Registry, name string) float64 {
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			var total float64
			for _, metric := range family.GetMetric() {
				total += metric.GetCounter().GetValue()
			}
			return total
		}
	}
	return 0
}

func gatherGauge(t *testing.T, registry *prometheus.Registry, name string) float64 {
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return family.GetMetric()[0].GetGauge().GetValue()
		}
	}
	return 0
}

func TestRecordHTTPRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, zap.NewNop())

	m.RecordHTTPRequest("GET", "/api/boards", 200, 25*time.Millisecond)
	m.RecordHTTPRequest("POST", "/api/boards", 201, 40*time.Millisecond)

	assert.Equal(t, 2.0, gatherCounter(t, registry, "achievement_board_http_requests_total"))

	families, err := registry.Gather()
	require.NoError(t, err)
	var histogram *dto.MetricFamily
	for _, family := range families {
		if family.GetName() == "achievement_board_http_request_duration_seconds" {
			histogram = family
		}
	}
	require.NotNil(t, histogram)
	assert.Equal(t, uint64(1), histogram.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestBusinessCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, zap.NewNop())

	m.IncrementBoardCreated()
	m.IncrementAchievementCreated()
	m.IncrementAchievementCreated()
	m.IncrementProgressRecorded()
	m.SetBoardsTotal(7)

	assert.Equal(t, 1.0, gatherCounter(t, registry, "achievement_board_board_created_total"))
	assert.Equal(t, 2.0, gatherCounter(t, registry, "achievement_board_achievement_created_total"))
	assert.Equal(t, 1.0, gatherCounter(t, registry, "achievement_board_progress_recorded_total"))
	assert.Equal(t, 7.0, gatherGauge(t, registry, "achievement_board_boards_total"))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
	m.IncrementBoardCreated()
	m.IncrementAchievementCreated()
	m.IncrementProgressRecorded()
	m.SetBoardsTotal(1)
}

func TestShouldSkipEndpoint(t *testing.T) {
	assert.True(t, ShouldSkipEndpoint("/metrics"))
	assert.True(t, ShouldSkipEndpoint("/healthz"))
	assert.True(t, ShouldSkipEndpoint("/"))
	assert.False(t, ShouldSkipEndpoint("/api/boards"))
}
