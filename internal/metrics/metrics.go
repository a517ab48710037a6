package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	namespace = "achievement_board"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	BoardsTotal             prometheus.Gauge
	BoardCreatedTotal       prometheus.Counter
	AchievementCreatedTotal prometheus.Counter
	ProgressRecordedTotal   prometheus.Counter

	logger *zap.Logger
}

// New creates and registers all metrics with the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, nil)
}

// NewWithRegistry creates and registers all metrics with a custom registry
func NewWithRegistry(registerer prometheus.Registerer, logger *zap.Logger) *Metrics {
	factory := promauto.With(registerer)

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "endpoint"},
		),
		BoardsTotal: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "boards_total",
				Help:      "Current number of boards in the store",
			},
		),
		BoardCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "board_created_total",
				Help:      "Total number of boards created",
			},
		),
		AchievementCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "achievement_created_total",
				Help:      "Total number of achievements created",
			},
		),
		ProgressRecordedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "progress_recorded_total",
				Help:      "Total number of progress mutations recorded",
			},
		),
		logger: logger,
	}
}

// RecordHTTPRequest records one completed HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// IncrementBoardCreated increments the board creation counter
func (m *Metrics) IncrementBoardCreated() {
	if m == nil {
		return
	}
	m.BoardCreatedTotal.Inc()
}

// IncrementAchievementCreated increments the achievement creation counter
func (m *Metrics) IncrementAchievementCreated() {
	if m == nil {
		return
	}
	m.AchievementCreatedTotal.Inc()
}

// IncrementProgressRecorded increments the progress mutation counter
func (m *Metrics) IncrementProgressRecorded() {
	if m == nil {
		return
	}
	m.ProgressRecordedTotal.Inc()
}

// SetBoardsTotal updates the boards gauge
func (m *Metrics) SetBoardsTotal(count float64) {
	if m == nil {
		return
	}
	m.BoardsTotal.Set(count)
}

// ShouldSkipEndpoint reports whether HTTP metrics should skip the path
func ShouldSkipEndpoint(path string) bool {
	switch path {
	case "/metrics", "/healthz", "/":
		return true
	}
	return false
}
