package job

import (
	"context"

	"go.uber.org/zap"

	"achievement-board-api/internal/metrics"
	"achievement-board-api/internal/repository"
)

// MetricsJob periodically refreshes store-level gauges. It only feeds
// observability; request handling never depends on it.
type MetricsJob struct {
	boardRepo repository.BoardRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewMetricsJob creates a new MetricsJob instance
func NewMetricsJob(
	boardRepo repository.BoardRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *MetricsJob {
	return &MetricsJob{
		boardRepo: boardRepo,
		metrics:   m,
		logger:    logger,
	}
}

// Run refreshes the boards gauge from the store
func (j *MetricsJob) Run() {
	ctx := context.Background()

	count, err := j.boardRepo.Count(ctx)
	if err != nil {
		j.logger.Error("Failed to count boards for metrics", zap.Error(err))
		return
	}

	j.metrics.SetBoardsTotal(float64(count))
	j.logger.Debug("Boards gauge refreshed", zap.Int64("count", count))
}
