package scheduler

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/integration"
)

// ProductBatchSyncer runs a full product synchronization
type ProductBatchSyncer interface {
	SyncAll(ctx context.Context) (*integration.ProductBatchReport, error)
}

// OrderBatchSyncer runs a new-order synchronization
type OrderBatchSyncer interface {
	SyncNew(ctx context.Context) (*integration.OrderBatchReport, error)
}

// SyncExecutor executes scheduled jobs against the sync services
type SyncExecutor struct {
	products ProductBatchSyncer
	orders   OrderBatchSyncer
	logger   *zap.Logger
}

// NewSyncExecutor creates a new SyncExecutor
func NewSyncExecutor(products ProductBatchSyncer, orders OrderBatchSyncer, logger *zap.Logger) *SyncExecutor {
	return &SyncExecutor{
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// Execute runs the batch sync matching the job type. Item-level failures
// live inside the report and do not fail the job; only a listing failure does.
func (e *SyncExecutor) Execute(ctx context.Context, job *Job) error {
	switch job.Type {
	case JobTypeProductSync:
		report, err := e.products.SyncAll(ctx)
		if err != nil {
			return err
		}
		e.logger.Info("Scheduled product sync finished",
			zap.String("job_id", job.ID.String()),
			zap.Int("total", report.Total),
			zap.Int("successful", report.Successful),
			zap.Int("failed", report.Failed),
		)
		return nil
	case JobTypeOrderSync:
		report, err := e.orders.SyncNew(ctx)
		if err != nil {
			return err
		}
		e.logger.Info("Scheduled order sync finished",
			zap.String("job_id", job.ID.String()),
			zap.Int("total", report.Total),
			zap.Int("successful", report.Successful),
			zap.Int("failed", report.Failed),
		)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownJobType, job.Type)
	}
}

// Ensure SyncExecutor implements the JobExecutor interface
var _ JobExecutor = (*SyncExecutor)(nil)
