package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/integration"
)

type recordingExecutor struct {
	mu    sync.Mutex
	types []JobType
	err   error
}

func (e *recordingExecutor) Execute(ctx context.Context, job *Job) error {
	e.mu.Lock()
	e.types = append(e.types, job.Type)
	e.mu.Unlock()
	return e.err
}

func (e *recordingExecutor) executed() []JobType {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]JobType, len(e.types))
	copy(out, e.types)
	return out
}

func TestScheduler_TriggerNow(t *testing.T) {
	executor := &recordingExecutor{}
	s := NewScheduler(Config{Enabled: true, Interval: time.Hour}, executor, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Stop(context.Background()) }()

	require.NoError(t, s.TriggerNow(context.Background()))

	// One cycle runs products first, then orders
	assert.Equal(t, []JobType{JobTypeProductSync, JobTypeOrderSync}, executor.executed())

	productJob := s.LastJob(JobTypeProductSync)
	require.NotNil(t, productJob)
	assert.Equal(t, JobStatusSuccess, productJob.Status)
	assert.NotNil(t, productJob.CompletedAt)
}

func TestScheduler_TriggerNow_NotRunning(t *testing.T) {
	s := NewScheduler(DefaultConfig(), &recordingExecutor{}, zap.NewNop())
	assert.ErrorIs(t, s.TriggerNow(context.Background()), ErrSchedulerNotRunning)
}

func TestScheduler_FailedJobRecorded(t *testing.T) {
	executor := &recordingExecutor{err: errors.New("remote down")}
	s := NewScheduler(Config{Enabled: true, Interval: time.Hour}, executor, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Stop(context.Background()) }()

	require.NoError(t, s.TriggerNow(context.Background()))

	job := s.LastJob(JobTypeOrderSync)
	require.NotNil(t, job)
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "remote down", job.Error)
}

func TestScheduler_PeriodicTicks(t *testing.T) {
	executor := &recordingExecutor{}
	s := NewScheduler(Config{Enabled: true, Interval: 10 * time.Millisecond}, executor, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Stop(context.Background()) }()

	require.Eventually(t, func() bool { return len(executor.executed()) >= 4 },
		time.Second, 5*time.Millisecond)
}

func TestScheduler_StartIdempotent(t *testing.T) {
	s := NewScheduler(Config{Enabled: true, Interval: time.Hour}, &recordingExecutor{}, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}

func TestSyncExecutor(t *testing.T) {
	products := &stubProductSyncer{}
	orders := &stubOrderSyncer{}
	executor := NewSyncExecutor(products, orders, zap.NewNop())

	require.NoError(t, executor.Execute(context.Background(), NewJob(JobTypeProductSync)))
	assert.Equal(t, 1, products.calls)
	assert.Zero(t, orders.calls)

	require.NoError(t, executor.Execute(context.Background(), NewJob(JobTypeOrderSync)))
	assert.Equal(t, 1, orders.calls)

	err := executor.Execute(context.Background(), NewJob(JobType("UNKNOWN")))
	assert.ErrorIs(t, err, ErrUnknownJobType)
}

func TestSyncExecutor_ListingFailure(t *testing.T) {
	products := &stubProductSyncer{err: integration.ErrUnavailable}
	executor := NewSyncExecutor(products, &stubOrderSyncer{}, zap.NewNop())

	err := executor.Execute(context.Background(), NewJob(JobTypeProductSync))
	assert.ErrorIs(t, err, integration.ErrUnavailable)
}

type stubProductSyncer struct {
	calls int
	err   error
}

func (s *stubProductSyncer) SyncAll(ctx context.Context) (*integration.ProductBatchReport, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &integration.ProductBatchReport{}, nil
}

type stubOrderSyncer struct {
	calls int
	err   error
}

func (s *stubOrderSyncer) SyncNew(ctx context.Context) (*integration.OrderBatchReport, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &integration.OrderBatchReport{}, nil
}
