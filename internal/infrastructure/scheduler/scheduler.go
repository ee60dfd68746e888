package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobStatus represents the status of a scheduled sync job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// JobType represents the kind of synchronization a job performs
type JobType string

const (
	JobTypeProductSync JobType = "PRODUCT_SYNC"
	JobTypeOrderSync   JobType = "ORDER_SYNC"
)

// AllJobTypes returns the job types of one sync cycle, in execution order
func AllJobTypes() []JobType {
	return []JobType{JobTypeProductSync, JobTypeOrderSync}
}

// Job represents one scheduled synchronization run
type Job struct {
	ID          uuid.UUID
	Type        JobType
	Status      JobStatus
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// NewJob creates a new job instance
func NewJob(jobType JobType) *Job {
	return &Job{
		ID:     uuid.New(),
		Type:   jobType,
		Status: JobStatusPending,
	}
}

// Start marks the job as running
func (j *Job) Start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
	j.Error = ""
}

// Complete marks the job as successful
func (j *Job) Complete() {
	now := time.Now()
	j.Status = JobStatusSuccess
	j.CompletedAt = &now
}

// Fail marks the job as failed
func (j *Job) Fail(err string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	j.Error = err
}

// JobExecutor is the interface for executing sync jobs
type JobExecutor interface {
	Execute(ctx context.Context, job *Job) error
}

// Config holds scheduler configuration
type Config struct {
	Enabled    bool
	Interval   time.Duration
	JobTimeout time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		Interval:   time.Hour,
		JobTimeout: 30 * time.Minute,
	}
}

// Scheduler triggers a full sync cycle at a fixed interval. Jobs within a
// cycle run strictly sequentially, products before orders.
type Scheduler struct {
	config   Config
	executor JobExecutor
	logger   *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastJobs  map[JobType]*Job
}

// NewScheduler creates a new scheduler instance
func NewScheduler(config Config, executor JobExecutor, logger *zap.Logger) *Scheduler {
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = 30 * time.Minute
	}
	return &Scheduler{
		config:   config,
		executor: executor,
		logger:   logger,
		lastJobs: make(map[JobType]*Job),
	}
}

// Start starts the periodic sync loop
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Sync scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Sync scheduler stop timed out")
		return ctx.Err()
	}
}

// TriggerNow runs one full sync cycle immediately
func (s *Scheduler) TriggerNow(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	s.runCycle(ctx)
	return nil
}

// LastJob returns the most recent job of the given type, or nil
func (s *Scheduler) LastJob(jobType JobType) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastJobs[jobType]
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// runCycle executes one job per job type, in order
func (s *Scheduler) runCycle(ctx context.Context) {
	for _, jobType := range AllJobTypes() {
		if ctx.Err() != nil {
			return
		}
		s.runJob(ctx, NewJob(jobType))
	}
}

func (s *Scheduler) runJob(ctx context.Context, job *Job) {
	job.Start()
	s.mu.Lock()
	s.lastJobs[job.Type] = job
	s.mu.Unlock()

	s.logger.Info("Sync job starting",
		zap.String("job_id", job.ID.String()),
		zap.String("job_type", string(job.Type)),
	)

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	if err := s.executor.Execute(jobCtx, job); err != nil {
		job.Fail(err.Error())
		s.logger.Error("Sync job failed",
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", string(job.Type)),
			zap.Error(err),
		)
		return
	}

	job.Complete()
	s.logger.Info("Sync job completed",
		zap.String("job_id", job.ID.String()),
		zap.String("job_type", string(job.Type)),
	)
}
