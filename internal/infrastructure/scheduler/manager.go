// Package scheduler runs periodic maintenance jobs on gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"medrecords/internal/shared/biztime"
	"medrecords/internal/shared/goroutine"
	"medrecords/internal/shared/logger"
)

const sessionSweepJobName = "session-sweep"

// BatchJob processes one batch per Execute and reports how many items it
// touched.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager owns the process-wide gocron scheduler.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	mu      sync.RWMutex
	running bool
}

// NewSchedulerManager evaluates schedules in the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(biztime.Location()))
	if err != nil {
		return nil, err
	}
	return &SchedulerManager{scheduler: s, logger: log}, nil
}

// RegisterSessionSweepJob deactivates expired sessions every interval,
// first run immediately. Runs never overlap; a slow run pushes the next one
// back.
func (m *SchedulerManager) RegisterSessionSweepJob(sweepJob BatchJob, interval time.Duration) error {
	if err := m.registerBatchJob(sessionSweepJobName, interval, 5*time.Minute, sweepJob, "session", "cleanup"); err != nil {
		return err
	}
	m.logger.Infow("registered session sweep job", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) registerBatchJob(name string, interval, timeout time.Duration, job BatchJob, tags ...string) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			defer goroutine.Recover(m.logger, name)

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			m.runBatch(ctx, name, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags(tags...),
		gocron.WithName(name),
	)
	return err
}

func (m *SchedulerManager) runBatch(ctx context.Context, name string, job BatchJob) {
	started := biztime.NowUTC()

	count, err := job.Execute(ctx)
	elapsed := biztime.NowUTC().Sub(started)
	if err != nil {
		m.logger.Errorw("scheduled job failed", "job", name, "error", err, "duration", elapsed)
		return
	}
	if count > 0 {
		m.logger.Infow("scheduled job processed items", "job", name, "count", count, "duration", elapsed)
	}
}

// Start is idempotent.
func (m *SchedulerManager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.scheduler.Start()
	m.running = true
	m.logger.Infow("scheduler started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to finish. Stopping a stopped manager is a no-op.
func (m *SchedulerManager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return nil
	}
	m.running = false

	if err := m.scheduler.Shutdown(); err != nil {
		m.logger.Errorw("scheduler shutdown failed", "error", err)
		return err
	}
	m.logger.Infow("scheduler stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

// Jobs lists the registered jobs.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
