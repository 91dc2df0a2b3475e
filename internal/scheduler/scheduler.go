// internal/scheduler/scheduler.go

package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// JobFunc is a single pipeline job execution.
type JobFunc func(ctx context.Context) error

// Job pairs a named pipeline job with its tick interval.
type Job struct {
	Name     string
	Interval time.Duration
	Run      JobFunc
}

// Intervals configures the four recurring pipeline jobs.
type Intervals struct {
	Fetch     time.Duration
	Sentiment time.Duration
	Trends    time.Duration
	Alerts    time.Duration
}

// DefaultIntervals returns the production tick rates.
func DefaultIntervals() Intervals {
	return Intervals{
		Fetch:     15 * time.Minute,
		Sentiment: 60 * time.Minute,
		Trends:    30 * time.Minute,
		Alerts:    5 * time.Minute,
	}
}

// Scheduler drives the pipeline jobs on independent recurring timers.
// It is either stopped (initial) or running; Start and Stop are
// idempotent. Stopping suppresses future ticks but does not interrupt
// a job already executing.
type Scheduler struct {
	jobs   []Job
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// New builds a scheduler over an ordered job list. The order is the
// order of the initial synchronous run.
func New(jobs []Job, logger *slog.Logger) *Scheduler {
	return &Scheduler{jobs: jobs, logger: logger}
}

// Start transitions the scheduler to running: every job executes once
// immediately, in registration order, before its timer begins ticking.
// Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	stop := s.stop
	s.mu.Unlock()

	s.logger.Info("starting scheduled jobs", "jobs", len(s.jobs))

	// Initial run, in fixed order, before any timer fires.
	for _, job := range s.jobs {
		s.execute(ctx, job)
	}

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, job, stop)
	}
}

// Stop cancels all timers and waits for running tick goroutines to
// wind down. Calling Stop on a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("scheduled jobs stopped")
}

// Running reports whether the scheduler is in the running state.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) loop(ctx context.Context, job Job, stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.execute(ctx, job)
		case <-stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// execute runs one job tick. Failures are contained here: a failing
// job is logged and its timer keeps ticking.
func (s *Scheduler) execute(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("job panicked", "job", job.Name, "panic", r)
		}
	}()

	s.logger.Debug("running job", "job", job.Name)
	if err := job.Run(ctx); err != nil {
		s.logger.Error("job failed", "job", job.Name, "error", err)
	}
}
