package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSchedulerNotRunning = errors.New("scheduler is not running")
	ErrJobInProgress       = errors.New("a run is already in progress")
	ErrInvalidConfig       = errors.New("invalid scheduler configuration")
)

// JobStatus represents the status of a scheduled run
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// TaskFunc is the work executed on every tick
type TaskFunc func(ctx context.Context) error

// Job is one run of the task, including its retries
type Job struct {
	ID          uuid.UUID
	Name        string
	Status      JobStatus
	Error       string
	Attempts    int
	StartedAt   *time.Time
	CompletedAt *time.Time
}

func newJob(name string) *Job {
	return &Job{ID: uuid.New(), Name: name, Status: JobStatusPending}
}

func (j *Job) start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
	j.Error = ""
}

func (j *Job) complete() {
	now := time.Now()
	j.Status = JobStatusSuccess
	j.CompletedAt = &now
}

func (j *Job) fail(err error) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	j.Error = err.Error()
}

// Config holds scheduler configuration
type Config struct {
	// Name identifies the task in logs
	Name string
	// Interval between runs
	Interval time.Duration
	// JobTimeout bounds one attempt
	JobTimeout time.Duration
	// RetryAttempts is the number of retries after a failed attempt
	RetryAttempts int
	// RetryDelay is the pause before a retry
	RetryDelay time.Duration
	// RunOnStart runs the task immediately instead of after the first interval
	RunOnStart bool
}

// DefaultConfig returns the auto backup schedule defaults
func DefaultConfig() Config {
	return Config{
		Name:          "auto-backup",
		Interval:      24 * time.Hour,
		JobTimeout:    30 * time.Minute,
		RetryAttempts: 2,
		RetryDelay:    5 * time.Minute,
	}
}

func (c Config) validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive", ErrInvalidConfig)
	}
	if c.JobTimeout <= 0 {
		return fmt.Errorf("%w: job timeout must be positive", ErrInvalidConfig)
	}
	if c.RetryAttempts < 0 || c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry settings must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Scheduler runs a task at a fixed interval. A tick that arrives while the
// previous run is still active is skipped.
type Scheduler struct {
	config Config
	task   TaskFunc
	logger *zap.Logger

	trigger   chan struct{}
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	busy      bool
	lastJob   *Job
}

// NewScheduler creates a new scheduler instance
func NewScheduler(config Config, task TaskFunc, logger *zap.Logger) (*Scheduler, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if config.Name == "" {
		config.Name = "task"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		config:  config,
		task:    task,
		logger:  logger.With(zap.String("job", config.Name)),
		trigger: make(chan struct{}, 1),
	}, nil
}

// Start starts the run loop
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
	go s.runLoop(ctx)

	s.logger.Info("Scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("job_timeout", s.config.JobTimeout),
		zap.Bool("run_on_start", s.config.RunOnStart),
	)
	return nil
}

// Stop cancels the loop and waits for an active run to finish or ctx to expire
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
		s.logger.Info("Scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

// TriggerNow requests an immediate run outside the regular interval
func (s *Scheduler) TriggerNow() error {
	s.mu.Lock()
	running, busy := s.isRunning, s.busy
	s.mu.Unlock()
	if !running {
		return ErrSchedulerNotRunning
	}
	if busy {
		return ErrJobInProgress
	}
	select {
	case s.trigger <- struct{}{}:
	default:
	}
	return nil
}

// LastJob returns a copy of the most recent run, nil before the first one
func (s *Scheduler) LastJob() *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastJob == nil {
		return nil
	}
	job := *s.lastJob
	return &job
}

func (s *Scheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	if s.config.RunOnStart {
		s.run(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.run(ctx)
		case <-s.trigger:
			s.run(ctx)
		}
	}
}

// run executes one job with retries
func (s *Scheduler) run(ctx context.Context) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		s.logger.Warn("Previous run still active, skipping tick")
		return
	}
	s.busy = true
	job := newJob(s.config.Name)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.lastJob = job
		s.mu.Unlock()
	}()

	job.start()
	for {
		job.Attempts++
		err := s.attempt(ctx)
		if err == nil {
			job.complete()
			s.logger.Info("Job completed",
				zap.String("job_id", job.ID.String()),
				zap.Int("attempts", job.Attempts),
			)
			return
		}

		s.logger.Error("Job attempt failed",
			zap.String("job_id", job.ID.String()),
			zap.Int("attempt", job.Attempts),
			zap.Error(err),
		)
		if job.Attempts > s.config.RetryAttempts || ctx.Err() != nil {
			job.fail(err)
			return
		}

		select {
		case <-ctx.Done():
			job.fail(ctx.Err())
			return
		case <-time.After(s.config.RetryDelay):
		}
	}
}

func (s *Scheduler) attempt(ctx context.Context) (err error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return s.task(ctx)
}
