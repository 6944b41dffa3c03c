package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() Config {
	return Config{
		Name:          "test",
		Interval:      time.Hour,
		JobTimeout:    time.Second,
		RetryAttempts: 0,
		RetryDelay:    time.Millisecond,
	}
}

func TestNewScheduler_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Interval = 0
	_, err := NewScheduler(cfg, func(context.Context) error { return nil }, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = testConfig()
	cfg.RetryAttempts = -1
	_, err = NewScheduler(cfg, func(context.Context) error { return nil }, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 24*time.Hour, cfg.Interval)
	assert.NoError(t, cfg.validate())
}

func TestScheduler_RunOnStart(t *testing.T) {
	var calls atomic.Int32
	cfg := testConfig()
	cfg.RunOnStart = true

	s, err := NewScheduler(cfg, func(context.Context) error {
		calls.Add(1)
		return nil
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	require.Eventually(t, func() bool {
		job := s.LastJob()
		return job != nil && job.Status == JobStatusSuccess
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, s.LastJob().Attempts)
}

func TestScheduler_Interval(t *testing.T) {
	var calls atomic.Int32
	cfg := testConfig()
	cfg.Interval = 10 * time.Millisecond

	s, err := NewScheduler(cfg, func(context.Context) error {
		calls.Add(1)
		return nil
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_RetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	cfg := testConfig()
	cfg.RetryAttempts = 2

	s, err := NewScheduler(cfg, func(context.Context) error {
		calls.Add(1)
		return errors.New("disk full")
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	require.NoError(t, s.TriggerNow())
	require.Eventually(t, func() bool {
		job := s.LastJob()
		return job != nil && job.Status == JobStatusFailed
	}, time.Second, 5*time.Millisecond)

	job := s.LastJob()
	assert.Equal(t, 3, job.Attempts)
	assert.Equal(t, "disk full", job.Error)
	assert.Equal(t, int32(3), calls.Load())
}

func TestScheduler_RetrySucceeds(t *testing.T) {
	var calls atomic.Int32
	cfg := testConfig()
	cfg.RetryAttempts = 3
	cfg.RunOnStart = true

	s, err := NewScheduler(cfg, func(context.Context) error {
		if calls.Add(1) < 2 {
			return errors.New("transient")
		}
		return nil
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	require.Eventually(t, func() bool {
		job := s.LastJob()
		return job != nil && job.Status == JobStatusSuccess
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, s.LastJob().Attempts)
	assert.Empty(t, s.LastJob().Error)
}

func TestScheduler_PanicIsReportedAsFailure(t *testing.T) {
	cfg := testConfig()
	cfg.RunOnStart = true

	s, err := NewScheduler(cfg, func(context.Context) error { panic("boom") }, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	require.Eventually(t, func() bool {
		job := s.LastJob()
		return job != nil && job.Status == JobStatusFailed
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, s.LastJob().Error, "boom")
}

func TestScheduler_JobTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.JobTimeout = 20 * time.Millisecond
	cfg.RunOnStart = true

	s, err := NewScheduler(cfg, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	require.Eventually(t, func() bool {
		job := s.LastJob()
		return job != nil && job.Status == JobStatusFailed
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, s.LastJob().Error, "deadline exceeded")
}

func TestScheduler_TriggerNow(t *testing.T) {
	s, err := NewScheduler(testConfig(), func(context.Context) error { return nil }, zap.NewNop())
	require.NoError(t, err)

	assert.ErrorIs(t, s.TriggerNow(), ErrSchedulerNotRunning)
	assert.Nil(t, s.LastJob())

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.TriggerNow())
	require.Eventually(t, func() bool { return s.LastJob() != nil }, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))

	assert.ErrorIs(t, s.TriggerNow(), ErrSchedulerNotRunning)
}

func TestScheduler_StopTimeout(t *testing.T) {
	release := make(chan struct{})
	cfg := testConfig()
	cfg.JobTimeout = time.Minute
	cfg.RunOnStart = true

	started := make(chan struct{})
	s, err := NewScheduler(cfg, func(context.Context) error {
		close(started)
		<-release
		return nil
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	<-started

	stopCtx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Stop(stopCtx), context.DeadlineExceeded)
	close(release)
}

func TestScheduler_StartStopIdempotent(t *testing.T) {
	s, err := NewScheduler(testConfig(), func(context.Context) error { return nil }, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}
