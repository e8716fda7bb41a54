// Package scheduler drives the batch runner on a fixed cadence and
// owns the recurring maintenance jobs. Job state lives on the
// Scheduler instance, not in package globals, so instances can be
// started and stopped independently in tests and only the primary
// deployment instance runs one at all.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/hihu/gita-notifier/internal/service/batch"
)

// Job names registered by Start.
const (
	JobDailyQuotes = "daily_quotes"
	JobCleanup     = "cleanup"
)

//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler/mock.go -package=mocks

type batchRunner interface {
	RunOnce(ctx context.Context) (batch.Result, error)
}

type notificationCleaner interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler owns the periodic jobs: the per-minute daily quote sweep
// and the expired-notification purge.
type Scheduler struct {
	runner  batchRunner
	cleaner notificationCleaner

	tickInterval    time.Duration
	cleanupInterval time.Duration

	mu   sync.Mutex
	jobs map[string]context.CancelFunc

	busy atomic.Bool // overlap guard: one batch pass in flight at a time
}

// New creates a stopped scheduler.
func New(runner batchRunner, cleaner notificationCleaner, tickInterval, cleanupInterval time.Duration) *Scheduler {
	return &Scheduler{
		runner:          runner,
		cleaner:         cleaner,
		tickInterval:    tickInterval,
		cleanupInterval: cleanupInterval,
		jobs:            make(map[string]context.CancelFunc),
	}
}

// Start launches the periodic jobs. A second Start while running is a
// no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.jobs) > 0 {
		return
	}

	quoteCtx, cancelQuotes := context.WithCancel(context.Background())
	s.jobs[JobDailyQuotes] = cancelQuotes
	go s.quoteLoop(quoteCtx)

	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	s.jobs[JobCleanup] = cancelCleanup
	go s.cleanupLoop(cleanupCtx)

	zlog.Logger.Info().Dur("tick", s.tickInterval).Msg("scheduler started")
}

// Stop cancels future ticks and clears job state. It does not cancel
// an in-flight batch pass. Idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, cancel := range s.jobs {
		cancel()
		zlog.Logger.Info().Str("job", name).Msg("stopped job")
	}

	s.jobs = make(map[string]context.CancelFunc)
}

// ActiveJobs lists the currently registered job names.
func (s *Scheduler) ActiveJobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}

	return names
}

// quoteLoop fires the batch runner on every tick, dropping ticks that
// arrive while a pass is still running.
func (s *Scheduler) quoteLoop(ctx context.Context) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one guarded batch pass. A tick arriving while the guard is
// held is skipped, not queued. The pass runs detached from the job
// context: Stop prevents future ticks but a pass already in flight
// finishes its sweep.
func (s *Scheduler) tick(ctx context.Context) {
	if !s.busy.CompareAndSwap(false, true) {
		zlog.Logger.Warn().Msg("previous batch pass still running, skipping tick")
		return
	}

	passCtx := context.WithoutCancel(ctx)

	go func() {
		defer s.busy.Store(false)

		if _, err := s.runner.RunOnce(passCtx); err != nil {
			// The next tick retries from scratch.
			zlog.Logger.Error().Err(err).Msg("batch pass failed")
		}
	}()
}

func (s *Scheduler) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := s.cleaner.PurgeExpired(ctx, time.Now())
			if err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to purge expired notifications")
				continue
			}

			if purged > 0 {
				zlog.Logger.Info().Int64("purged", purged).Msg("expired notifications purged")
			}
		}
	}
}
