package engine

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/helmsman/internal/locking"
)

// Notifier receives failure signals from background jobs.
type Notifier interface {
	NotifyFailure(job string, err error)
}

// LogNotifier logs failures, the default when nothing else is wired.
type LogNotifier struct {
	Log zerolog.Logger
}

// NotifyFailure implements Notifier
func (n LogNotifier) NotifyFailure(job string, err error) {
	n.Log.Error().Err(err).Str("job", job).Msg("background job failed")
}

// CycleJob runs a full decision cycle under a named lock. Two
// overlapping cycles would race on provider quotas and the cached
// result, so the lock serializes them.
type CycleJob struct {
	engine   *Engine
	locks    *locking.Manager
	notifier Notifier
	timeout  time.Duration
}

// NewCycleJob creates a new cycle job
func NewCycleJob(engine *Engine, locks *locking.Manager, notifier Notifier, timeout time.Duration) *CycleJob {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CycleJob{
		engine:   engine,
		locks:    locks,
		notifier: notifier,
		timeout:  timeout,
	}
}

// Name implements scheduler.Job
func (j *CycleJob) Name() string { return "decision_cycle" }

// Run implements scheduler.Job
func (j *CycleJob) Run() error {
	lock, err := j.locks.Acquire("decision_cycle", j.timeout)
	if err != nil {
		var timeoutErr *locking.ErrLockTimeout
		if errors.As(err, &timeoutErr) && j.notifier != nil {
			j.notifier.NotifyFailure(j.Name(), err)
		}
		return err
	}
	defer lock.Release()

	if _, err := j.engine.RunCycle(context.Background()); err != nil {
		if j.notifier != nil {
			j.notifier.NotifyFailure(j.Name(), err)
		}
		return err
	}

	return nil
}
