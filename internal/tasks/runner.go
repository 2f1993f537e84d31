// Package tasks runs detached background work such as cart persistence and
// order notifications.
package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/metrics"
)

// Result delivers the outcome of a task exactly once and is then closed.
// Callers may wait on it or drop it; a failure nobody waits for is still
// logged and counted by the Runner.
type Result <-chan error

// Done returns a Result that has already completed without error.
func Done() Result {
	ch := make(chan error, 1)
	ch <- nil
	close(ch)

	return ch
}

// Wait blocks until the task finishes or ctx is done.
func (r Result) Wait(ctx context.Context) error {
	select {
	case err := <-r:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type Runner struct {
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewRunner(logger *slog.Logger, timeout time.Duration) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{logger: logger, timeout: timeout}
}

// Go starts fn in its own goroutine. The task context keeps the values of ctx
// but not its cancellation, so a finished request does not abort the write it
// triggered. A positive runner timeout bounds every task.
func (r *Runner) Go(ctx context.Context, name string, fn func(ctx context.Context) error) Result {
	out := make(chan error, 1)

	taskCtx := context.WithoutCancel(ctx)

	r.wg.Add(1)

	go func() {
		defer r.wg.Done()
		defer close(out)

		runCtx := taskCtx
		if r.timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(taskCtx, r.timeout)
			defer cancel()
		}

		start := time.Now()
		err := fn(runCtx)

		if err != nil {
			metrics.BackgroundTaskFailures.WithLabelValues(name).Inc()
			r.logger.Error("❌ Background task failed",
				slog.String("task", name),
				slog.Duration("duration", time.Since(start)),
				slog.String("error", err.Error()),
			)
		}

		out <- err
	}()

	return out
}

// Wait blocks until every started task has returned or ctx is done.
func (r *Runner) Wait(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
