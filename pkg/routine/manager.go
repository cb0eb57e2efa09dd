// Package routine runs background work without blocking request handling.
//
// A Manager bounds the number of tasks running at once, queues the rest,
// recovers panics and keeps the most recent task errors for shutdown.
package routine

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"user-gate/pkg/logger"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 10

const maxKeptErrors = 100

// Manager runs functions in goroutines with a configurable concurrency limit.
type Manager struct {
	mu     sync.Mutex
	errs   []error
	wg     sync.WaitGroup
	sema   chan struct{}
	logger *logger.Logger
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int, l *logger.Logger) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}

	return &Manager{
		sema:   make(chan struct{}, maxGoroutine),
		logger: l,
	}
}

// Go schedules f and returns at once. When every slot is busy the task
// waits in its own goroutine for a free slot, so nothing is dropped. It
// reports false, and logs a warning, only when ctx is already done.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) bool {
	if err := ctx.Err(); err != nil {
		g.logger.Warnf("background task not started: %v", err)
		return false
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()

		g.sema <- struct{}{}
		defer func() {
			<-g.sema

			if rvr := recover(); rvr != nil {
				g.logger.Errorf("panic occurred in background task: %v\n%s", rvr, debug.Stack())
			}
		}()

		if err := f(ctx); err != nil {
			g.logger.Errorf("background task failed: %v", err)
			g.record(err)
		}
	}()

	return true
}

func (g *Manager) record(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.errs) == maxKeptErrors {
		g.errs = g.errs[1:]
	}
	g.errs = append(g.errs, err)
}

// Wait blocks until all scheduled goroutines finish and returns the errors
// collected since the previous Wait.
func (g *Manager) Wait() error {
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	err := errors.Join(g.errs...)
	g.errs = nil
	return err
}
