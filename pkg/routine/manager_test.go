package routine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"user-gate/pkg/logger"
)

func TestNewManagerDefaultMax(t *testing.T) {
	mgr := NewManager(0, logger.NewNop())
	if got := cap(mgr.sema); got != DefaultMaxGoroutine {
		t.Fatalf("expected cap %d, got %d", DefaultMaxGoroutine, got)
	}
}

func TestManagerCollectsErrors(t *testing.T) {
	mgr := NewManager(2, logger.NewNop())
	errOne := errors.New("one")
	errTwo := errors.New("two")

	mgr.Go(context.Background(), func(ctx context.Context) error {
		return errOne
	})
	mgr.Go(context.Background(), func(ctx context.Context) error {
		return errTwo
	})

	joined := mgr.Wait()
	if !errors.Is(joined, errOne) || !errors.Is(joined, errTwo) {
		t.Fatalf("expected both errors, got %v", joined)
	}
	if err := mgr.Wait(); err != nil {
		t.Fatalf("expected errors to be cleared after Wait, got %v", err)
	}
}

func TestManagerRecoversPanics(t *testing.T) {
	mgr := NewManager(1, logger.NewNop())
	mgr.Go(context.Background(), func(ctx context.Context) error {
		panic("boom")
	})

	if err := mgr.Wait(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestManagerQueuesWhenFull(t *testing.T) {
	mgr := NewManager(2, logger.NewNop())
	release := make(chan struct{})

	var mu sync.Mutex
	running, peak, done := 0, 0, 0
	task := func(ctx context.Context) error {
		mu.Lock()
		running++
		if running > peak {
			peak = running
		}
		mu.Unlock()

		<-release

		mu.Lock()
		running--
		done++
		mu.Unlock()
		return nil
	}

	for i := 0; i < 5; i++ {
		if !mgr.Go(context.Background(), task) {
			t.Fatalf("task %d should be accepted while the slots are busy", i)
		}
	}

	close(release)
	if err := mgr.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done != 5 {
		t.Fatalf("expected all 5 tasks to run, got %d", done)
	}
	if peak > 2 {
		t.Fatalf("expected at most 2 concurrent tasks, got %d", peak)
	}
}

func TestManagerSkipsCanceledContext(t *testing.T) {
	mgr := NewManager(1, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	if mgr.Go(ctx, func(ctx context.Context) error { ran = true; return nil }) {
		t.Fatalf("expected task to be rejected")
	}
	_ = mgr.Wait()
	if ran {
		t.Fatalf("task must not run")
	}
}
