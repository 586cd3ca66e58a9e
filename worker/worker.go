package worker

import (
	"context"
	"time"
)

// Worker worker interface
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker runs a job on a fixed tick until the context is done.
type TickWorker struct {
	// Delay tick interval, default 10s
	Delay time.Duration
	// ErrDelay retry interval after a failed round, default 1s
	ErrDelay time.Duration
}

// StartTick start tick
func (w *TickWorker) StartTick(ctx context.Context, onWork func(ctx context.Context) error) error {
	dur := time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := onWork(ctx); err != nil {
				dur = w.errDelay()
			} else {
				dur = w.delay()
			}
		}
	}
}

func (w *TickWorker) delay() time.Duration {
	if w.Delay > 0 {
		return w.Delay
	}

	return 10 * time.Second
}

func (w *TickWorker) errDelay() time.Duration {
	if w.ErrDelay > 0 {
		return w.ErrDelay
	}

	return time.Second
}
