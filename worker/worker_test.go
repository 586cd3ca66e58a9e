package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickWorkerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	w := &TickWorker{Delay: time.Millisecond, ErrDelay: time.Millisecond}

	rounds := 0
	err := w.StartTick(ctx, func(ctx context.Context) error {
		rounds++
		if rounds >= 3 {
			cancel()
		}
		return nil
	})

	assert.Equal(t, context.Canceled, err)
	assert.GreaterOrEqual(t, rounds, 3)
}

func TestTickWorkerRetriesAfterError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	w := &TickWorker{Delay: time.Hour, ErrDelay: time.Millisecond}

	rounds := 0
	err := w.StartTick(ctx, func(ctx context.Context) error {
		rounds++
		if rounds >= 2 {
			cancel()
			return nil
		}
		// a failed round reschedules on the short error delay, not
		// the hour-long tick
		return errors.New("transient")
	})

	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, 2, rounds)
}
