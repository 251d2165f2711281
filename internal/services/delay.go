package services

import (
	"context"
	"time"
)

// Sleeper stands in for backend latency. It returns once d has elapsed or
// ctx is done, whichever comes first. Callers complete their operation
// either way.
type Sleeper func(ctx context.Context, d time.Duration)

// RealSleep waits on a timer.
func RealSleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// NoSleep returns immediately. Tests use it to run suspending operations
// synchronously.
func NoSleep(context.Context, time.Duration) {}
