package alert

import (
	"context"
	"time"
)

// Clock abstracts time so the throttle can be tested without wall-clock
// delays.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock returns a Clock backed by the time package.
func RealClock() Clock { return realClock{} }

// Throttle enforces a fixed pause between upstream calls. The pause is a
// correctness requirement against provider rate limits, not an optimization.
type Throttle struct {
	interval time.Duration
	clock    Clock
}

// NewThrottle creates a throttle with the given interval. A nil clock uses
// real time.
func NewThrottle(interval time.Duration, clock Clock) *Throttle {
	if clock == nil {
		clock = realClock{}
	}
	return &Throttle{interval: interval, clock: clock}
}

// Wait blocks for the throttle interval or until the context is cancelled,
// whichever comes first.
func (t *Throttle) Wait(ctx context.Context) error {
	if t.interval <= 0 {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.clock.After(t.interval):
		return nil
	}
}
