package provider

import (
	"context"
	"time"

	"github.com/mlefebvre/SpinGo/internal/debug"
	"github.com/mlefebvre/SpinGo/internal/host"
)

// Delayed wraps another provider and holds its result back for a fixed
// duration, simulating backend latency. The delay runs on the injected
// clock, so offline renders and tests stay deterministic.
type Delayed struct {
	inner Provider
	delay time.Duration
	clock host.Clock
}

// NewDelayed wraps inner with the given delay.
func NewDelayed(inner Provider, delay time.Duration, clock host.Clock) *Delayed {
	return &Delayed{inner: inner, delay: delay, clock: clock}
}

func (d *Delayed) Result(ctx context.Context) (int, error) {
	if d.delay > 0 {
		debug.Verbose("Provider: delaying result by %v", d.delay)
		select {
		case <-d.clock.After(d.delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return d.inner.Result(ctx)
}
