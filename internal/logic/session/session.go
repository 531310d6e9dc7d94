package session

import (
	"context"
	"time"

	"github.com/mlefebvre/SpinGo/internal/debug"
	"github.com/mlefebvre/SpinGo/internal/logic/spin"
	"github.com/mlefebvre/SpinGo/internal/provider"
)

// Session contains the high-level spin scenarios: a rigged spin to a
// known slice, or the full continuous-spin-while-awaiting-backend run.
// It sits between the CLI and the controller, the way a game screen
// would drive the wheel.
type Session struct {
	ctrl     *spin.Controller
	provider provider.Provider
}

func NewSession(ctrl *spin.Controller, p provider.Provider) *Session {
	return &Session{
		ctrl:     ctrl,
		provider: p,
	}
}

// FixedSpinParams defines the parameters of a direct spin.
type FixedSpinParams struct {
	Index         int           // target slice
	FullRotations int           // 0 = controller default
	Duration      time.Duration // 0 = controller default
}

// RunFixedSpin spins straight to a known slice and waits for landing.
func (s *Session) RunFixedSpin(ctx context.Context, p FixedSpinParams) error {
	debug.Section("Fixed Spin")
	debug.Live("Spinning to slice %d", p.Index)

	if err := s.ctrl.SpinToIndex(ctx, p.Index, p.FullRotations, p.Duration); err != nil {
		return err
	}
	debug.Live("Fixed spin complete, landed on slice %d", s.ctrl.CurrentIndex())
	return nil
}

// RunBackendSpin asks the result provider for the winning slice and
// spins straight to it, with no continuous phase. Returns the winning
// index.
func (s *Session) RunBackendSpin(ctx context.Context, fullRotations int, duration time.Duration) (int, error) {
	debug.Section("Backend Spin")
	debug.Live("Awaiting result")

	index, err := s.provider.Result(ctx)
	if err != nil {
		return 0, err
	}
	debug.Live("Result received: slice %d", index)

	if err := s.ctrl.SpinToResult(ctx, index, fullRotations, duration); err != nil {
		return 0, err
	}
	debug.Live("Backend spin complete, landed on slice %d", s.ctrl.CurrentIndex())
	return index, nil
}

// ContinuousSpinParams defines the parameters of a provider-driven run.
type ContinuousSpinParams struct {
	Rate         float64       // rotations per second, 0 = controller default
	Deceleration time.Duration // landing tween length, 0 = controller default
}

// RunContinuousSpin performs the full scenario: start a continuous
// rotation, await the result provider, then decelerate onto the
// returned slice. Returns the winning index.
//
// A provider failure stops the wheel and propagates the error
// unmodified; the controller performs no retry.
func (s *Session) RunContinuousSpin(ctx context.Context, p ContinuousSpinParams) (int, error) {
	debug.Section("Continuous Spin")
	debug.Live("Starting continuous rotation, awaiting result")

	s.ctrl.StartContinuousRotation(p.Rate)

	index, err := s.provider.Result(ctx)
	if err != nil {
		s.ctrl.Stop()
		return 0, err
	}
	debug.Live("Result received: slice %d, decelerating", index)

	select {
	case <-ctx.Done():
		s.ctrl.Stop()
		return 0, ctx.Err()
	default:
	}

	if err := s.ctrl.StopContinuousRotationAt(ctx, index, p.Deceleration); err != nil {
		return 0, err
	}
	debug.Live("Continuous spin complete, landed on slice %d", s.ctrl.CurrentIndex())
	return index, nil
}
