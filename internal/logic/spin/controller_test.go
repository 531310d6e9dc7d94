package spin

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mlefebvre/SpinGo/internal/host"
	"github.com/mlefebvre/SpinGo/internal/logic/geometry"
)

const epsilon = 1e-9

func newTestController(t *testing.T, mutate func(*Config)) (*Controller, *host.ManualClock) {
	t.Helper()
	cfg := Config{
		SliceCount:     8,
		StartPosition:  geometry.Top,
		RotateDuration: 100 * time.Millisecond,
		SpinDuration:   time.Second,
		FullRotations:  3,
		Deceleration:   time.Second,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	clock := host.NewManualClock(time.Unix(0, 0))
	ctrl, err := NewController(cfg, clock)
	if err != nil {
		t.Fatal(err)
	}
	return ctrl, clock
}

// tick advances the clock by dt and runs one controller tick.
func tick(ctrl *Controller, clock *host.ManualClock, dt time.Duration) {
	ctrl.Tick(clock.Advance(dt))
}

// waitSpinning polls until the controller reports the wanted spinning
// state, giving a concurrent operation time to install its animation.
func waitSpinning(t *testing.T, ctrl *Controller, want bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for ctrl.IsSpinning() != want {
		if time.Now().After(deadline) {
			t.Fatalf("controller never reached IsSpinning=%v", want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestNewController_InvalidSliceCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := NewController(Config{SliceCount: n}, host.NewManualClock(time.Unix(0, 0)))
		if err == nil {
			t.Errorf("SliceCount=%d: expected error, got nil", n)
		}
	}
}

func TestSpinToIndex_RangeError(t *testing.T) {
	ctrl, _ := newTestController(t, nil)
	for _, index := range []int{-1, 8, 100} {
		err := ctrl.SpinToIndex(context.Background(), index, 0, 0)
		var rangeErr *RangeError
		if !errors.As(err, &rangeErr) {
			t.Errorf("SpinToIndex(%d): expected *RangeError, got %v", index, err)
		}
		if ctrl.IsSpinning() {
			t.Errorf("SpinToIndex(%d): IsSpinning flipped on range error", index)
		}
	}
}

func TestRotateToIndex_RangeError(t *testing.T) {
	ctrl, _ := newTestController(t, nil)
	var rangeErr *RangeError
	if err := ctrl.RotateToIndex(8, 0); !errors.As(err, &rangeErr) {
		t.Errorf("expected *RangeError, got %v", err)
	}
}

func TestSpinToIndex_LandsOnTarget(t *testing.T) {
	ctrl, clock := newTestController(t, nil)

	errCh := make(chan error, 1)
	go func() {
		errCh <- ctrl.SpinToIndex(context.Background(), 5, 3, 0)
	}()
	waitSpinning(t, ctrl, true)

	for i := 0; i < 30 && ctrl.IsSpinning(); i++ {
		tick(ctrl, clock, 50*time.Millisecond)
	}

	if err := <-errCh; err != nil {
		t.Fatalf("SpinToIndex: %v", err)
	}
	if ctrl.IsSpinning() {
		t.Error("IsSpinning still true after completion")
	}
	if got := ctrl.CurrentIndex(); got != 5 {
		t.Errorf("CurrentIndex = %d, want 5", got)
	}

	// From rotation 0: final = 0 - 3*2*pi + (rotationForIndex(5) - 0).
	want := -3*2*math.Pi + geometry.RotationForIndex(5, 8, geometry.Top)
	if got := ctrl.CurrentRotation(); math.Abs(got-want) > epsilon {
		t.Errorf("final rotation = %v, want %v", got, want)
	}
}

func TestSpinToIndex_DroppedWhileSpinning(t *testing.T) {
	ctrl, clock := newTestController(t, nil)
	ctrl.StartContinuousRotation(1)
	if !ctrl.IsSpinning() {
		t.Fatal("StartContinuousRotation did not set IsSpinning")
	}

	// The overlapping request must return immediately with nil and must
	// not replace the in-flight animation.
	if err := ctrl.SpinToIndex(context.Background(), 3, 0, 0); err != nil {
		t.Fatalf("overlapping SpinToIndex: %v", err)
	}
	tick(ctrl, clock, 250*time.Millisecond)
	if !ctrl.IsSpinning() {
		t.Error("continuous rotation was interrupted by a dropped request")
	}
	// A quarter of a one-second turn: rotation moved by -pi/2.
	if got := ctrl.CurrentRotation(); math.Abs(got-(-math.Pi/2)) > epsilon {
		t.Errorf("rotation = %v, want %v", got, -math.Pi/2)
	}
}

func TestStartContinuousRotation_ConstantRate(t *testing.T) {
	ctrl, clock := newTestController(t, nil)
	ctrl.StartContinuousRotation(2) // half-second period

	// Linear easing: equal steps produce equal rotation deltas, across
	// the tween re-arm boundary too.
	prev := ctrl.CurrentRotation()
	for i := 0; i < 8; i++ {
		tick(ctrl, clock, 125*time.Millisecond)
		got := ctrl.CurrentRotation()
		if delta := got - prev; math.Abs(delta-(-math.Pi/2)) > epsilon {
			t.Fatalf("step %d: delta = %v, want %v", i, delta, -math.Pi/2)
		}
		prev = got
	}
}

func TestStopContinuousRotation_Immediate(t *testing.T) {
	ctrl, clock := newTestController(t, nil)
	ctrl.StartContinuousRotation(1)
	tick(ctrl, clock, 330*time.Millisecond)
	frozen := ctrl.CurrentRotation()

	ctrl.StopContinuousRotation()
	if ctrl.IsSpinning() {
		t.Error("IsSpinning still true after stop")
	}
	if got := ctrl.CurrentRotation(); got != frozen {
		t.Errorf("rotation moved on stop: %v != %v", got, frozen)
	}
	// Ticking while idle must not move the wheel.
	tick(ctrl, clock, 100*time.Millisecond)
	if got := ctrl.CurrentRotation(); got != frozen {
		t.Errorf("rotation moved while idle: %v != %v", got, frozen)
	}
}

func TestStopContinuousRotationAt_LandsOnIndex(t *testing.T) {
	// The landing index must hold regardless of the angle at which the
	// continuous rotation is interrupted.
	interrupts := []time.Duration{
		70 * time.Millisecond,
		330 * time.Millisecond,
		710 * time.Millisecond,
		1460 * time.Millisecond,
	}
	for _, interrupt := range interrupts {
		ctrl, clock := newTestController(t, nil)
		ctrl.StartContinuousRotation(1)
		tick(ctrl, clock, interrupt)

		errCh := make(chan error, 1)
		go func() {
			errCh <- ctrl.StopContinuousRotationAt(context.Background(), 2, 0)
		}()

		// Drive ticks until the deceleration tween lands. The wheel
		// stays spinning through the whole transition.
		deadline := time.Now().Add(5 * time.Second)
		for ctrl.IsSpinning() {
			tick(ctrl, clock, 25*time.Millisecond)
			time.Sleep(time.Millisecond)
			if time.Now().After(deadline) {
				t.Fatalf("interrupt %v: deceleration never completed", interrupt)
			}
		}

		if err := <-errCh; err != nil {
			t.Fatalf("interrupt %v: %v", interrupt, err)
		}
		if got := ctrl.CurrentIndex(); got != 2 {
			t.Errorf("interrupt %v: CurrentIndex = %d, want 2", interrupt, got)
		}
	}
}

func TestStopContinuousRotationAt_NotContinuous(t *testing.T) {
	ctrl, _ := newTestController(t, nil)
	// Already idle: counts as stopped, resolves immediately.
	if err := ctrl.StopContinuousRotationAt(context.Background(), 2, 0); err != nil {
		t.Errorf("idle: %v", err)
	}
	// Range check still applies before the state check result.
	var rangeErr *RangeError
	if err := ctrl.StopContinuousRotationAt(context.Background(), 8, 0); !errors.As(err, &rangeErr) {
		t.Errorf("expected *RangeError, got %v", err)
	}
}

func TestStop_ReleasesWaiter(t *testing.T) {
	ctrl, clock := newTestController(t, nil)

	errCh := make(chan error, 1)
	go func() {
		errCh <- ctrl.SpinToIndex(context.Background(), 5, 0, 0)
	}()
	waitSpinning(t, ctrl, true)
	tick(ctrl, clock, 100*time.Millisecond)
	frozen := ctrl.CurrentRotation()

	ctrl.Stop()

	select {
	case err := <-errCh:
		// Abort resolves as successful completion at the frozen angle.
		if err != nil {
			t.Errorf("aborted spin returned %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("SpinToIndex still blocked after Stop")
	}
	if ctrl.IsSpinning() {
		t.Error("IsSpinning still true after Stop")
	}
	if got := ctrl.CurrentRotation(); got != frozen {
		t.Errorf("rotation = %v, want frozen value %v", got, frozen)
	}
}

func TestSpinToIndex_ContextCanceled(t *testing.T) {
	ctrl, _ := newTestController(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- ctrl.SpinToIndex(ctx, 1, 0, 0)
	}()
	waitSpinning(t, ctrl, true)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("SpinToIndex still blocked after cancel")
	}
}

func TestRotateToIndex_TweenCompletes(t *testing.T) {
	ctrl, clock := newTestController(t, nil)

	if err := ctrl.RotateToIndex(3, 0); err != nil {
		t.Fatal(err)
	}
	// Short reposition tweens do not count as spinning.
	if ctrl.IsSpinning() {
		t.Error("RotateToIndex set IsSpinning")
	}
	for i := 0; i < 10; i++ {
		tick(ctrl, clock, 20*time.Millisecond)
	}
	if got := ctrl.CurrentIndex(); got != 3 {
		t.Errorf("CurrentIndex = %d, want 3", got)
	}
}

func TestRotateTo_ReplacesActiveTween(t *testing.T) {
	ctrl, clock := newTestController(t, nil)

	ctrl.RotateTo(1.0, 100*time.Millisecond)
	tick(ctrl, clock, 30*time.Millisecond)
	ctrl.RotateTo(2.0, 100*time.Millisecond)
	for i := 0; i < 10; i++ {
		tick(ctrl, clock, 20*time.Millisecond)
	}
	if got := ctrl.CurrentRotation(); math.Abs(got-2.0) > epsilon {
		t.Errorf("rotation = %v, want 2.0 (second tween must win)", got)
	}
}

func TestSpinToResult_ForwardsToSpinToIndex(t *testing.T) {
	ctrl, clock := newTestController(t, nil)

	errCh := make(chan error, 1)
	go func() {
		errCh <- ctrl.SpinToResult(context.Background(), 4, 2, 0)
	}()
	waitSpinning(t, ctrl, true)
	for i := 0; i < 30 && ctrl.IsSpinning(); i++ {
		tick(ctrl, clock, 50*time.Millisecond)
	}
	if err := <-errCh; err != nil {
		t.Fatal(err)
	}
	if got := ctrl.CurrentIndex(); got != 4 {
		t.Errorf("CurrentIndex = %d, want 4", got)
	}
}

func TestTick_MonotonicDuringSpin(t *testing.T) {
	ctrl, clock := newTestController(t, nil)

	go func() { _ = ctrl.SpinToIndex(context.Background(), 0, 2, 0) }()
	waitSpinning(t, ctrl, true)

	prev := ctrl.CurrentRotation()
	for i := 0; i < 25 && ctrl.IsSpinning(); i++ {
		tick(ctrl, clock, 40*time.Millisecond)
		got := ctrl.CurrentRotation()
		if got > prev+epsilon {
			t.Fatalf("rotation increased mid-spin: %v -> %v", prev, got)
		}
		prev = got
	}
}
