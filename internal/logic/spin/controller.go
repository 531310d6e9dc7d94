package spin

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/mlefebvre/SpinGo/internal/debug"
	"github.com/mlefebvre/SpinGo/internal/host"
	"github.com/mlefebvre/SpinGo/internal/logic/geometry"
)

// Default animation parameters, applied when the config leaves them zero.
const (
	DefaultRotateDuration = 300 * time.Millisecond
	DefaultSpinDuration   = 5 * time.Second
	DefaultFullRotations  = 5
	DefaultDeceleration   = 3 * time.Second
	DefaultContinuousRate = 1.0 // rotations per second
	DefaultWindow         = 0.05
)

// Deceleration after a continuous rotation always performs two extra
// full turns before landing.
const decelerationRotations = 2

// Config describes a controller's wheel geometry, animation defaults and
// optional collision detection.
type Config struct {
	SliceCount      int
	StartPosition   geometry.StartPosition
	InitialRotation float64

	RotateDuration time.Duration // short reposition tweens
	SpinDuration   time.Duration // full spins
	FullRotations  int           // extra turns for a spin
	Deceleration   time.Duration // landing tween after continuous rotation
	ContinuousRate float64       // rotations per second

	// Collision detection is enabled per kind only when the flag is set
	// and the matching callback is non-nil.
	DetectEdges   bool
	DetectCenters bool
	EdgeWindow    float64 // fraction of a slice, default 0.05
	CenterWindow  float64 // fraction of a slice around the center, default 0.05
	OnEdge        CollisionFunc
	OnCenter      CollisionFunc
}

type mode int

const (
	modeIdle mode = iota
	modeAnimating
	modeContinuous
)

// animation is the single in-flight tween. Present only while animating;
// nil when idle.
type animation struct {
	start     float64
	end       float64
	duration  time.Duration
	startedAt time.Time
	easing    Easing
	loop      bool          // continuous rotation re-arms instead of completing
	done      chan struct{} // closed on completion or abort
}

// Controller owns the wheel's rotation state and drives it over time.
// All state mutation happens under a single lock; Tick is the only
// writer while an animation is in flight, invoked by the host's
// scheduler. Public operations install or halt animations and may block
// until the tween completes.
type Controller struct {
	cfg   Config
	clock host.Clock

	mu       sync.Mutex
	mode     mode
	rotation float64
	spinning bool
	anim     *animation
	edges    *detector
	centers  *detector
}

// NewController validates the config, applies defaults and creates an
// idle controller at the configured initial rotation.
func NewController(cfg Config, clock host.Clock) (*Controller, error) {
	if cfg.SliceCount < 1 {
		return nil, &RangeError{Index: 0, SliceCount: cfg.SliceCount}
	}
	if cfg.RotateDuration <= 0 {
		cfg.RotateDuration = DefaultRotateDuration
	}
	if cfg.SpinDuration <= 0 {
		cfg.SpinDuration = DefaultSpinDuration
	}
	if cfg.FullRotations <= 0 {
		cfg.FullRotations = DefaultFullRotations
	}
	if cfg.Deceleration <= 0 {
		cfg.Deceleration = DefaultDeceleration
	}
	if cfg.ContinuousRate <= 0 {
		cfg.ContinuousRate = DefaultContinuousRate
	}
	if cfg.EdgeWindow <= 0 || cfg.EdgeWindow >= 0.5 {
		cfg.EdgeWindow = DefaultWindow
	}
	if cfg.CenterWindow <= 0 || cfg.CenterWindow >= 0.5 {
		cfg.CenterWindow = DefaultWindow
	}
	return &Controller{
		cfg:      cfg,
		clock:    clock,
		rotation: cfg.InitialRotation,
		edges:    newDetector(EdgeCollision, cfg.EdgeWindow),
		centers:  newDetector(CenterCollision, cfg.CenterWindow),
	}, nil
}

// CurrentRotation returns the wheel's rotation in radians. The value is
// unbounded; it is wrapped only when mapped to an index.
func (c *Controller) CurrentRotation() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

// CurrentIndex returns the slice index currently under the pointer.
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return geometry.IndexAtRotation(c.rotation, c.cfg.SliceCount, c.cfg.StartPosition)
}

// IsSpinning reports whether a spin or continuous rotation is active.
// Short reposition tweens do not count as spinning.
func (c *Controller) IsSpinning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spinning
}

// SliceCount returns the configured number of slices.
func (c *Controller) SliceCount() int {
	return c.cfg.SliceCount
}

// RotateTo tweens the wheel to an absolute rotation angle. Fire and
// forget; no collision tracking. Dropped silently while spinning.
// A zero duration uses the configured default.
func (c *Controller) RotateTo(angle float64, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.spinning {
		return
	}
	if duration <= 0 {
		duration = c.cfg.RotateDuration
	}
	c.installLocked(&animation{
		start:    c.rotation,
		end:      angle,
		duration: duration,
		easing:   EaseInOutQuad,
	})
}

// RotateToIndex tweens the wheel the shortest way so that the given
// slice sits under the pointer. Returns a *RangeError for an index
// outside [0, SliceCount). Dropped silently while spinning.
func (c *Controller) RotateToIndex(index int, duration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if c.spinning {
		return nil
	}
	if duration <= 0 {
		duration = c.cfg.RotateDuration
	}
	target := geometry.RotationForIndex(index, c.cfg.SliceCount, c.cfg.StartPosition)
	end := c.rotation + geometry.AngularDistance(c.rotation, target)
	c.installLocked(&animation{
		start:    c.rotation,
		end:      end,
		duration: duration,
		easing:   EaseInOutQuad,
	})
	return nil
}

// SpinToIndex spins the wheel through fullRotations extra turns and
// lands with the given slice under the pointer. It blocks until the
// animation completes, is halted by Stop (which counts as completion at
// the frozen angle), or ctx is done.
//
// Zero fullRotations or duration use the configured defaults. While a
// spin is already active the request is dropped, not queued: overlapping
// spin requests are a silent no-op.
func (c *Controller) SpinToIndex(ctx context.Context, index, fullRotations int, duration time.Duration) error {
	c.mu.Lock()
	if err := c.checkIndex(index); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.spinning {
		c.mu.Unlock()
		return nil
	}
	if fullRotations <= 0 {
		fullRotations = c.cfg.FullRotations
	}
	if duration <= 0 {
		duration = c.cfg.SpinDuration
	}
	done := c.startSpinLocked(index, fullRotations, duration)
	c.mu.Unlock()

	return c.await(ctx, done)
}

// SpinToResult spins to an index obtained from an external result
// provider. It exists to document intent at call sites; behavior is
// exactly SpinToIndex.
func (c *Controller) SpinToResult(ctx context.Context, index, fullRotations int, duration time.Duration) error {
	return c.SpinToIndex(ctx, index, fullRotations, duration)
}

// StartContinuousRotation starts an unbounded rotation at the given rate
// in rotations per second (configured default if <= 0), used while
// awaiting an external result. Dropped silently while already spinning.
func (c *Controller) StartContinuousRotation(rps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.spinning {
		return
	}
	if rps <= 0 {
		rps = c.cfg.ContinuousRate
	}
	period := time.Duration(float64(time.Second) / rps)
	c.resetDetectorsLocked()
	c.spinning = true
	c.mode = modeContinuous
	c.installLocked(&animation{
		start:    c.rotation,
		end:      c.rotation - 2*math.Pi,
		duration: period,
		easing:   Linear,
		loop:     true,
	})
	debug.Live("Continuous rotation started (%.2f rps)", rps)
}

// StopContinuousRotation halts a continuous rotation immediately and
// returns to idle, leaving the rotation at the last ticked value.
// No-op in any other state.
func (c *Controller) StopContinuousRotation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != modeContinuous {
		return
	}
	c.haltLocked()
	debug.Live("Continuous rotation stopped at %.4f rad", c.rotation)
}

// StopContinuousRotationAt halts a continuous rotation and decelerates
// onto the given slice, starting from the current instantaneous angle
// (not the running tween's endpoint). A zero duration uses the
// configured deceleration. It blocks until the wheel has landed. If the
// wheel is not in continuous rotation the call returns immediately:
// already idle counts as stopped, and an in-flight landing spin must
// not be replaced.
func (c *Controller) StopContinuousRotationAt(ctx context.Context, index int, duration time.Duration) error {
	c.mu.Lock()
	if err := c.checkIndex(index); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.mode != modeContinuous {
		c.mu.Unlock()
		return nil
	}
	if duration <= 0 {
		duration = c.cfg.Deceleration
	}
	// Abandon the repeating tween; its waiters (none in practice)
	// resolve at the current angle.
	if c.anim != nil {
		close(c.anim.done)
		c.anim = nil
	}
	done := c.startSpinLocked(index, decelerationRotations, duration)
	c.mu.Unlock()

	return c.await(ctx, done)
}

// Stop halts any animation immediately, from any state. The rotation is
// frozen at whatever value the last tick produced; there is no rollback.
// Blocked SpinToIndex / StopContinuousRotationAt callers are released
// successfully at the frozen angle.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.haltLocked()
}

// Tick advances the active animation to the given time. Invoked once per
// frame by the host's scheduler; a no-op when idle. Collision callbacks
// fire after the lock is released.
func (c *Controller) Tick(now time.Time) {
	c.mu.Lock()
	a := c.anim
	if a == nil {
		c.mu.Unlock()
		return
	}

	t := now.Sub(a.startedAt).Seconds() / a.duration.Seconds()
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	c.rotation = lerp(a.start, a.end, a.easing(t))
	debug.Tick(t, c.rotation)

	var fired []CollisionEvent
	if c.spinning {
		fired = c.detectLocked(t)
	}

	if t >= 1 {
		if a.loop {
			// Re-arm the repeating tween for the next full turn.
			a.start = a.end
			a.end = a.start - 2*math.Pi
			a.startedAt = now
		} else {
			c.anim = nil
			c.mode = modeIdle
			c.spinning = false
			close(a.done)
			debug.Landed(geometry.IndexAtRotation(c.rotation, c.cfg.SliceCount, c.cfg.StartPosition), c.rotation)
		}
	}
	onEdge, onCenter := c.cfg.OnEdge, c.cfg.OnCenter
	c.mu.Unlock()

	for _, evt := range fired {
		debug.Collision(evt.Kind.String(), evt.Index)
		switch evt.Kind {
		case CenterCollision:
			if onCenter != nil {
				onCenter(evt)
			}
		default:
			if onEdge != nil {
				onEdge(evt)
			}
		}
	}
}

// --- internals ---

// startSpinLocked installs a spin animation targeting the given index.
// The final rotation preserves the reference formula
//
//	final = current - fullRotations*2*pi + (rotationForIndex(i) - current)
//
// verbatim; do not simplify it, the sign convention is load-bearing.
// The current rotation is first rebased to its equivalent angle in
// (-2*pi, 0] so that the spin always runs forward regardless of how many
// turns have accumulated.
func (c *Controller) startSpinLocked(index, fullRotations int, duration time.Duration) chan struct{} {
	normalized := geometry.NormalizeAngle(c.rotation)
	if normalized > 0 {
		normalized -= 2 * math.Pi
	}
	c.rotation = normalized

	current := c.rotation
	target := geometry.RotationForIndex(index, c.cfg.SliceCount, c.cfg.StartPosition)
	final := current - float64(fullRotations)*2*math.Pi + (target - current)

	c.resetDetectorsLocked()
	c.spinning = true
	c.mode = modeAnimating
	a := &animation{
		start:    current,
		end:      final,
		duration: duration,
		easing:   EaseOutCubic,
	}
	c.installLocked(a)
	debug.Spin(index, fullRotations, final)
	return a.done
}

// installLocked replaces the active animation. A replaced animation is
// treated as aborted-complete: its waiters are released.
func (c *Controller) installLocked(a *animation) {
	if c.anim != nil {
		close(c.anim.done)
	}
	a.startedAt = c.clock.Now()
	a.done = make(chan struct{})
	c.anim = a
	if c.mode == modeIdle {
		c.mode = modeAnimating
	}
}

// haltLocked stops any animation and returns to idle. Waiters are
// released; the rotation keeps its last ticked value.
func (c *Controller) haltLocked() {
	if c.anim != nil {
		close(c.anim.done)
		c.anim = nil
	}
	c.mode = modeIdle
	c.spinning = false
	c.resetDetectorsLocked()
}

func (c *Controller) detectLocked(t float64) []CollisionEvent {
	hasProgress := c.mode != modeContinuous
	var fired []CollisionEvent
	if c.cfg.DetectEdges && c.cfg.OnEdge != nil {
		if evt, ok := c.edges.check(c.rotation, c.cfg.SliceCount, c.cfg.StartPosition, t, hasProgress); ok {
			fired = append(fired, evt)
		}
	}
	if c.cfg.DetectCenters && c.cfg.OnCenter != nil {
		if evt, ok := c.centers.check(c.rotation, c.cfg.SliceCount, c.cfg.StartPosition, t, hasProgress); ok {
			fired = append(fired, evt)
		}
	}
	return fired
}

func (c *Controller) resetDetectorsLocked() {
	c.edges.reset()
	c.centers.reset()
}

func (c *Controller) checkIndex(index int) error {
	if index < 0 || index >= c.cfg.SliceCount {
		return &RangeError{Index: index, SliceCount: c.cfg.SliceCount}
	}
	return nil
}

// await blocks until the animation's done channel closes (natural
// completion or abort, both successful) or the context is canceled.
func (c *Controller) await(ctx context.Context, done chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
