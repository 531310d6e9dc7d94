package host

import (
	"sync"
	"time"

	"github.com/mlefebvre/SpinGo/internal/debug"
)

// Clock abstracts time for the animation engine. This allows plugging in
// the real system clock or a manual clock for development and testing.
type Clock interface {
	Now() time.Time
	// After returns a channel that delivers the clock time once the
	// given duration has elapsed on this clock.
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the production Clock backed by the time package.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// NewClock creates a clock based on the chosen mode.
// If manual is true, returns a ManualClock (for dev/test/offline render).
// If manual is false, returns the real SystemClock.
func NewClock(manual bool) Clock {
	if manual {
		debug.Info("Using MANUAL clock (offline mode)")
		return NewManualClock(time.Now())
	}
	return SystemClock{}
}

// TickerScheduler invokes a callback at a fixed interval on its own
// goroutine until stopped. It is the production driver for the
// controller's tick loop.
type TickerScheduler struct {
	interval time.Duration
	stop     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewTickerScheduler creates a scheduler firing every interval.
// If interval <= 0, defaults to 16ms (roughly 60 frames per second).
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &TickerScheduler{
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start launches the tick loop. fn is invoked with the current time on
// every tick until Stop is called.
func (s *TickerScheduler) Start(fn func(now time.Time)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				fn(now)
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the tick loop and waits for the goroutine to exit.
// Safe to call more than once.
func (s *TickerScheduler) Stop() {
	s.once.Do(func() { close(s.stop) })
	s.wg.Wait()
}
