package spin

import (
	"github.com/mlefebvre/SpinGo/internal/logic/geometry"
)

// CollisionKind identifies which part of a slice passed the pointer.
type CollisionKind int

const (
	EdgeCollision CollisionKind = iota
	CenterCollision
)

func (k CollisionKind) String() string {
	if k == CenterCollision {
		return "center"
	}
	return "edge"
}

// CollisionEvent describes a slice edge or center passing the pointer
// during a spin. Progress is the elapsed fraction of the active tween;
// HasProgress is false in continuous mode, where there is no bounded
// tween to measure against.
type CollisionEvent struct {
	Kind        CollisionKind
	Index       int
	Progress    float64
	HasProgress bool
}

// CollisionFunc receives collision events. Invoked outside the
// controller's lock, so it may safely call back into the controller.
type CollisionFunc func(CollisionEvent)

// detector fires at most once per slice per pass through its trigger
// window. The latch holds the indices currently inside the window; an
// index re-arms when the window is left.
type detector struct {
	kind    CollisionKind
	window  float64
	latched map[int]struct{}
}

func newDetector(kind CollisionKind, window float64) *detector {
	return &detector{
		kind:    kind,
		window:  window,
		latched: make(map[int]struct{}),
	}
}

// check inspects the current rotation and returns an event if the
// detector just entered its trigger window on a slice it had not
// latched yet.
func (d *detector) check(rotation float64, n int, pos geometry.StartPosition, progress float64, hasProgress bool) (CollisionEvent, bool) {
	index := geometry.IndexAtRotation(rotation, n, pos)
	p := geometry.SlicePosition(rotation, n)

	var inWindow bool
	switch d.kind {
	case CenterCollision:
		inWindow = p > 0.5-d.window && p < 0.5+d.window
	default:
		inWindow = p < d.window || p > 1-d.window
	}

	if !inWindow {
		delete(d.latched, index)
		return CollisionEvent{}, false
	}
	if _, seen := d.latched[index]; seen {
		return CollisionEvent{}, false
	}
	d.latched[index] = struct{}{}
	return CollisionEvent{
		Kind:        d.kind,
		Index:       index,
		Progress:    progress,
		HasProgress: hasProgress,
	}, true
}

// reset clears the latch. Called at the start of every spin and on stop.
func (d *detector) reset() {
	clear(d.latched)
}
