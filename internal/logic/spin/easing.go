package spin

import "math"

// Easing maps an elapsed fraction t in [0, 1] to an eased fraction.
// Implementations must map 0 to 0 and 1 to 1.
type Easing func(t float64) float64

// Linear applies no easing. Used for continuous rotation, which must run
// at a constant rate.
func Linear(t float64) float64 {
	return t
}

// EaseOutCubic starts fast and decelerates toward the end. This is the
// default curve for spins and for the deceleration after a continuous
// rotation.
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutQuad accelerates then decelerates. Used for the short
// reposition tweens (RotateTo, RotateToIndex).
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// lerp interpolates between a and b by the (already eased) fraction t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
