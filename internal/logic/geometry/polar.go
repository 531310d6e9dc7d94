package geometry

import "math"

// PolarToCartesian converts a (radius, angle) pair to x/y coordinates.
// Used for tap hit-testing and for placing slice content.
func PolarToCartesian(radius, angle float64) (x, y float64) {
	return radius * math.Cos(angle), radius * math.Sin(angle)
}

// CartesianToPolar converts x/y coordinates to a (radius, angle) pair.
// The returned angle is normalized to [0, 2*pi).
func CartesianToPolar(x, y float64) (radius, angle float64) {
	return math.Hypot(x, y), NormalizeAngle(math.Atan2(y, x))
}

// ChordLength returns the length of the chord subtended by angle at the
// given radius.
// Formula: chord = 2 * r * sin(angle / 2)
func ChordLength(radius, angle float64) float64 {
	return 2 * radius * math.Sin(angle/2)
}

// AvailableWidth returns the width available for horizontal content
// inside one slice of an n-slice wheel, measured at the given radial
// distance, with margin subtracted on each side. Never negative.
func AvailableWidth(radius float64, n int, margin float64) float64 {
	w := ChordLength(radius, RadiansPerSlice(n)) - 2*margin
	if w < 0 {
		return 0
	}
	return w
}
