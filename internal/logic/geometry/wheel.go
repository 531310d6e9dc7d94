package geometry

import (
	"fmt"
	"math"
)

// StartPosition is the fixed pointer location against which the current
// slice is determined. It maps to a base angle on the wheel.
type StartPosition int

const (
	Top StartPosition = iota
	Right
	Bottom
	Left
)

// ParseStartPosition converts a config string ("top", "right", "bottom",
// "left") to a StartPosition.
func ParseStartPosition(s string) (StartPosition, error) {
	switch s {
	case "top":
		return Top, nil
	case "right":
		return Right, nil
	case "bottom":
		return Bottom, nil
	case "left":
		return Left, nil
	default:
		return Top, fmt.Errorf("unknown start position: %q", s)
	}
}

// Angle returns the base angle of the pointer position in radians.
func (p StartPosition) Angle() float64 {
	switch p {
	case Right:
		return math.Pi / 2
	case Bottom:
		return math.Pi
	case Left:
		return 3 * math.Pi / 2
	default:
		return 0
	}
}

func (p StartPosition) String() string {
	switch p {
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "top"
	}
}

// DegreesPerSlice returns the angular width of one slice in degrees.
// The caller must guarantee n >= 1.
func DegreesPerSlice(n int) float64 {
	return 360.0 / float64(n)
}

// RadiansPerSlice returns the angular width of one slice in radians.
// The caller must guarantee n >= 1.
func RadiansPerSlice(n int) float64 {
	return 2 * math.Pi / float64(n)
}

// RotationForIndex returns the rotation value that, when applied to the
// wheel, aligns the center of slice index with the pointer at pos.
// This is the single authoritative "angle that selects slice i"
// computation; every spin operation routes through it.
//
// Rotation decreases as the index grows: the wheel turns in the
// mathematically negative sense to bring higher indices under the
// pointer. Do not flip the sign here, it changes which physical
// direction is index-increasing.
func RotationForIndex(index, n int, pos StartPosition) float64 {
	slice := RadiansPerSlice(n)
	target := slice*float64(index) + slice/2
	return pos.Angle() - target
}

// IndexAtRotation is the inverse mapping: given the wheel's current
// rotation, it returns the slice index under the pointer at pos.
// The rotation may be any real value; it is wrapped to [0, 2*pi) first.
// An exact slice boundary resolves to the lower index (floor).
func IndexAtRotation(rotation float64, n int, pos StartPosition) int {
	normalized := NormalizeAngle(rotation)
	adjusted := NormalizeAngle(normalized - pos.Angle())
	slice := RadiansPerSlice(n)
	return int(math.Floor((2*math.Pi-adjusted)/slice)) % n
}

// SlicePosition returns where the pointer sits inside the current slice,
// as a fraction in [0, 1). 0 is the leading edge, 0.5 the center.
func SlicePosition(rotation float64, n int) float64 {
	slice := RadiansPerSlice(n)
	return math.Mod(NormalizeAngle(rotation), slice) / slice
}

// NormalizeAngle wraps an angle to [0, 2*pi). Idempotent.
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	// Rounding in the addition above can land exactly on 2*pi.
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// AngularDistance returns the shortest signed distance from one angle to
// another, in (-pi, pi].
func AngularDistance(from, to float64) float64 {
	d := math.Mod(to-from, 2*math.Pi)
	if d <= -math.Pi {
		d += 2 * math.Pi
	} else if d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}
