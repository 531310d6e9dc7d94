package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestParseStartPosition(t *testing.T) {
	cases := []struct {
		in      string
		want    StartPosition
		wantErr bool
	}{
		{"top", Top, false},
		{"right", Right, false},
		{"bottom", Bottom, false},
		{"left", Left, false},
		{"", Top, true},
		{"center", Top, true},
		{"TOP", Top, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseStartPosition(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got nil", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ParseStartPosition(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestStartPosition_Angle(t *testing.T) {
	cases := []struct {
		pos  StartPosition
		want float64
	}{
		{Top, 0},
		{Right, math.Pi / 2},
		{Bottom, math.Pi},
		{Left, 3 * math.Pi / 2},
	}
	for _, tc := range cases {
		t.Run(tc.pos.String(), func(t *testing.T) {
			if got := tc.pos.Angle(); !almostEqual(got, tc.want) {
				t.Errorf("%v.Angle() = %v, want %v", tc.pos, got, tc.want)
			}
		})
	}
}

func TestDegreesPerSlice(t *testing.T) {
	cases := []struct {
		n    int
		want float64
	}{
		{1, 360},
		{2, 180},
		{4, 90},
		{8, 45},
		{12, 30},
		{360, 1},
	}
	for _, tc := range cases {
		if got := DegreesPerSlice(tc.n); !almostEqual(got, tc.want) {
			t.Errorf("DegreesPerSlice(%d) = %v, want %v", tc.n, got, tc.want)
		}
	}
}

func TestRadiansPerSlice(t *testing.T) {
	// 8 slices of 45 degrees each.
	if got := RadiansPerSlice(8); !almostEqual(got, 0.7853981634) {
		t.Errorf("RadiansPerSlice(8) = %v, want 0.7853981634", got)
	}
	if got := RadiansPerSlice(1); !almostEqual(got, 2*math.Pi) {
		t.Errorf("RadiansPerSlice(1) = %v, want 2*pi", got)
	}
}

func TestRotationForIndex_KnownValues(t *testing.T) {
	// 8 slices, pointer at top: slice 0 centers at -pi/8.
	if got := RotationForIndex(0, 8, Top); !almostEqual(got, -math.Pi/8) {
		t.Errorf("RotationForIndex(0, 8, Top) = %v, want %v", got, -math.Pi/8)
	}
	// Slice 5: -(5*pi/4 + pi/8) = -11*pi/8.
	if got := RotationForIndex(5, 8, Top); !almostEqual(got, -11*math.Pi/8) {
		t.Errorf("RotationForIndex(5, 8, Top) = %v, want %v", got, -11*math.Pi/8)
	}
	// Pointer offset shifts the result by the base angle.
	if got := RotationForIndex(0, 8, Right); !almostEqual(got, math.Pi/2-math.Pi/8) {
		t.Errorf("RotationForIndex(0, 8, Right) = %v, want %v", got, math.Pi/2-math.Pi/8)
	}
}

func TestIndexAtRotation_KnownValues(t *testing.T) {
	if got := IndexAtRotation(-math.Pi/8, 8, Top); got != 0 {
		t.Errorf("IndexAtRotation(-pi/8, 8, Top) = %d, want 0", got)
	}
	// Rotation 0 sits on the boundary between slice 0 and the last
	// slice; the lower index wins.
	if got := IndexAtRotation(0, 8, Top); got != 0 {
		t.Errorf("IndexAtRotation(0, 8, Top) = %d, want 0", got)
	}
}

func TestIndexAtRotation_RoundTrip(t *testing.T) {
	positions := []StartPosition{Top, Right, Bottom, Left}
	counts := []int{1, 2, 3, 5, 8, 12, 37}
	for _, pos := range positions {
		for _, n := range counts {
			for i := 0; i < n; i++ {
				rot := RotationForIndex(i, n, pos)
				if got := IndexAtRotation(rot, n, pos); got != i {
					t.Errorf("pos=%v n=%d: IndexAtRotation(RotationForIndex(%d)) = %d",
						pos, n, i, got)
				}
			}
		}
	}
}

func TestIndexAtRotation_UnboundedRotation(t *testing.T) {
	// The rotation value is not wrapped internally; the mapping must
	// still hold after many full turns in either direction.
	for _, turns := range []float64{-12, -3, 0, 3, 12} {
		rot := RotationForIndex(5, 8, Top) + turns*2*math.Pi
		if got := IndexAtRotation(rot, 8, Top); got != 5 {
			t.Errorf("turns=%v: index = %d, want 5", turns, got)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"pi", math.Pi, math.Pi},
		{"two_pi", 2 * math.Pi, 0},
		{"negative_pi", -math.Pi, math.Pi},
		{"large_positive", 7 * math.Pi, math.Pi},
		{"large_negative", -7 * math.Pi, math.Pi},
		{"small_negative", -math.Pi / 8, 2*math.Pi - math.Pi/8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeAngle(tc.in)
			if !almostEqual(got, tc.want) {
				t.Errorf("NormalizeAngle(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeAngle_Range(t *testing.T) {
	for a := -50.0; a < 50.0; a += 0.37 {
		got := NormalizeAngle(a)
		if got < 0 || got >= 2*math.Pi {
			t.Fatalf("NormalizeAngle(%v) = %v, outside [0, 2*pi)", a, got)
		}
		// Idempotent.
		if !almostEqual(NormalizeAngle(got), got) {
			t.Fatalf("NormalizeAngle not idempotent at %v", a)
		}
	}
}

func TestAngularDistance(t *testing.T) {
	cases := []struct {
		name     string
		from, to float64
		want     float64
	}{
		{"same", 1.0, 1.0, 0},
		{"quarter_forward", 0, math.Pi / 2, math.Pi / 2},
		{"quarter_backward", math.Pi / 2, 0, -math.Pi / 2},
		{"half_turn", 0, math.Pi, math.Pi},
		{"wrap_short_way", 0.1, 2*math.Pi - 0.1, -0.2},
		{"across_zero", 2*math.Pi - 0.1, 0.1, 0.2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AngularDistance(tc.from, tc.to)
			if !almostEqual(got, tc.want) {
				t.Errorf("AngularDistance(%v, %v) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestAngularDistance_Range(t *testing.T) {
	for from := -10.0; from < 10.0; from += 0.73 {
		for to := -10.0; to < 10.0; to += 0.91 {
			d := AngularDistance(from, to)
			if d <= -math.Pi || d > math.Pi {
				t.Fatalf("AngularDistance(%v, %v) = %v, outside (-pi, pi]", from, to, d)
			}
		}
	}
}

func TestSlicePosition(t *testing.T) {
	// 4 slices of pi/2 each.
	cases := []struct {
		name string
		rot  float64
		want float64
	}{
		{"slice_start", 0, 0},
		{"slice_center", math.Pi / 4, 0.5},
		{"slice_quarter", math.Pi / 8, 0.25},
		{"second_slice_center", math.Pi/2 + math.Pi/4, 0.5},
		{"negative_rotation", -math.Pi / 4, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SlicePosition(tc.rot, 4)
			if !almostEqual(got, tc.want) {
				t.Errorf("SlicePosition(%v, 4) = %v, want %v", tc.rot, got, tc.want)
			}
		})
	}
}
