package colour

import (
	"math"
	"testing"
)

func TestToLab(t *testing.T) {
	// Reference values from published sRGB (D65) -> CIELAB converters.
	tests := []struct {
		name  string
		color Color
		want  Lab
	}{
		{name: "white", color: RGB(255, 255, 255), want: Lab{L: 100, A: 0, B: 0}},
		{name: "black", color: RGB(0, 0, 0), want: Lab{L: 0, A: 0, B: 0}},
		{name: "red", color: RGB(255, 0, 0), want: Lab{L: 53.24, A: 80.09, B: 67.20}},
		{name: "palevioletred", color: RGB(123, 45, 78), want: Lab{L: 30.97, A: 37.32, B: -2.56}},
	}

	const tolerance = 0.05
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToLab(tt.color)
			if math.Abs(got.L-tt.want.L) > tolerance ||
				math.Abs(got.A-tt.want.A) > tolerance ||
				math.Abs(got.B-tt.want.B) > tolerance {
				t.Errorf("ToLab(%v) = %+v, want %+v (±%v)", tt.color, got, tt.want, tolerance)
			}
		})
	}
}

func TestToLabNeutralGreys(t *testing.T) {
	const tolerance = 1e-4
	for _, v := range []uint8{0, 1, 17, 64, 128, 200, 254, 255} {
		got := ToLab(RGB(v, v, v))
		if math.Abs(got.A) > tolerance || math.Abs(got.B) > tolerance {
			t.Errorf("ToLab(gray %d) = %+v, want a* = b* = 0", v, got)
		}
	}

	white := ToLab(RGB(255, 255, 255))
	if math.Abs(white.L-100) > tolerance {
		t.Errorf("ToLab(white).L = %v, want 100", white.L)
	}
}

func TestToLabIgnoresAlpha(t *testing.T) {
	c := Color{R: 12, G: 200, B: 99, A: 255}
	if ToLab(c) != ToLab(c.WithAlpha(0)) {
		t.Errorf("ToLab() differs with alpha: %+v vs %+v", ToLab(c), ToLab(c.WithAlpha(0)))
	}
}

func TestToLabLightnessMonotonicOnGrays(t *testing.T) {
	prev := -1.0
	for v := 0; v <= 255; v++ {
		l := ToLab(RGB(uint8(v), uint8(v), uint8(v))).L
		if l <= prev {
			t.Fatalf("L* not increasing at gray %d: %v <= %v", v, l, prev)
		}
		prev = l
	}
}

func TestLabDistance(t *testing.T) {
	a := Lab{L: 50, A: 3, B: -4}
	b := Lab{L: 50, A: 0, B: 0}

	if got := LabDistance(a, b); got != 5 {
		t.Errorf("LabDistance() = %v, want 5", got)
	}
	if LabDistance(a, b) != LabDistance(b, a) {
		t.Error("LabDistance() is not symmetric")
	}
	if got := LabDistance(a, a); got != 0 {
		t.Errorf("LabDistance(a, a) = %v, want 0", got)
	}
}
