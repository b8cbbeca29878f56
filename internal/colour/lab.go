package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Lab is a colour in CIE L*a*b* space, referenced to the D65 illuminant.
// L is in [0, 100]; a and b are roughly in [-128, 128].
type Lab struct {
	L float64
	A float64
	B float64
}

// srgbToXYZ is the linear sRGB to XYZ matrix for the D65 white point
// (Lindbloom). Its rows sum to the D65 tristimulus values, so neutral greys
// have a* = b* = 0.
var srgbToXYZ = [3][3]float64{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

// ToLab converts the RGB components of c to CIE L*a*b*.
// sRGB is linearised, projected to XYZ with the sRGB primaries and then
// mapped to L*a*b* using the D65 reference white. Alpha is ignored.
func ToLab(c Color) Lab {
	r, g, b := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.LinearRgb()

	m := srgbToXYZ
	x := m[0][0]*r + m[0][1]*g + m[0][2]*b
	y := m[1][0]*r + m[1][1]*g + m[1][2]*b
	z := m[2][0]*r + m[2][1]*g + m[2][2]*b

	// go-colorful works on a 0-1 lightness scale.
	l, a, bb := colorful.XyzToLabWhiteRef(x, y, z, colorful.D65)
	return Lab{L: l * 100, A: a * 100, B: bb * 100}
}

// LabDistance returns the Euclidean (CIE76) distance between two Lab colours.
func LabDistance(x, y Lab) float64 {
	dL := x.L - y.L
	da := x.A - y.A
	db := x.B - y.B
	return math.Sqrt(dL*dL + da*da + db*db)
}
