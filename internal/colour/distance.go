package colour

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm identifies a colour distance metric.
type Algorithm string

const (
	// AlgorithmManhattan sums the absolute differences of the R, G and B channels.
	AlgorithmManhattan Algorithm = "Manhattan"

	// AlgorithmCIE76 is the Euclidean distance between two colours in L*a*b* space.
	AlgorithmCIE76 Algorithm = "CIE76"

	// AlgorithmCIEHybrid blends the Manhattan and CIE76 distances.
	AlgorithmCIEHybrid Algorithm = "CIEHybrid"

	// AlgorithmCIEDE2000 is reserved for the CIEDE2000 formula.
	// Not yet implemented - placeholder for future.
	AlgorithmCIEDE2000 Algorithm = "CIEDE2000"
)

// DefaultAlgorithm is used when the caller has no preference.
const DefaultAlgorithm = AlgorithmManhattan

// DefaultHybridWeight is the share of the (rescaled) Manhattan term in the
// CIEHybrid distance; the CIE76 term receives the remainder.
const DefaultHybridWeight = 0.25

// maxManhattan is the largest possible Manhattan distance (3 * 255).
const maxManhattan = 765.0

var (
	// ErrUnknownAlgorithm is returned for names that match no metric.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrUnsupportedAlgorithm is returned for declared metrics that are not implemented.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
)

// Algorithms returns the implemented metrics in a stable order.
// The first entry is DefaultAlgorithm.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmManhattan,
		AlgorithmCIE76,
		AlgorithmCIEHybrid,
		// Future algorithms will be added here
	}
}

// AlgorithmNames returns the names of Algorithms().
func AlgorithmNames() []string {
	algs := Algorithms()
	names := make([]string, len(algs))
	for i, alg := range algs {
		names[i] = string(alg)
	}
	return names
}

// IsValidAlgorithm checks if the given algorithm is implemented.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range Algorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// ParseAlgorithm resolves a metric name, ignoring case.
// Declared but unimplemented metrics are rejected rather than substituted.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, alg := range Algorithms() {
		if strings.EqualFold(name, string(alg)) {
			return alg, nil
		}
	}

	if strings.EqualFold(name, string(AlgorithmCIEDE2000)) {
		return "", fmt.Errorf("%w: %s is not yet implemented", ErrUnsupportedAlgorithm, AlgorithmCIEDE2000)
	}

	return "", fmt.Errorf("%w: %q (valid algorithms: %s)", ErrUnknownAlgorithm, name, strings.Join(AlgorithmNames(), ", "))
}

// NeedsLab reports whether the metric works on L*a*b* values.
func (a Algorithm) NeedsLab() bool {
	return a == AlgorithmCIE76 || a == AlgorithmCIEHybrid
}

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	return string(a)
}

// Distance returns the distance between x and y under alg.
// The result is non-negative, symmetric and zero when the RGB channels match.
// Alpha is not examined. alg must be one of Algorithms(); anything else panics.
func Distance(alg Algorithm, x, y Color) float64 {
	switch alg {
	case AlgorithmManhattan:
		return Manhattan(x, y)
	case AlgorithmCIE76:
		return LabDistance(ToLab(x), ToLab(y))
	case AlgorithmCIEHybrid:
		return HybridDistance(x, y, DefaultHybridWeight)
	default:
		panic(fmt.Sprintf("colour: distance called with unimplemented algorithm %q", alg))
	}
}

// DistanceLab is Distance with precomputed L*a*b* values for both colours.
// The Lab arguments are ignored by metrics that do not need them.
func DistanceLab(alg Algorithm, x Color, xLab Lab, y Color, yLab Lab) float64 {
	switch alg {
	case AlgorithmManhattan:
		return Manhattan(x, y)
	case AlgorithmCIE76:
		return LabDistance(xLab, yLab)
	case AlgorithmCIEHybrid:
		return hybrid(Manhattan(x, y), LabDistance(xLab, yLab), DefaultHybridWeight)
	default:
		panic(fmt.Sprintf("colour: distance called with unimplemented algorithm %q", alg))
	}
}

// Manhattan returns |dR| + |dG| + |dB|.
func Manhattan(x, y Color) float64 {
	return float64(absDiff(x.R, y.R) + absDiff(x.G, y.G) + absDiff(x.B, y.B))
}

// HybridDistance blends Manhattan and CIE76 distances. weight is the share of
// the Manhattan term, rescaled to the 0-100 range of L*, and is clamped to [0, 1].
func HybridDistance(x, y Color, weight float64) float64 {
	return hybrid(Manhattan(x, y), LabDistance(ToLab(x), ToLab(y)), weight)
}

func hybrid(manhattan, cie76, weight float64) float64 {
	weight = max(0, min(1, weight))
	return weight*(manhattan*100/maxManhattan) + (1-weight)*cie76
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
