package distance

import (
	"fmt"
	"math"

	"github.com/clusterlab/kdense/model"
)

// ErrDimensionMismatch indicates a distance request between coordinates of
// incompatible dimensionality.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Euclidean returns the Euclidean distance between a and b.
//
// Two-dimensional pairs go through math.Hypot; higher dimensions use a
// scaled sum of squares. Both paths are overflow-resistant and satisfy
// Euclidean(a, b) == Euclidean(b, a) exactly.
func Euclidean(a, b model.Coord) (float64, error) {
	if len(a) != len(b) {
		return 0, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}
	if len(a) == 2 {
		return math.Hypot(a[0]-b[0], a[1]-b[1]), nil
	}
	var scale float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > scale {
			scale = d
		}
	}
	if scale == 0 {
		return 0, nil
	}
	var sum float64
	for i := range a {
		r := (a[i] - b[i]) / scale
		sum += r * r
	}
	return scale * math.Sqrt(sum), nil
}
