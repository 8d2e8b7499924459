package kdense

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset is returned when there are no points to cluster.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrInvalidPrecision is returned when the restart count is not positive.
	ErrInvalidPrecision = errors.New("precision must be positive")
)

// ErrInvalidClusterCount indicates a k outside [1, dataset size].
type ErrInvalidClusterCount struct {
	K    int
	Size int
}

func (e *ErrInvalidClusterCount) Error() string {
	return fmt.Sprintf("invalid cluster count: k=%d must be between 1 and %d", e.K, e.Size)
}
