package deepdist

import (
	"errors"
	"fmt"

	"github.com/hupe1980/deepdist/cache"
)

var (
	// ErrCachePurged is returned when a distance needs the length cache after
	// it was discarded.
	ErrCachePurged = errors.New("distance calculation can not happen once the cache is purged; retain the cache to compute distances")

	// ErrInvalidCutoff is returned when the cutoff is not a positive number.
	ErrInvalidCutoff = errors.New("cutoff must be a positive number")

	// ErrInvalidMathEpsilon is returned when the epsilon is negative or not
	// a finite number.
	ErrInvalidMathEpsilon = errors.New("math epsilon must be a finite, non-negative number")
)

// ErrCollaborator wraps a failure of the hasher or the differ.
type ErrCollaborator struct {
	Op    string
	cause error
}

func (e *ErrCollaborator) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.cause)
}

func (e *ErrCollaborator) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, cache.ErrPurged) {
		return fmt.Errorf("%w: %w", ErrCachePurged, err)
	}
	return err
}
