// Package region provides raw byte regions for arenas: plain heap slices,
// anonymous memory mappings and file-backed shared mappings.
package region

import (
	"errors"
	"fmt"
)

// ErrBadSize indicates a non-positive region size.
var ErrBadSize = errors.New("region: size must be positive")

// Heap returns a zeroed region from the Go heap. The cleanup is a no-op and
// exists so every source has the same shape.
func Heap(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
