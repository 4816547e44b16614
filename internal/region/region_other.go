//go:build !unix

package region

import (
	"fmt"
	"os"
)

// Anonymous falls back to a heap region when mmap is not available.
func Anonymous(size int) ([]byte, func() error, error) {
	return Heap(size)
}

// MapFile reads the file into memory when mmap is not available and writes
// the region back on cleanup. A positive size resizes the region to exactly
// size bytes; size 0 keeps the file's current length.
func MapFile(path string, size int) ([]byte, func() error, error) {
	if size < 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, nil, err
	}
	if size > 0 {
		resized := make([]byte, size)
		copy(resized, data)
		data = resized
	} else if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: %s is empty", ErrBadSize, path)
	}
	return data, func() error { return os.WriteFile(path, data, 0o600) }, nil
}
