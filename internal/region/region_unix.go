//go:build unix

package region

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Anonymous maps size bytes of private, zero-filled memory outside the Go heap.
func Anonymous(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("region: mmap anonymous %d bytes: %w", size, err)
	}
	return data, unmapper(data, false), nil
}

// MapFile maps the file at path read-write and shared, so writes to the region
// reach the file. A positive size creates or resizes the file to exactly size
// bytes; size 0 maps the file at its current length.
func MapFile(path string, size int) ([]byte, func() error, error) {
	if size < 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close() // safe before return; mapping keeps pages alive

	if size > 0 {
		if err := f.Truncate(int64(size)); err != nil {
			return nil, nil, err
		}
	} else {
		info, err := f.Stat()
		if err != nil {
			return nil, nil, err
		}
		if info.Size() == 0 {
			return nil, nil, fmt.Errorf("%w: %s is empty", ErrBadSize, path)
		}
		if info.Size() > int64(^uint(0)>>1) {
			return nil, nil, fmt.Errorf("region: file too large to map (%d bytes)", info.Size())
		}
		size = int(info.Size())
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("region: mmap %s: %w", path, err)
	}
	return data, unmapper(data, true), nil
}

func unmapper(data []byte, sync bool) func() error {
	return func() error {
		if data == nil {
			return nil
		}
		var syncErr error
		if sync {
			syncErr = unix.Msync(data, unix.MS_SYNC)
		}
		err := unix.Munmap(data)
		data = nil
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			err = nil
		}
		return errors.Join(syncErr, err)
	}
}
