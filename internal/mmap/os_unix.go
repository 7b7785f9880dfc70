//go:build unix

package mmap

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(f *os.File, size int) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
}

func unmapFile(data []byte) error {
	return unix.Munmap(data)
}

func advise(data []byte, opts Options) error {
	var errs []error
	if opts.Sequential {
		errs = append(errs, madvise(data, unix.MADV_SEQUENTIAL))
	}
	if opts.Prefetch {
		errs = append(errs, madvise(data, unix.MADV_WILLNEED))
	}
	return errors.Join(errs...)
}

func madvise(data []byte, advice int) error {
	err := unix.Madvise(data, advice)
	if errors.Is(err, unix.EINVAL) {
		return nil
	}
	return err
}
