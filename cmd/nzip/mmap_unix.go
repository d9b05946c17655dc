//go:build unix

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

func mmap(f *os.File, size int64) ([]byte, bool) {
	if size <= 0 || int64(int(size)) != size {
		return nil, false
	}
	mem, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, false
	}
	return mem, true
}

func unmap(mem []byte) {
	if err := unix.Munmap(mem); err != nil {
		logf("munmap: %s", err)
	}
}
