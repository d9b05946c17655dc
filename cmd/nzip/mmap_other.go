//go:build !unix

package main

import "os"

func mmap(f *os.File, size int64) ([]byte, bool) { return nil, false }

func unmap(mem []byte) {}
