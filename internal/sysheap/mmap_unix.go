//go:build unix

package sysheap

import "golang.org/x/sys/unix"

// mapAnon maps n bytes of zeroed, page-aligned anonymous memory.
func mapAnon(n int) ([]byte, error) {
	return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

// unmapMem releases a mapping obtained from mapAnon.
func unmapMem(b []byte) error {
	return unix.Munmap(b)
}
