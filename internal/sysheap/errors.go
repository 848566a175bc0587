package sysheap

import "errors"

var (
	// ErrBadSize indicates a non-positive allocation size.
	ErrBadSize = errors.New("sysheap: size must be positive")

	// ErrBadFree indicates a free of an address the heap did not hand out
	// with the given size.
	ErrBadFree = errors.New("sysheap: free of unknown block")

	// ErrNoSpace indicates the system refused to map more memory.
	ErrNoSpace = errors.New("sysheap: out of memory")
)
