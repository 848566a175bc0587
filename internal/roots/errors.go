package roots

import "errors"

var (
	// ErrNotFound indicates that no readable mapping contains the
	// queried address.
	ErrNotFound = errors.New("roots: no mapping contains address")

	// ErrUnsupported indicates that root discovery is not implemented
	// for this platform.
	ErrUnsupported = errors.New("roots: unsupported platform")
)
