//go:build !linux

package roots

// RegionContaining is unimplemented on this platform.
func RegionContaining(addr uintptr) (Region, error) {
	return Region{}, ErrUnsupported
}

// DataRegion is unimplemented on this platform.
func DataRegion() (Region, error) {
	return Region{}, ErrUnsupported
}
