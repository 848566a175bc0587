//go:build linux

package roots

import (
	"bufio"
	"debug/elf"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	mapsPath = "/proc/self/maps"
	exePath  = "/proc/self/exe"
)

// RegionContaining returns the memory mapping that contains addr, per
// /proc/self/maps. The mapping must be readable; an unreadable mapping is
// reported as an error because the scanner would fault on it.
func RegionContaining(addr uintptr) (Region, error) {
	f, err := os.Open(mapsPath)
	if err != nil {
		return Region{}, fmt.Errorf("roots: open %s: %w", mapsPath, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		start, end, perms, _, ok := parseMapsLine(sc.Text())
		if !ok || addr < start || addr >= end {
			continue
		}
		if !strings.HasPrefix(perms, "r") {
			return Region{}, fmt.Errorf("roots: mapping %#x-%#x holding %#x is not readable", start, end, addr)
		}
		return Region{Start: start, Size: end - start}, nil
	}
	if err := sc.Err(); err != nil {
		return Region{}, fmt.Errorf("roots: read %s: %w", mapsPath, err)
	}
	return Region{}, fmt.Errorf("%w: %#x", ErrNotFound, addr)
}

// DataRegion returns the runtime address range of the executable's
// writable static-data segment, which covers initialized globals and the
// zero-initialized tail where package-level variables live.
//
// The ELF header records link-time addresses. Under load-time address
// randomization the image is slid to a random base, so the true runtime
// address is the link-time address plus the slide. The slide is the
// difference between where the image is actually mapped and the link-time
// address of its first loadable segment; it is zero for non-relocatable
// binaries.
func DataRegion() (Region, error) {
	f, err := elf.Open(exePath)
	if err != nil {
		return Region{}, fmt.Errorf("roots: open executable image: %w", err)
	}
	defer f.Close()

	var lowest, data *elf.Prog
	for _, p := range f.Progs {
		if p.Type != elf.PT_LOAD {
			continue
		}
		if lowest == nil || p.Vaddr < lowest.Vaddr {
			lowest = p
		}
		if data == nil && p.Flags&elf.PF_W != 0 {
			data = p
		}
	}
	if lowest == nil || data == nil {
		return Region{}, fmt.Errorf("roots: executable has no writable load segment")
	}

	base, err := imageBase()
	if err != nil {
		return Region{}, err
	}
	slide := base - uintptr(lowest.Vaddr)
	return Region{Start: uintptr(data.Vaddr) + slide, Size: uintptr(data.Memsz)}, nil
}

// imageBase returns the lowest address at which the running executable is
// mapped, per /proc/self/maps.
func imageBase() (uintptr, error) {
	exe, err := os.Readlink(exePath)
	if err != nil {
		return 0, fmt.Errorf("roots: resolve executable path: %w", err)
	}

	f, err := os.Open(mapsPath)
	if err != nil {
		return 0, fmt.Errorf("roots: open %s: %w", mapsPath, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		start, _, _, path, ok := parseMapsLine(sc.Text())
		if !ok {
			continue
		}
		// Mappings of a deleted or replaced binary keep a marker suffix.
		if path == exe || path == exe+" (deleted)" {
			// Maps are sorted by address; the first hit is the base.
			return start, nil
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("roots: read %s: %w", mapsPath, err)
	}
	return 0, fmt.Errorf("%w: executable image %s", ErrNotFound, exe)
}

// parseMapsLine splits one /proc/self/maps line into its address range,
// permission string and pathname. Lines have the form
//
//	start-end perms offset dev inode [pathname]
func parseMapsLine(line string) (start, end uintptr, perms, path string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, "", "", false
	}
	lo, hi, found := strings.Cut(fields[0], "-")
	if !found {
		return 0, 0, "", "", false
	}
	s, err := strconv.ParseUint(lo, 16, 64)
	if err != nil {
		return 0, 0, "", "", false
	}
	e, err := strconv.ParseUint(hi, 16, 64)
	if err != nil {
		return 0, 0, "", "", false
	}
	if len(fields) >= 6 {
		path = strings.Join(fields[5:], " ")
	}
	return uintptr(s), uintptr(e), fields[1], path, true
}
