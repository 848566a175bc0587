package sysheap

// The heap maintains 10 segregated free lists over power-of-two classes:
//
//	Class 0:   32 bytes
//	Class 1:   64 bytes
//	Class 2:  128 bytes
//	Class 3:  256 bytes
//	Class 4:  512 bytes
//	Class 5:    1 KB
//	Class 6:    2 KB
//	Class 7:    4 KB
//	Class 8:    8 KB
//	Class 9:   16 KB
//
// Requests above the largest class bypass the lists entirely and get a
// dedicated mapping.
const (
	numClasses   = 10
	minClassSize = 32
	maxClassSize = 16 << 10
)

var classSizes = [numClasses]int{32, 64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384}

// classFor returns the index of the smallest class that fits n, or -1
// when n needs a dedicated mapping.
func classFor(n int) int {
	for i, cs := range classSizes {
		if n <= cs {
			return i
		}
	}
	return -1
}

// largestClassWithin returns the index of the biggest class no larger
// than n, or -1 when n is below the smallest class.
func largestClassWithin(n uintptr) int {
	for i := numClasses - 1; i >= 0; i-- {
		if uintptr(classSizes[i]) <= n {
			return i
		}
	}
	return -1
}
