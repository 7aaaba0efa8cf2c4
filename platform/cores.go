package platform

import "runtime"

// logicalCoreCount mirrors the original's Platform::GetLogicalCoreCount:
// clamp hardware concurrency to at least 1.
func logicalCoreCount() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}
