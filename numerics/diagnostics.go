package numerics

import (
	"fmt"
	"math"
	"runtime"
)

// MemUsage reports a human-readable snapshot of current heap usage, used by
// the solver's debug-level logging around the dense assembly/solve phases.
// Adapted from the teacher's utils.GetMemUsage.
func MemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	toMiB := func(b uint64) uint64 { return b / 1024 / 1024 }
	return fmt.Sprintf("alloc=%dMiB sys=%dMiB numGC=%d", toMiB(m.Alloc), toMiB(m.Sys), m.NumGC)
}

// HasNaN reports whether any element of data is NaN — used to guard the
// solver against propagating a diverged solve into pressures and forces.
func HasNaN(data []float64) bool {
	for _, f := range data {
		if math.IsNaN(f) {
			return true
		}
	}
	return false
}
