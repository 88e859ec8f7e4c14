package numerics

import (
	"runtime"
	"sync"
)

// PartitionMap splits [0, MaxIndex) into ParallelDegree contiguous buckets of
// near-equal size, with any remainder spread across the first buckets.
// Adapted from the teacher's utils.PartitionMap (gocfd), which partitions DG
// elements across goroutines; here it partitions panels and wake nodes.
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	partitions     [][2]int
}

func NewPartitionMap(parallelDegree, maxIndex int) *PartitionMap {
	if parallelDegree < 1 {
		parallelDegree = 1
	}
	if parallelDegree > maxIndex && maxIndex > 0 {
		parallelDegree = maxIndex
	}
	pm := &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: parallelDegree,
		partitions:     make([][2]int, parallelDegree),
	}
	npart := maxIndex / parallelDegree
	remainder := maxIndex % parallelDegree
	start := 0
	for n := 0; n < parallelDegree; n++ {
		size := npart
		if n < remainder {
			size++
		}
		pm.partitions[n] = [2]int{start, start + size}
		start += size
	}
	return pm
}

// GetBucketRange returns the [lo, hi) index range owned by bucket n.
func (pm *PartitionMap) GetBucketRange(n int) (lo, hi int) {
	return pm.partitions[n][0], pm.partitions[n][1]
}

// GetBucketDimension returns hi-lo for bucket n.
func (pm *PartitionMap) GetBucketDimension(n int) int {
	lo, hi := pm.GetBucketRange(n)
	return hi - lo
}

// ParallelFor runs fn(lo, hi) once per partition bucket of [0, n) on its own
// goroutine and blocks until all complete — the single barrier-style
// fan-out/join helper used for every §5 data-parallel loop (source
// coefficients, influence-matrix rows, surface velocities, pressure
// coefficients, wake-node velocity sampling, wake-node convection).
// Adapted from the repeated wg.Add(1); go func(np int){...}(np); wg.Wait()
// block in the teacher's model_problems/Euler2D/euler.go RungeKutta4SSP.Step,
// generalized into one routine instead of being copy-pasted at each call site.
func ParallelFor(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	degree := runtime.NumCPU()
	pm := NewPartitionMap(degree, n)
	var wg sync.WaitGroup
	for p := 0; p < pm.ParallelDegree; p++ {
		lo, hi := pm.GetBucketRange(p)
		if lo == hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
