// Package parallel provides chunked worker helpers for order-independent
// loops. The bootstrap estimator uses them to spread resamples across CPU
// cores: each index in [0, items) is processed exactly once, so callers
// that key their randomness on the index get identical results under any
// scheduling.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides [0, items) across the available CPU cores and runs
// fn(start, end) on each contiguous chunk concurrently. It returns once
// every chunk has completed.
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// Ceiling division so the last chunk absorbs the remainder
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially when items is at or below
// threshold, and falls back to Parallelize above it. Small workloads are
// cheaper on one goroutine than behind a WaitGroup.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
