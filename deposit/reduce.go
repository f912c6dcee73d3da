package deposit

import (
	"sync"
	"sync/atomic"
)

// reduce partitions the particle range [0, np) into chunks claimed
// dynamically by a fixed pool of workers. Each worker accumulates into a
// private zero-initialized scratch grid and folds it into rho under a
// mutex once its last chunk is done, so rho is never written concurrently.
// With workers below 2, accum runs once over the whole range directly on
// rho.
func reduce(rho []float64, np, workers, chunk int, accum func(rho []float64, lo, hi int)) {
	if workers <= 1 {
		accum(rho, 0, np)
		return
	}

	var (
		cursor int64
		mu     sync.Mutex
		wg     sync.WaitGroup
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			scratch := make([]float64, len(rho))
			for {
				hi := int(atomic.AddInt64(&cursor, int64(chunk)))
				lo := hi - chunk
				if lo >= np {
					break
				}
				if hi > np {
					hi = np
				}
				accum(scratch, lo, hi)
			}

			mu.Lock()
			for i, x := range scratch {
				rho[i] += x
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
}
