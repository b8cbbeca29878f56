// Package parallel provides a small fixed-size worker pool and helpers for
// splitting index ranges across workers.
package parallel

import (
	"runtime"
	"sync"
)

// Pool runs submitted functions on a fixed number of goroutines.
// A pool with a single worker runs functions inline on the caller.
type Pool struct {
	wg      sync.WaitGroup
	work    chan func()
	workers int
	close   func()
}

// Start creates a pool with numWorkers goroutines.
// Values below 1 use runtime.GOMAXPROCS(0).
func Start(numWorkers int) *Pool {
	numWorkers = Workers(numWorkers)

	pool := &Pool{
		workers: numWorkers,
		close:   func() {},
	}
	if numWorkers == 1 {
		return pool
	}

	pool.work = make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range pool.work {
				f()
			}
		})
	}
	pool.close = sync.OnceFunc(func() { close(pool.work) })

	return pool
}

// Workers normalises a requested worker count.
func Workers(n int) int {
	if n < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return p.workers
}

// Do submits f. It blocks while all workers are busy and the queue is full.
// Do must not be called after Wait.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait stops accepting work and blocks until every submitted function has returned.
func (p *Pool) Wait() {
	p.close()
	p.wg.Wait()
}

// Range is a half-open index interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Split partitions [0, n) into at most parts contiguous, non-empty ranges
// whose lengths differ by at most one. It returns nil when n is zero.
func Split(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	ranges := make([]Range, 0, parts)
	size, extra := n/parts, n%parts
	start := 0
	for i := range parts {
		end := start + size
		if i < extra {
			end++
		}
		ranges = append(ranges, Range{Start: start, End: end})
		start = end
	}
	return ranges
}

// For calls fn once per range of Split(n, workers), running the ranges on
// a pool of that many workers, and returns when all calls have finished.
func For(n, workers int, fn func(r Range)) {
	ranges := Split(n, Workers(workers))
	if len(ranges) == 0 {
		return
	}

	pool := Start(len(ranges))
	for _, r := range ranges {
		pool.Do(func() { fn(r) })
	}
	pool.Wait()
}
