// Package workerspool implements a bounded pool of worker goroutines, used
// by the parallel softmax kernels to split work across CPU cores without
// spawning an unbounded number of goroutines.
package workerspool

import (
	"runtime"
	"sync"
)

// Pool limits how many tasks run concurrently.
type Pool struct {
	// maxParallelism is a soft target on the limit of parallel work to do.
	maxParallelism int

	mu         sync.Mutex
	cond       sync.Cond // Signaled whenever numRunning decreases.
	numRunning int
}

// New returns a new Pool of workers with the default parallelism
// (runtime.NumCPU()).
func New() *Pool {
	p := &Pool{maxParallelism: runtime.NumCPU()}
	p.cond = sync.Cond{L: &p.mu}
	return p
}

// MaxParallelism returns the soft limit on parallel tasks.
// 0 means parallelism is disabled, < 0 means unlimited.
func (p *Pool) MaxParallelism() int {
	return p.maxParallelism
}

// SetMaxParallelism sets the limit of parallel tasks.
// Only change the parallelism before any workers start running; changing it
// during execution leads to undefined behavior.
func (p *Pool) SetMaxParallelism(maxParallelism int) {
	p.maxParallelism = maxParallelism
}

// lockedIsFull returns whether all available workers are in use.
// It must be called with p.mu acquired.
func (p *Pool) lockedIsFull() bool {
	if p.maxParallelism == 0 {
		return true
	}
	if p.maxParallelism < 0 {
		return false
	}
	return p.numRunning >= p.maxParallelism
}

// WaitToStart blocks until a worker is available, then runs the task in its
// own goroutine.
//
// If parallelism is disabled (MaxParallelism() == 0), the task runs inline
// before WaitToStart returns.
func (p *Pool) WaitToStart(task func()) {
	if p.maxParallelism < 0 {
		go task()
		return
	}
	if p.maxParallelism == 0 {
		task()
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.lockedIsFull() {
		p.cond.Wait()
	}
	p.numRunning++
	go func() {
		task()
		p.mu.Lock()
		p.numRunning--
		p.cond.Signal()
		p.mu.Unlock()
	}()
}

// ParallelChunks splits the half-open range [0, n) into contiguous chunks of
// at least minChunk elements, runs fn on each chunk through the pool, and
// waits for all chunks to finish.
//
// Chunks never overlap and together cover the full range, so fn may write to
// disjoint sections of a shared slice without further synchronization.
func (p *Pool) ParallelChunks(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if minChunk < 1 {
		minChunk = 1
	}
	numChunks := p.maxParallelism
	if numChunks <= 0 {
		numChunks = 1
	}
	if maxChunks := (n + minChunk - 1) / minChunk; numChunks > maxChunks {
		numChunks = maxChunks
	}
	chunkSize := (n + numChunks - 1) / numChunks

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		start, end := start, end
		p.WaitToStart(func() {
			defer wg.Done()
			fn(start, end)
		})
	}
	wg.Wait()
}
