package workerspool

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitToStart(t *testing.T) {
	pool := New()
	pool.SetMaxParallelism(2)

	var count atomic.Int32
	var wg sync.WaitGroup
	for ii := 0; ii < 10; ii++ {
		wg.Add(1)
		pool.WaitToStart(func() {
			defer wg.Done()
			count.Add(1)
		})
	}
	wg.Wait()
	assert.Equal(t, int32(10), count.Load())

	// No parallelism: tasks run inline.
	pool.SetMaxParallelism(0)
	ran := false
	pool.WaitToStart(func() { ran = true })
	assert.True(t, ran)
}

func TestParallelChunks(t *testing.T) {
	pool := New()
	pool.SetMaxParallelism(4)

	// Chunks must cover [0, n) exactly once.
	const n = 100_000
	covered := make([]int32, n)
	pool.ParallelChunks(n, 1024, func(start, end int) {
		require.LessOrEqual(t, start, end)
		for ii := start; ii < end; ii++ {
			atomic.AddInt32(&covered[ii], 1)
		}
	})
	for ii, c := range covered {
		require.Equalf(t, int32(1), c, "index %d covered %d times", ii, c)
	}
}

func TestParallelChunksSmallInput(t *testing.T) {
	pool := New()

	// Input smaller than minChunk runs as a single chunk.
	var calls atomic.Int32
	pool.ParallelChunks(10, 1024, func(start, end int) {
		calls.Add(1)
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, int32(1), calls.Load())

	// Empty range: no calls.
	calls.Store(0)
	pool.ParallelChunks(0, 16, func(start, end int) { calls.Add(1) })
	assert.Equal(t, int32(0), calls.Load())
}
