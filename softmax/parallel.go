package softmax

import (
	"math"
	"sync"
)

// Parallel is the straightforward chunked-parallel variant: the same three
// passes as a naive softmax, with exponentiation and normalization split
// across worker chunks and the standard library's exp.
func Parallel(dst, x []float64) {
	checkArgs(dst, x)
	mx := maxOf(x)

	var mu sync.Mutex
	total := 0.0
	pool.ParallelChunks(len(x), minParallelChunk, func(start, end int) {
		local := 0.0
		for ii := start; ii < end; ii++ {
			v := math.Exp(x[ii] - mx)
			dst[ii] = v
			local += v
		}
		mu.Lock()
		total += local
		mu.Unlock()
	})

	inv := 1 / total
	pool.ParallelChunks(len(x), minParallelChunk, func(start, end int) {
		for ii := start; ii < end; ii++ {
			dst[ii] *= inv
		}
	})
}
