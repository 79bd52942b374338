package softmax

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Gonum computes softmax on top of gonum's vectorized slice operations, the
// equivalent of an array-library implementation.
func Gonum(dst, x []float64) {
	checkArgs(dst, x)
	mx := floats.Max(x)
	copy(dst, x)
	floats.AddConst(-mx, dst)
	for ii, v := range dst {
		dst[ii] = math.Exp(v)
	}
	total := floats.Sum(dst)
	floats.Scale(1/total, dst)
}
